package output

import "requirements-agent/internal/domain/entity"

type GlossaryPort interface {
	Lookup(term string) string
	Entries() []entity.KnowledgeEntry
}
