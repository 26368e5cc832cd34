// Package glossary holds the fixed software-engineering term definitions the
// agent can consult while analysing requirements.
package glossary

import (
	"fmt"
	"sort"
	"strings"

	"requirements-agent/internal/application/port/output"
	"requirements-agent/internal/domain/entity"
)

var _ output.GlossaryPort = (*Glossary)(nil)

var knowledgeBase = map[string]string{
	"iso27001":                "Uma norma internacional de segurança da informação.",
	"autenticação multifator": "Processo de login que requer mais de um fator de confirmação.",
	"usabilidade":             "A facilidade com que um usuário pode interagir com um sistema para atingir um objetivo específico.",
	"requisito funcional":     "Uma funcionalidade que o sistema deve fornecer.",
	"requisito não funcional": "Uma propriedade ou restrição de qualidade do sistema, como desempenho ou segurança.",
}

const notFoundFormat = "Não encontrei uma definição para o termo '%s'."

type Glossary struct {
	entries map[string]string
}

func New() *Glossary {
	return &Glossary{entries: knowledgeBase}
}

// Lookup returns the definition of term, matched case-insensitively. Unknown
// terms yield a "not found" sentence quoting the input as given.
func (g *Glossary) Lookup(term string) string {
	if def, ok := g.entries[strings.ToLower(term)]; ok {
		return def
	}
	return NotFound(term)
}

func (g *Glossary) Entries() []entity.KnowledgeEntry {
	result := make([]entity.KnowledgeEntry, 0, len(g.entries))
	for term, def := range g.entries {
		result = append(result, entity.KnowledgeEntry{Term: term, Definition: def})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Term < result[j].Term
	})
	return result
}

func NotFound(term string) string {
	return fmt.Sprintf(notFoundFormat, term)
}
