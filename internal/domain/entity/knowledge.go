package entity

// KnowledgeEntry is one glossary definition. Terms are stored lowercased.
type KnowledgeEntry struct {
	Term       string
	Definition string
}
