package entity

// Section headers every generated specification is asked to contain.
const (
	SectionFunctional    = "Requisitos Funcionais"
	SectionNonFunctional = "Requisitos Não Funcionais"
	SectionImprovements  = "Sugestões de Melhoria"
	SectionGaps          = "Inconsistências/Lacunas detectadas (se houver)"
)

func SpecificationSections() []string {
	return []string{SectionFunctional, SectionNonFunctional, SectionImprovements, SectionGaps}
}

// EvaluationResult reports which expected sections a specification lacks.
type EvaluationResult struct {
	Success bool
	Present []string
	Missing []string
}
