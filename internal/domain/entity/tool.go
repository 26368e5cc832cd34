package entity

type ToolName string

const (
	ToolTermLookup ToolName = "TermLookup"
)

func (t ToolName) String() string {
	return string(t)
}
