package entity

type AgentBackend string

const (
	AgentBackendNative    AgentBackend = "native"
	AgentBackendLangChain AgentBackend = "langchain"
)

type AgentResult struct {
	FinalAnswer string
	Iterations  int
	ToolCalls   int
}
