package domain

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one conversation turn in OpenRouter wire format.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
