package models

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry of the session transcript. The transcript is
// held in memory only and does not survive a restart.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
