package models

// Role identifies who produced a turn. Values are not validated: whatever
// the remote service returns is kept as-is.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of the transcript
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserTurn builds the turn appended for a new question.
func UserTurn(question string) Turn {
	return Turn{Role: RoleUser, Content: question}
}

// CompletionRecord mirrors the remote chat-completion response.
type CompletionRecord struct {
	ID      string   `json:"id"`
	Object  string   `json:"object,omitempty"`
	Created int64    `json:"created,omitempty"`
	Model   string   `json:"model,omitempty"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice is one candidate reply. Only the first choice is ever used.
type Choice struct {
	Index        int    `json:"index"`
	Message      Turn   `json:"message"`
	FinishReason string `json:"finish_reason"`
}

// Usage holds token counters as reported by the remote service
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Reply returns the first choice's message and false when there are no
// choices.
func (r *CompletionRecord) Reply() (Turn, bool) {
	if r == nil || len(r.Choices) == 0 {
		return Turn{}, false
	}
	return r.Choices[0].Message, true
}
