package dto

type ConversationStateDTO struct {
	Step        string   `json:"step"`
	Strengths   []string `json:"strengths"`
	Worries     []string `json:"worries"`
	Goal        string   `json:"goal"`
	Support     string   `json:"support"`
	NextStep    string   `json:"nextStep"`
	CrisisPhase string   `json:"crisisPhase"`
}

type ChatRequest struct {
	Message  string                `json:"message" validate:"max=4000"`
	State    *ConversationStateDTO `json:"state"`
	FastFlag *bool                 `json:"fastFlag"`
	Fast     *bool                 `json:"fast"`
}

// FastMode returns the per-request override. fastFlag wins when both keys are sent.
func (r *ChatRequest) FastMode() *bool {
	if r.FastFlag != nil {
		return r.FastFlag
	}
	return r.Fast
}

// ChatResponse.Reply is null when the message was empty and nothing needed saying.
type ChatResponse struct {
	Reply    *string              `json:"reply"`
	Messages []string             `json:"messages,omitempty"`
	State    ConversationStateDTO `json:"state"`
	Mode     string               `json:"mode,omitempty"`
	Tool     string               `json:"tool,omitempty"`
}

type ResetResponse struct {
	State ConversationStateDTO `json:"state"`
}

type HealthResponse struct {
	Status         string `json:"status"`
	IndexSnippets  int    `json:"indexSnippets"`
	LexiconEntries int    `json:"lexiconEntries"`
	ContactsSource string `json:"contactsSource"`
}

type ModelStatusResponse struct {
	Provider  string   `json:"provider"`
	Model     string   `json:"model"`
	Available bool     `json:"available"`
	Installed []string `json:"installed,omitempty"`
	Error     string   `json:"error,omitempty"`
	CheckedAt string   `json:"checkedAt"`
	FromCache bool     `json:"fromCache"`
}
