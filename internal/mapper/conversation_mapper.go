package mapper

import (
	"staystrong-chat-be/internal/dto"
	"staystrong-chat-be/pkg/dialogue"
	"staystrong-chat-be/pkg/flow"
	"staystrong-chat-be/pkg/safety"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

// ToDomain maps the wire state. A nil state is a new session; unknown step or phase values are
// left for dialogue.ConversationState.Normalize to reset.
func (m *ConversationMapper) ToDomain(s *dto.ConversationStateDTO) dialogue.ConversationState {
	if s == nil {
		return dialogue.DefaultState()
	}
	return dialogue.ConversationState{
		State: flow.State{
			Step:      flow.Step(s.Step),
			Strengths: copyStrings(s.Strengths),
			Worries:   copyStrings(s.Worries),
			Goal:      s.Goal,
			Support:   s.Support,
			NextStep:  s.NextStep,
		},
		CrisisPhase: safety.Phase(s.CrisisPhase),
	}
}

func (m *ConversationMapper) ToDTO(s dialogue.ConversationState) dto.ConversationStateDTO {
	return dto.ConversationStateDTO{
		Step:        string(s.Step),
		Strengths:   copyStrings(s.Strengths),
		Worries:     copyStrings(s.Worries),
		Goal:        s.Goal,
		Support:     s.Support,
		NextStep:    s.NextStep,
		CrisisPhase: string(s.CrisisPhase),
	}
}

func copyStrings(in []string) []string {
	return append(make([]string, 0, len(in)), in...)
}
