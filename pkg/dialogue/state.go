package dialogue

import (
	"staystrong-chat-be/pkg/flow"
	"staystrong-chat-be/pkg/safety"
)

// ConversationState is round-tripped by the caller on every turn. Nothing here is kept
// server-side.
type ConversationState struct {
	flow.State
	CrisisPhase safety.Phase
}

// DefaultState is what a new or reset session starts from.
func DefaultState() ConversationState {
	return ConversationState{State: flow.NewState(), CrisisPhase: safety.PhaseNone}
}

// Normalize returns a copy with unknown values mapped to their defaults. An unrecognised step
// restarts the flow; an unrecognised crisis phase becomes none.
func (s ConversationState) Normalize() ConversationState {
	out := s.Clone()
	if !out.Valid() {
		out.State = flow.NewState()
	}
	if out.Strengths == nil {
		out.Strengths = []string{}
	}
	if out.Worries == nil {
		out.Worries = []string{}
	}
	out.CrisisPhase = safety.ParsePhase(string(out.CrisisPhase))
	return out
}

func (s ConversationState) Clone() ConversationState {
	return ConversationState{State: s.State.Clone(), CrisisPhase: s.CrisisPhase}
}
