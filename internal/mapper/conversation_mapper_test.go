package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"staystrong-chat-be/internal/dto"
	"staystrong-chat-be/pkg/flow"
	"staystrong-chat-be/pkg/safety"
)

func TestConversationMapper_NilIsDefault(t *testing.T) {
	m := NewConversationMapper()

	s := m.ToDomain(nil)
	assert.Equal(t, flow.StepStrengths, s.Step)
	assert.Equal(t, safety.PhaseNone, s.CrisisPhase)
	assert.Empty(t, s.Strengths)
}

func TestConversationMapper_DoesNotAlias(t *testing.T) {
	m := NewConversationMapper()
	in := &dto.ConversationStateDTO{Step: "worries", Strengths: []string{"footy"}, CrisisPhase: "awaitingConfirmation"}

	s := m.ToDomain(in)
	s.Strengths[0] = "changed"
	assert.Equal(t, "footy", in.Strengths[0])

	out := m.ToDTO(s)
	assert.Equal(t, "worries", out.Step)
	assert.Equal(t, "awaitingConfirmation", out.CrisisPhase)
	assert.NotNil(t, out.Worries)
}
