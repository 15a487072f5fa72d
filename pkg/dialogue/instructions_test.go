package dialogue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"staystrong-chat-be/pkg/flow"
)

func TestInstructionComposer_Compose(t *testing.T) {
	tests := []struct {
		name        string
		in          InstructionInput
		contains    []string
		notContains []string
	}{
		{
			name:        "persona only",
			in:          InstructionInput{},
			contains:    []string{"<persona>", "at most 3 short sentences"},
			notContains: []string{"<style_guide>", "<community_terms>", "<approved_context>", "<plan_step>", "<check_in>"},
		},
		{
			name: "every section",
			in: InstructionInput{
				StyleGuide:   "Say mob for family.",
				LexiconNotes: []string{"yarn -> talk", "deadly -> great"},
				Context:      "- Sleep helps.",
				Step:         flow.StepWorries,
				Monitor:      true,
			},
			contains: []string{
				"<style_guide>\nSay mob for family.\n</style_guide>",
				"- yarn -> talk\n- deadly -> great\n",
				"<approved_context>",
				"- Sleep helps.",
				"answering the worries question",
				"<check_in>",
			},
		},
		{
			name:        "blank style guide and context are skipped",
			in:          InstructionInput{StyleGuide: "  ", Context: "\n"},
			notContains: []string{"<style_guide>", "<approved_context>"},
		},
	}

	c := NewInstructionComposer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Compose(tt.in)

			assert.True(t, strings.HasPrefix(got, "<persona>"))
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestInstructionComposer_SectionOrder(t *testing.T) {
	got := NewInstructionComposer().Compose(InstructionInput{
		StyleGuide:   "guide",
		LexiconNotes: []string{"a -> b"},
		Context:      "- ctx",
		Step:         flow.StepGoal,
		Monitor:      true,
	})

	order := []string{"<persona>", "<style_guide>", "<community_terms>", "<approved_context>", "<plan_step>", "<check_in>"}
	last := -1
	for _, tag := range order {
		idx := strings.Index(got, tag)
		assert.Greater(t, idx, last, tag)
		last = idx
	}
}

func TestConversationState_Normalize(t *testing.T) {
	s := ConversationState{State: flow.State{Step: flow.StepGoal}, CrisisPhase: "resolved"}

	got := s.Normalize()

	assert.Equal(t, flow.StepGoal, got.Step)
	assert.NotNil(t, got.Strengths)
	assert.NotNil(t, got.Worries)
	assert.Equal(t, "resolved", string(got.CrisisPhase))
}
