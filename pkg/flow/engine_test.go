package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staystrong-chat-be/pkg/content"
)

func newTestEngine() *Engine {
	return NewEngine(content.DefaultPack())
}

func TestEngine_WorrySignalJumpsToWorries(t *testing.T) {
	e := newTestEngine()
	start := NewState()
	start.Strengths = []string{"my nan"}

	got, prompt := e.Advance(start, "I feel really anxious")

	assert.Equal(t, StepWorries, got.Step)
	assert.Equal(t, []string{"my nan"}, got.Strengths)
	assert.Equal(t, []string{"I feel really anxious"}, got.Worries)
	assert.Contains(t, prompt, content.DefaultPack().String(content.KeyWorryShiftAck))
	assert.Contains(t, prompt, e.Prompt(StepWorries))
}

func TestEngine_Steps(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		text     string
		wantStep Step
		check    func(t *testing.T, s State)
	}{
		{
			name:     "strength appended",
			state:    NewState(),
			text:     "footy with my cousins",
			wantStep: StepStrengths,
			check:    func(t *testing.T, s State) { assert.Equal(t, []string{"footy with my cousins"}, s.Strengths) },
		},
		{
			name:     "next leaves strengths",
			state:    State{Step: StepStrengths, Strengths: []string{"art"}},
			text:     "Next",
			wantStep: StepWorries,
			check:    func(t *testing.T, s State) { assert.Equal(t, []string{"art"}, s.Strengths) },
		},
		{
			name:     "worry appended",
			state:    State{Step: StepWorries},
			text:     "exams",
			wantStep: StepWorries,
			check:    func(t *testing.T, s State) { assert.Equal(t, []string{"exams"}, s.Worries) },
		},
		{
			name:     "next leaves worries",
			state:    State{Step: StepWorries, Worries: []string{"money"}},
			text:     "next",
			wantStep: StepGoal,
		},
		{
			name:     "goal captured verbatim",
			state:    State{Step: StepGoal},
			text:     "  Sleep before 11pm on school nights ",
			wantStep: StepSupport,
			check:    func(t *testing.T, s State) { assert.Equal(t, "Sleep before 11pm on school nights", s.Goal) },
		},
		{
			name:     "support captured",
			state:    State{Step: StepSupport, Goal: "g"},
			text:     "my aunty",
			wantStep: StepNextStep,
			check:    func(t *testing.T, s State) { assert.Equal(t, "my aunty", s.Support) },
		},
		{
			name:     "next step captured",
			state:    State{Step: StepNextStep},
			text:     "put my phone away at 10",
			wantStep: StepDone,
			check:    func(t *testing.T, s State) { assert.Equal(t, "put my phone away at 10", s.NextStep) },
		},
		{
			name:     "worry words only jump from strengths",
			state:    State{Step: StepGoal},
			text:     "stress less",
			wantStep: StepSupport,
			check:    func(t *testing.T, s State) { assert.Empty(t, s.Worries) },
		},
		{
			name:     "unknown step restarts",
			state:    State{Step: "bogus", Goal: "old"},
			text:     "music",
			wantStep: StepStrengths,
			check: func(t *testing.T, s State) {
				assert.Equal(t, []string{"music"}, s.Strengths)
				assert.Empty(t, s.Goal)
			},
		},
	}

	e := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, prompt := e.Advance(tt.state, tt.text)
			assert.Equal(t, tt.wantStep, got.Step)
			assert.Equal(t, e.Prompt(tt.wantStep), prompt)
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestEngine_DoneIsTerminal(t *testing.T) {
	e := newTestEngine()
	done := State{Step: StepDone, Goal: "g", Support: "s", NextStep: "n"}

	got, prompt := e.Advance(done, "anything else?")

	assert.Equal(t, done.Clone(), got)
	assert.Equal(t, content.DefaultPack().String(content.KeyWrapPrompt), prompt)
}

func TestEngine_EmptyTextIsIdempotent(t *testing.T) {
	e := newTestEngine()

	for _, step := range Steps[:len(Steps)-1] {
		t.Run(string(step), func(t *testing.T) {
			in := State{Step: step, Strengths: []string{"a"}, Worries: []string{"b"}}

			first, p1 := e.Advance(in, "")
			second, p2 := e.Advance(first, "   ")

			assert.Equal(t, in.Clone(), first)
			assert.Equal(t, first, second)
			assert.Equal(t, p1, p2)
			assert.Equal(t, e.Prompt(step), p1)
		})
	}
}

func TestEngine_ClarifyingQuestionDoesNotMutate(t *testing.T) {
	e := newTestEngine()
	in := State{Step: StepStrengths, Strengths: []string{"family"}}

	got, prompt := e.Advance(in, "What do you mean by strong?")

	assert.Equal(t, in.Clone(), got)
	assert.Equal(t, content.DefaultPack().String(content.KeyClarifyStrengths), prompt)
}

func TestEngine_DoesNotMutateInput(t *testing.T) {
	e := newTestEngine()
	in := State{Step: StepStrengths, Strengths: make([]string, 1, 8)}
	in.Strengths[0] = "dancing"

	got, _ := e.Advance(in, "basketball")
	got.Strengths[0] = "changed"

	require.Len(t, in.Strengths, 1)
	assert.Equal(t, "dancing", in.Strengths[0])
	assert.Equal(t, []string{"changed", "basketball"}, got.Strengths)
}

func TestIsWorrySignal(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"I feel really anxious", true},
		{"so much stress at school", true},
		{"can't sleep", true},
		{"worried about rent", true},
		{"my supportive family", false},
		{"playing footy", false},
		{"following my culture", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWorrySignal(tt.text))
		})
	}
}
