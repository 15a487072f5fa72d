package flow

import (
	"regexp"
	"strings"

	"staystrong-chat-be/pkg/content"
)

type stepKind int

const (
	// collect appends every non-empty answer until the user types the advance token.
	collect stepKind = iota
	// capture stores the first non-empty answer and moves on.
	capture
	terminal
)

type transition struct {
	kind   stepKind
	next   Step
	prompt string
	list   func(*State) *[]string
	field  func(*State) *string
}

// Transition table. Every Step has exactly one entry; there are no backward edges.
var transitions = map[Step]transition{
	StepStrengths: {kind: collect, next: StepWorries, prompt: content.KeyStrengthsPrompt, list: func(s *State) *[]string { return &s.Strengths }},
	StepWorries:   {kind: collect, next: StepGoal, prompt: content.KeyWorriesPrompt, list: func(s *State) *[]string { return &s.Worries }},
	StepGoal:      {kind: capture, next: StepSupport, prompt: content.KeyGoalPrompt, field: func(s *State) *string { return &s.Goal }},
	StepSupport:   {kind: capture, next: StepNextStep, prompt: content.KeySupportPrompt, field: func(s *State) *string { return &s.Support }},
	StepNextStep:  {kind: capture, next: StepDone, prompt: content.KeyNextStepPrompt, field: func(s *State) *string { return &s.NextStep }},
	StepDone:      {kind: terminal, next: StepDone, prompt: content.KeyWrapPrompt},
}

// AdvanceToken moves a collecting step on.
const AdvanceToken = "next"

var (
	clarifyRe = regexp.MustCompile(`(?i)what\s+do\s+you\s+mean.*strong`)

	// Word-initial stems, so "supportive family" or "follow" do not read as worries.
	worryRe = regexp.MustCompile(`(?i)\b(?:stress\w*|anxi\w*|panic\w*|sad\w*|depress\w*|low|angry|anger|overwhelm\w*|` +
		`worr\w*|scared|fear\w*|tired|exhausted|burn(?:t|ed)\s+out|lonely|sleep\w*|insomnia|can'?t\s+sleep|` +
		`money|bills?|rent|debt|broke|struggl\w*|problem\w*|issue\w*)\b`)
)

// Strings supplies prompt text by key.
type Strings interface {
	String(key string) string
}

// Engine is a pure function of (state, text); it holds only prompt text.
type Engine struct {
	strings Strings
}

func NewEngine(s Strings) *Engine {
	if s == nil {
		s = content.DefaultPack()
	}
	return &Engine{strings: s}
}

// IsWorrySignal reports whether text reads like a worry rather than a strength.
func IsWorrySignal(text string) bool {
	return worryRe.MatchString(text)
}

// IsClarifyingQuestion reports whether the user is asking what "strong" means.
func IsClarifyingQuestion(text string) bool {
	return clarifyRe.MatchString(text)
}

// Prompt returns the question for step.
func (e *Engine) Prompt(step Step) string {
	t, ok := transitions[step]
	if !ok {
		t = transitions[StepDone]
	}
	return e.strings.String(t.prompt)
}

// Advance applies one user message and returns the new state with the next prompt. The
// input state is never modified. An unknown step is treated as a fresh session.
func (e *Engine) Advance(state State, userText string) (State, string) {
	s := state.Clone()
	if !s.Valid() {
		s = NewState()
	}

	txt := strings.TrimSpace(userText)

	if IsClarifyingQuestion(txt) {
		return s, e.strings.String(content.KeyClarifyStrengths)
	}

	t := transitions[s.Step]
	if txt == "" || t.kind == terminal {
		return s, e.Prompt(s.Step)
	}

	switch t.kind {
	case collect:
		if strings.EqualFold(txt, AdvanceToken) {
			s.Step = t.next
			return s, e.Prompt(s.Step)
		}
		if s.Step == StepStrengths && IsWorrySignal(txt) {
			s.Step = StepWorries
			s.Worries = append(s.Worries, txt)
			return s, e.strings.String(content.KeyWorryShiftAck) + " " + e.Prompt(StepWorries)
		}
		list := t.list(&s)
		*list = append(*list, txt)

	case capture:
		*t.field(&s) = txt
		s.Step = t.next
	}

	return s, e.Prompt(s.Step)
}
