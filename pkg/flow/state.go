package flow

// Step is one stage of the guided strengths -> worries -> goal dialogue.
type Step string

const (
	StepStrengths Step = "strengths"
	StepWorries   Step = "worries"
	StepGoal      Step = "goal"
	StepSupport   Step = "support"
	StepNextStep  Step = "nextStep"
	StepDone      Step = "done"
)

// Steps lists every step in dialogue order.
var Steps = []Step{StepStrengths, StepWorries, StepGoal, StepSupport, StepNextStep, StepDone}

// ParseStep reports whether s names a known step.
func ParseStep(s string) (Step, bool) {
	for _, st := range Steps {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Order is the position of s in the dialogue, or -1 when unknown.
func (s Step) Order() int {
	for i, st := range Steps {
		if st == s {
			return i
		}
	}
	return -1
}

// State is the plan collected so far. It travels with the caller between turns.
type State struct {
	Step      Step
	Strengths []string
	Worries   []string
	Goal      string
	Support   string
	NextStep  string
}

// NewState returns the state of a fresh session.
func NewState() State {
	return State{Step: StepStrengths, Strengths: []string{}, Worries: []string{}}
}

// Clone deep-copies the collected lists so the result shares nothing with s.
func (s State) Clone() State {
	out := s
	out.Strengths = append(make([]string, 0, len(s.Strengths)), s.Strengths...)
	out.Worries = append(make([]string, 0, len(s.Worries)), s.Worries...)
	return out
}

// Valid reports whether the step is one the engine understands.
func (s State) Valid() bool {
	return s.Step.Order() >= 0
}
