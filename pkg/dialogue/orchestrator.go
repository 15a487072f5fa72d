package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"staystrong-chat-be/pkg/content"
	"staystrong-chat-be/pkg/flow"
	"staystrong-chat-be/pkg/knowledge"
	"staystrong-chat-be/pkg/llm"
	"staystrong-chat-be/pkg/safety"
	"staystrong-chat-be/pkg/style"
)

const (
	ModeCrisis          = "crisis"
	ToolRouteToSupport  = "route_to_support"
	FallbackApology     = "Sorry, I'm having trouble replying right now. Let's keep going together."
	GenericSupportiveLn = "I'm here with you, and we can take this one step at a time."
)

// Logger is the subset of the service logger the orchestrator writes to.
type Logger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}

// Retriever returns bullet lines of approved context for a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) (string, error)
}

// Normalizer rewrites community phrases and reports what it rewrote.
type Normalizer interface {
	Normalize(text string) (string, []string)
}

// Options tune backend calls and retrieval.
type Options struct {
	FastMode    bool
	K           int
	Temperature float64
	TopP        float64
	MaxTokens   int
	Timeout     time.Duration
}

func DefaultOptions() Options {
	return Options{K: 1, Temperature: 0.3, TopP: 0.9, MaxTokens: 120, Timeout: 60 * time.Second}
}

// Dependencies are constructed once at startup and shared read-only by every turn.
type Dependencies struct {
	Protocol   *safety.Protocol
	Engine     *flow.Engine
	Normalizer Normalizer
	Retriever  Retriever
	Styler     *style.Styler
	LLM        llm.LLMProvider
	Strings    *content.Pack
	Logger     Logger
}

// TurnRequest is one user message plus the caller's copy of the state.
type TurnRequest struct {
	Message   string
	State     ConversationState
	FastMode  *bool
	RequestID string
}

// TurnResult carries the new state. HasReply is false only for an empty message outside the
// crisis protocol.
type TurnResult struct {
	Reply    string
	HasReply bool
	Messages []string
	State    ConversationState
	Mode     string
	Tool     string
	Level    safety.Level
}

type Orchestrator struct {
	deps     Dependencies
	opts     Options
	guard    *ContactGuard
	composer *InstructionComposer
}

func NewOrchestrator(deps Dependencies, opts Options) (*Orchestrator, error) {
	if deps.Protocol == nil {
		return nil, fmt.Errorf("dialogue: safety protocol is required")
	}
	if deps.Engine == nil {
		return nil, fmt.Errorf("dialogue: flow engine is required")
	}
	if deps.LLM == nil {
		return nil, fmt.Errorf("dialogue: completion backend is required")
	}
	if deps.Styler == nil {
		deps.Styler = style.NewStyler(false)
	}
	if deps.Strings == nil {
		deps.Strings = content.DefaultPack()
	}
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}
	if opts.K <= 0 {
		opts.K = 1
	}

	return &Orchestrator{
		deps:     deps,
		opts:     opts,
		guard:    NewContactGuard(deps.Protocol.Contacts().Numbers()),
		composer: NewInstructionComposer(),
	}, nil
}

// Handle runs one turn. The request state is copied on entry and never referenced after
// return.
func (o *Orchestrator) Handle(ctx context.Context, req TurnRequest) TurnResult {
	state := req.State.Normalize()
	msg := strings.TrimSpace(req.Message)
	details := map[string]interface{}{"request_id": req.RequestID, "step": string(state.Step)}

	// 1. Safety gate
	outcome, ok := o.stepProtocol(state.CrisisPhase, msg, details)
	if !ok {
		state.CrisisPhase = safety.PhaseResolved
		return TurnResult{
			Reply: safety.FallbackDisclosure(), HasReply: true, State: state,
			Mode: ModeCrisis, Tool: ToolRouteToSupport, Level: safety.LevelCrisis,
		}
	}
	if outcome.Active {
		return o.crisisResult(state, outcome, details)
	}

	if msg == "" {
		return TurnResult{State: state, Level: safety.LevelNone}
	}

	// 2. Flow
	answered := state.Step
	next, prompt := o.deps.Engine.Advance(state.State, msg)
	state.State = next

	// 3. Normalize and retrieve
	normalized, notes := msg, []string(nil)
	if o.deps.Normalizer != nil {
		normalized, notes = o.deps.Normalizer.Normalize(msg)
	}
	contextText := o.retrieve(ctx, normalized, o.fastMode(req.FastMode), details)

	// 4. Backend
	monitor := outcome.Assessment.Level == safety.LevelMonitor
	instructions := o.composer.Compose(InstructionInput{
		StyleGuide:   o.deps.Strings.String(content.KeyStyleGuide),
		LexiconNotes: notes,
		Context:      contextText,
		Step:         answered,
		Monitor:      monitor,
	})
	reply := o.complete(ctx, instructions, msg, details)

	// 5. Style and guard
	reply = o.deps.Styler.Style(reply, monitor)
	if o.guard.ContainsContact(reply) {
		o.deps.Logger.Warn("DIALOGUE", "Contact number removed from backend reply", details)
		reply = GenericSupportiveLn
	}
	if reply == "" {
		reply = llm.EmptyReply
	}

	return TurnResult{
		Reply:    reply,
		HasReply: true,
		Messages: compact(reply, prompt),
		State:    state,
		Level:    outcome.Assessment.Level,
	}
}

// stepProtocol runs the safety protocol and reports false if it panicked.
func (o *Orchestrator) stepProtocol(phase safety.Phase, msg string, details map[string]interface{}) (out safety.Outcome, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			o.deps.Logger.Error("SAFETY", "Crisis protocol failed, using fallback disclosure", merge(details, map[string]interface{}{
				"panic": fmt.Sprint(r),
			}))
			ok = false
		}
	}()
	return o.deps.Protocol.Step(phase, msg), true
}

func (o *Orchestrator) crisisResult(state ConversationState, outcome safety.Outcome, details map[string]interface{}) TurnResult {
	state.CrisisPhase = outcome.Phase
	res := TurnResult{
		Reply:    outcome.Reply,
		HasReply: true,
		Messages: []string{outcome.Reply},
		State:    state,
		Mode:     ModeCrisis,
		Level:    outcome.Assessment.Level,
	}
	if outcome.Disclosed {
		res.Tool = ToolRouteToSupport
	}
	o.deps.Logger.Info("SAFETY", "Crisis protocol handled turn", merge(details, map[string]interface{}{
		"phase":     string(outcome.Phase),
		"disclosed": outcome.Disclosed,
	}))
	return res
}

func (o *Orchestrator) fastMode(override *bool) bool {
	if override != nil {
		return *override
	}
	return o.opts.FastMode
}

// retrieve never fails the turn; a missing index is logged as a configuration problem.
func (o *Orchestrator) retrieve(ctx context.Context, query string, fast bool, details map[string]interface{}) string {
	if fast || o.deps.Retriever == nil {
		return ""
	}
	text, err := o.deps.Retriever.Retrieve(ctx, query, o.opts.K)
	if err != nil {
		if errors.Is(err, knowledge.ErrIndexNotBuilt) {
			o.deps.Logger.Error("RETRIEVAL", "Knowledge index not built", merge(details, map[string]interface{}{"error": err.Error()}))
		} else {
			o.deps.Logger.Warn("RETRIEVAL", "Context retrieval skipped", merge(details, map[string]interface{}{"error": err.Error()}))
		}
		return ""
	}
	return text
}

func (o *Orchestrator) complete(ctx context.Context, instructions, msg string, details map[string]interface{}) string {
	if o.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := o.deps.LLM.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: instructions},
		{Role: llm.RoleUser, Content: msg},
	},
		llm.WithTemperature(o.opts.Temperature),
		llm.WithTopP(o.opts.TopP),
		llm.WithMaxTokens(o.opts.MaxTokens),
	)
	if err != nil {
		o.deps.Logger.Error("LLM", "Completion failed", merge(details, map[string]interface{}{
			"error":       err.Error(),
			"malformed":   errors.Is(err, llm.ErrMalformedResponse),
			"duration_ms": time.Since(start).Milliseconds(),
		}))
		return FallbackApology
	}
	o.deps.Logger.Info("LLM", "Completion finished", merge(details, map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
	}))
	if strings.TrimSpace(reply) == "" {
		return llm.EmptyReply
	}
	return reply
}

func compact(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func merge(base, extra map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
