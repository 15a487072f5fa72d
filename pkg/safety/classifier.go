package safety

import (
	"strings"
	"time"
)

// Level is the outcome tier of a single assessment.
type Level string

const (
	LevelNone    Level = "none"
	LevelMonitor Level = "monitor"
	LevelCrisis  Level = "crisis"
)

// Assessment is computed fresh for every message and never stored.
type Assessment struct {
	Level   Level
	Trigger string
	// Contacts is only set once disclosure is authorized by the protocol.
	Contacts Contacts
}

// CrisisEvent is one audit record.
type CrisisEvent struct {
	Time    time.Time
	Trigger string
	Text    string
	Phase   Phase
}

// AuditSink receives every crisis match. It is write-only: nothing it does feeds back into
// classification.
type AuditSink interface {
	RecordCrisis(ev CrisisEvent)
}

type nopAudit struct{}

func (nopAudit) RecordCrisis(CrisisEvent) {}

// Classifier matches text against the crisis tier, then the monitor tier.
type Classifier struct {
	crisis  *PatternSet
	monitor *PatternSet
	audit   AuditSink
	bypass  bool
	now     func() time.Time
}

type ClassifierOption func(*Classifier)

// WithAudit sets where crisis matches are recorded.
func WithAudit(a AuditSink) ClassifierOption {
	return func(c *Classifier) {
		if a != nil {
			c.audit = a
		}
	}
}

// WithBypass disables detection entirely. Only for local development.
func WithBypass(bypass bool) ClassifierOption {
	return func(c *Classifier) { c.bypass = bypass }
}

// WithClock overrides the audit timestamp source.
func WithClock(now func() time.Time) ClassifierOption {
	return func(c *Classifier) { c.now = now }
}

// NewClassifier builds a classifier from the built-in patterns plus any local crisis
// expressions.
func NewClassifier(localCrisis []string, opts ...ClassifierOption) (*Classifier, error) {
	crisis, err := NewPatternSet(CrisisBuiltins, localCrisis)
	if err != nil {
		return nil, err
	}
	c := &Classifier{
		crisis:  crisis,
		monitor: MustPatternSet(MonitorBuiltins),
		audit:   nopAudit{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Assess classifies one message. phase is only used to annotate the audit record.
func (c *Classifier) Assess(text string, phase Phase) Assessment {
	if c.bypass || strings.TrimSpace(text) == "" {
		return Assessment{Level: LevelNone}
	}

	t := normalizeApostrophes(text)
	if m, ok := c.crisis.Match(t); ok {
		c.audit.RecordCrisis(CrisisEvent{
			Time:    c.now(),
			Trigger: m,
			Text:    text,
			Phase:   phase,
		})
		return Assessment{Level: LevelCrisis, Trigger: m}
	}

	if m, ok := c.monitor.Match(t); ok {
		return Assessment{Level: LevelMonitor, Trigger: m}
	}
	return Assessment{Level: LevelNone}
}
