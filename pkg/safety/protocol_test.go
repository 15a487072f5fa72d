package safety

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProtocol(t *testing.T, contacts Contacts) *Protocol {
	t.Helper()
	return NewProtocol(newTestClassifier(t), contacts)
}

func TestProtocol_FirstDetectionAsksWithoutNumbers(t *testing.T) {
	p := newTestProtocol(t, nil)

	out := p.Step(PhaseNone, "I want to die")

	assert.True(t, out.Active)
	assert.False(t, out.Disclosed)
	assert.Equal(t, PhaseAwaitingConfirmation, out.Phase)
	assert.Equal(t, LevelCrisis, out.Assessment.Level)
	assert.Empty(t, out.Assessment.Contacts)
	for _, n := range FallbackContacts().Numbers() {
		assert.NotContains(t, out.Reply, n)
	}
}

func TestProtocol_Confirmation(t *testing.T) {
	contacts := Contacts{"lifeline": "13 11 14", "13yarn": "13 92 76", "local_clinic": "08 8999 0000"}

	tests := []struct {
		name          string
		reply         string
		wantDisclosed bool
	}{
		{"reassured", "ok", false},
		{"fine", "I'm fine now", false},
		{"still struggling", "still struggling", true},
		{"ambiguous", "idk", true},
		{"crisis again", "I want to die", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProtocol(t, contacts)
			out := p.Step(PhaseAwaitingConfirmation, tt.reply)

			assert.True(t, out.Active)
			assert.Equal(t, PhaseResolved, out.Phase)
			assert.Equal(t, tt.wantDisclosed, out.Disclosed)

			if tt.wantDisclosed {
				for _, n := range contacts.Numbers() {
					assert.Contains(t, out.Reply, n)
				}
				assert.Len(t, out.Assessment.Contacts, len(contacts))
			} else {
				for _, n := range contacts.Numbers() {
					assert.NotContains(t, out.Reply, n)
				}
			}
		})
	}
}

func TestProtocol_EmptyReplyWhileAwaitingReasks(t *testing.T) {
	p := newTestProtocol(t, nil)

	out := p.Step(PhaseAwaitingConfirmation, "  ")
	assert.True(t, out.Active)
	assert.Equal(t, PhaseAwaitingConfirmation, out.Phase)
	assert.Equal(t, checkInText, out.Reply)
}

func TestProtocol_NonCrisisIsInactive(t *testing.T) {
	p := newTestProtocol(t, nil)

	for _, phase := range []Phase{PhaseNone, PhaseResolved} {
		out := p.Step(phase, "I like footy")
		assert.False(t, out.Active)
		assert.Equal(t, phase, out.Phase)
	}

	out := p.Step(PhaseNone, "no reason to live")
	assert.False(t, out.Active)
	assert.Equal(t, LevelMonitor, out.Assessment.Level)
}

func TestProtocol_ResolvedThenCrisisDisclosesImmediately(t *testing.T) {
	p := newTestProtocol(t, nil)

	out := p.Step(PhaseResolved, "I want to kill myself")
	assert.True(t, out.Disclosed)
	assert.Equal(t, PhaseResolved, out.Phase)
}

func TestDisclosureText(t *testing.T) {
	text := DisclosureText(Contacts{"lifeline": "13 11 14", "zeta": "1", "alpha": "2"})

	assert.True(t, strings.HasPrefix(text, disclosureOpening))
	assert.True(t, strings.HasSuffix(text, disclosureClosing))

	life := strings.Index(text, "- Lifeline: 13 11 14")
	alpha := strings.Index(text, "- alpha: 2")
	zeta := strings.Index(text, "- zeta: 1")
	require.True(t, life >= 0 && alpha >= 0 && zeta >= 0)
	assert.Less(t, life, alpha)
	assert.Less(t, alpha, zeta)

	assert.Contains(t, DisclosureText(nil), "- Lifeline: 13 11 14")
}

func TestParsePhase(t *testing.T) {
	assert.Equal(t, PhaseAwaitingConfirmation, ParsePhase("awaitingConfirmation"))
	assert.Equal(t, PhaseResolved, ParsePhase("resolved"))
	assert.Equal(t, PhaseNone, ParsePhase("bogus"))
	assert.Equal(t, PhaseNone, ParsePhase(""))
}
