package safety

import (
	"strings"
)

// Phase tracks the two-turn confirm-then-disclose protocol across requests.
type Phase string

const (
	PhaseNone                 Phase = "none"
	PhaseAwaitingConfirmation Phase = "awaitingConfirmation"
	PhaseResolved             Phase = "resolved"
)

// ParsePhase maps unknown or empty values to PhaseNone.
func ParsePhase(s string) Phase {
	switch Phase(s) {
	case PhaseAwaitingConfirmation, PhaseResolved:
		return Phase(s)
	default:
		return PhaseNone
	}
}

const (
	checkInText = "I am really sorry you are feeling this way, and I am glad you told me. " +
		"Is it okay if we keep talking for a moment? If you would like, I can share some support services you can contact right now."

	acknowledgeText = "Thank you for letting me know. I am here if things change, and support is always there if you need it."

	disclosureOpening = "I am really sorry you are feeling this way. I hear you. Right now, your safety comes first.\n\n" +
		"If you are in immediate danger, please call 000 or go to the nearest emergency department. " +
		"These services can talk with you right now:"

	disclosureClosing = "Is there someone nearby, family or a trusted person, who can sit with you while you reach out?"
)

// Outcome is what the protocol decided for one turn.
type Outcome struct {
	Assessment Assessment
	Phase      Phase
	// Active means the crisis protocol owns this turn and Reply must be sent as-is.
	Active    bool
	Reply     string
	Disclosed bool
}

// Protocol runs the confirm-then-disclose exchange on top of a Classifier.
type Protocol struct {
	classifier *Classifier
	contacts   Contacts
}

func NewProtocol(classifier *Classifier, contacts Contacts) *Protocol {
	if len(contacts) == 0 {
		contacts = FallbackContacts()
	}
	return &Protocol{classifier: classifier, contacts: contacts.clone()}
}

// Step advances the protocol for one user message.
//
//   - awaitingConfirmation: a reassurance without override resolves quietly; anything else
//     discloses the full contact set. Both end in resolved.
//   - none: a crisis match asks a gentle permission question and waits; contacts are withheld.
//   - resolved: a new crisis match discloses immediately, the earlier check-in already happened.
func (p *Protocol) Step(phase Phase, text string) Outcome {
	a := p.classifier.Assess(text, phase)

	if phase == PhaseAwaitingConfirmation {
		if strings.TrimSpace(text) == "" {
			return Outcome{Assessment: a, Phase: phase, Active: true, Reply: checkInText}
		}
		if a.Level != LevelCrisis && IsReassurance(text) {
			return Outcome{Assessment: a, Phase: PhaseResolved, Active: true, Reply: acknowledgeText}
		}
		return p.disclose(a)
	}

	if a.Level != LevelCrisis {
		return Outcome{Assessment: a, Phase: phase}
	}

	if phase == PhaseResolved {
		return p.disclose(a)
	}
	return Outcome{Assessment: a, Phase: PhaseAwaitingConfirmation, Active: true, Reply: checkInText}
}

func (p *Protocol) disclose(a Assessment) Outcome {
	if a.Level == LevelNone {
		a.Level = LevelCrisis
	}
	a.Contacts = p.contacts.clone()
	return Outcome{
		Assessment: a,
		Phase:      PhaseResolved,
		Active:     true,
		Reply:      DisclosureText(p.contacts),
		Disclosed:  true,
	}
}

// DisclosureText renders the safety opening, every contact line, and a closing question.
func DisclosureText(c Contacts) string {
	if len(c) == 0 {
		c = FallbackContacts()
	}
	var b strings.Builder
	b.WriteString(disclosureOpening)
	b.WriteString("\n")
	b.WriteString(strings.Join(c.Lines(), "\n"))
	b.WriteString("\n\n")
	b.WriteString(disclosureClosing)
	return b.String()
}

// FallbackDisclosure is the reply used when anything fails inside the crisis path.
func FallbackDisclosure() string {
	return DisclosureText(FallbackContacts())
}

// Contacts returns a copy of the contact set the protocol discloses.
func (p *Protocol) Contacts() Contacts {
	return p.contacts.clone()
}
