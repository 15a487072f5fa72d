package dialogue

import (
	"strings"

	"staystrong-chat-be/pkg/flow"
)

const personaRules = `You are a warm, plain-English wellbeing companion for young people.
- Reply in at most 3 short sentences.
- Use everyday words. No jargon, no diagnosis, no medical advice.
- Never mention that you are an AI and never add disclaimers.
- Never give phone numbers, helplines or websites.
- Acknowledge what the user said before anything else.
- Do not ask the next planning question yourself; it is added after your reply.`

const monitorNote = `The user may be doing it tough. Gently check in on how they are going right now and ` +
	`let them know it is okay to reach out to someone they trust. Keep it calm and short.`

// InstructionInput is everything one backend call is grounded on.
type InstructionInput struct {
	StyleGuide   string
	LexiconNotes []string
	Context      string
	Step         flow.Step
	Monitor      bool
}

// InstructionComposer assembles the system instructions sent to the backend.
type InstructionComposer struct{}

func NewInstructionComposer() *InstructionComposer {
	return &InstructionComposer{}
}

// Compose writes persona rules first, then each optional section only when it has content.
func (c *InstructionComposer) Compose(in InstructionInput) string {
	var prompt strings.Builder

	c.writePersona(&prompt)
	c.writeStyleGuide(&prompt, in.StyleGuide)
	c.writeLexiconNotes(&prompt, in.LexiconNotes)
	c.writeContext(&prompt, in.Context)
	c.writeFlowPosition(&prompt, in.Step)
	if in.Monitor {
		c.writeMonitorNote(&prompt)
	}

	return strings.TrimSpace(prompt.String())
}

func (c *InstructionComposer) writePersona(prompt *strings.Builder) {
	prompt.WriteString("<persona>\n")
	prompt.WriteString(personaRules)
	prompt.WriteString("\n</persona>\n\n")
}

func (c *InstructionComposer) writeStyleGuide(prompt *strings.Builder, guide string) {
	guide = strings.TrimSpace(guide)
	if guide == "" {
		return
	}
	prompt.WriteString("<style_guide>\n")
	prompt.WriteString(guide)
	prompt.WriteString("\n</style_guide>\n\n")
}

func (c *InstructionComposer) writeLexiconNotes(prompt *strings.Builder, notes []string) {
	if len(notes) == 0 {
		return
	}
	prompt.WriteString("<community_terms>\n")
	prompt.WriteString("The user used these community terms (phrase -> meaning). Understand them, and keep using the user's own words:\n")
	for _, n := range notes {
		prompt.WriteString("- ")
		prompt.WriteString(n)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</community_terms>\n\n")
}

func (c *InstructionComposer) writeContext(prompt *strings.Builder, ctx string) {
	ctx = strings.TrimSpace(ctx)
	if ctx == "" {
		return
	}
	prompt.WriteString("<approved_context>\n")
	prompt.WriteString("Use only if it fits the user's message:\n")
	prompt.WriteString(ctx)
	prompt.WriteString("\n</approved_context>\n\n")
}

func (c *InstructionComposer) writeFlowPosition(prompt *strings.Builder, step flow.Step) {
	if step == "" {
		return
	}
	prompt.WriteString("<plan_step>\n")
	prompt.WriteString("The user is answering the ")
	prompt.WriteString(string(step))
	prompt.WriteString(" question of their wellbeing plan.\n")
	prompt.WriteString("</plan_step>\n\n")
}

func (c *InstructionComposer) writeMonitorNote(prompt *strings.Builder) {
	prompt.WriteString("<check_in>\n")
	prompt.WriteString(monitorNote)
	prompt.WriteString("\n</check_in>\n\n")
}
