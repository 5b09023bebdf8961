package actor

import "strings"

// Section headings of the composed prompt template. The order is fixed:
// role, acceptance criteria, intent, then the raw prompt.
const (
	headingActor    = "## Actor: "
	headingRole     = "### Role"
	headingCriteria = "### Acceptance Criteria"
	headingIntent   = "### Intent"
	headingPrompt   = "### Prompt"
)

// ComposePrompt renders the actor's RBA template around the raw user
// text. The composition is deterministic: the same inputs produce
// byte-identical output, and downstream consumers rely on that. A blank
// RBA field's section is omitted entirely.
func (a *Actor) ComposePrompt(raw string) string {
	var b strings.Builder

	b.WriteString(headingActor)
	b.WriteString(a.def.Name)
	b.WriteString("\n")

	writeSection(&b, headingRole, a.def.Role.Prompt)
	writeSection(&b, headingCriteria, a.def.Criteria.Prompt)
	writeSection(&b, headingIntent, a.def.Intent.Prompt)

	b.WriteString("\n")
	b.WriteString(headingPrompt)
	b.WriteString("\n")
	b.WriteString(raw)

	return strings.TrimRight(b.String(), " \t\r\n")
}

func writeSection(b *strings.Builder, heading, prompt string) {
	if strings.TrimSpace(prompt) == "" {
		return
	}
	b.WriteString("\n")
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(prompt)
	b.WriteString("\n")
}
