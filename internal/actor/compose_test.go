package actor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComposeActor(role, criteria, intent string) *Actor {
	def := Definition{
		Name:     "reviewer",
		Role:     Field{Name: "Reviewer", Prompt: role},
		Criteria: Field{Name: "Thorough", Prompt: criteria},
		Intent:   Field{Name: "Review", Prompt: intent},
	}
	return New(def, TextResponder(), nil, nil, nil)
}

func TestComposePrompt_AllSections(t *testing.T) {
	t.Parallel()

	a := newComposeActor("You review code.", "No nitpicks.", "Find real bugs.")
	got := a.ComposePrompt("please review this diff")

	want := strings.Join([]string{
		"## Actor: reviewer",
		"",
		"### Role",
		"You review code.",
		"",
		"### Acceptance Criteria",
		"No nitpicks.",
		"",
		"### Intent",
		"Find real bugs.",
		"",
		"### Prompt",
		"please review this diff",
	}, "\n")

	assert.Equal(t, want, got)
}

func TestComposePrompt_Deterministic(t *testing.T) {
	t.Parallel()

	a := newComposeActor("role text", "criteria text", "intent text")
	first := a.ComposePrompt("same input")
	second := a.ComposePrompt("same input")

	// Byte-identical output is a hard contract.
	assert.Equal(t, first, second)
}

func TestComposePrompt_BlankSectionsOmitted(t *testing.T) {
	t.Parallel()

	a := newComposeActor("", "   \t", "Find bugs.")
	got := a.ComposePrompt("hello")

	assert.NotContains(t, got, "### Role")
	assert.NotContains(t, got, "### Acceptance Criteria")
	assert.Contains(t, got, "### Intent")
	assert.Contains(t, got, "### Prompt")
}

func TestComposePrompt_NoSections(t *testing.T) {
	t.Parallel()

	a := newComposeActor("", "", "")
	got := a.ComposePrompt("hello")

	want := strings.Join([]string{
		"## Actor: reviewer",
		"",
		"### Prompt",
		"hello",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestComposePrompt_TrailingWhitespaceTrimmed(t *testing.T) {
	t.Parallel()

	a := newComposeActor("role", "", "")
	got := a.ComposePrompt("text with trailing space   \n\n")

	require.NotEmpty(t, got)
	assert.Equal(t, strings.TrimRight(got, " \t\r\n"), got)
}
