package actor

// ActionKind is the closed, two-way branch an actor takes after composing
// a prompt.
type ActionKind int

const (
	// ActionRespond sends the composed prompt and returns the response
	// text to the caller.
	ActionRespond ActionKind = iota

	// ActionApplyChanges sends the composed prompt and lets the
	// responder mutate the workspace directly; no text is returned.
	ActionApplyChanges
)

// String returns a human-readable description of the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionRespond:
		return "respond"
	case ActionApplyChanges:
		return "apply changes"
	default:
		return "unknown"
	}
}

// Action is a behavior's decision for one composed prompt.
type Action struct {
	Kind ActionKind
	Text string
}

// Behavior decides what an actor does with a composed prompt. The variant
// set is closed: an actor is either a text responder or an autopilot,
// never a per-call mix.
type Behavior interface {
	Decide(composed string) Action
}

type textResponder struct{}

func (textResponder) Decide(composed string) Action {
	return Action{Kind: ActionRespond, Text: composed}
}

type autopilot struct{}

func (autopilot) Decide(composed string) Action {
	return Action{Kind: ActionApplyChanges, Text: composed}
}

// TextResponder returns the behavior that always responds with text.
func TextResponder() Behavior { return textResponder{} }

// Autopilot returns the behavior that always applies changes directly.
func Autopilot() Behavior { return autopilot{} }
