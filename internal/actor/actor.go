// Package actor implements troupe's named personas: RBA identity,
// deterministic prompt composition, and the execution pipeline against
// the responder boundary.
package actor

import (
	"context"
	"fmt"

	"github.com/troupe-cli/troupe/internal/responder"
	"github.com/troupe-cli/troupe/internal/sessionlog"
)

// ModelDefault is the sentinel model name that falls through to the
// workspace's configured default.
const ModelDefault = "default"

// WorkspaceContext is the actor's back-reference to its owning workspace.
// It provides context, not ownership: the working directory responder
// calls run in, and the configured default model.
type WorkspaceContext interface {
	Root() string
	DefaultModel() string
}

// Actor is a named persona bound to a behavior and a responder.
type Actor struct {
	def       Definition
	behavior  Behavior
	responder responder.Responder
	ws        WorkspaceContext
	log       *sessionlog.Logger
}

// New creates an actor. The workspace context and session logger may be
// nil for detached use.
func New(def Definition, behavior Behavior, r responder.Responder, ws WorkspaceContext, log *sessionlog.Logger) *Actor {
	return &Actor{
		def:       def,
		behavior:  behavior,
		responder: r,
		ws:        ws,
		log:       log,
	}
}

// Name returns the actor's name.
func (a *Actor) Name() string { return a.def.Name }

// Definition returns a copy of the actor's persistent definition.
func (a *Actor) Definition() Definition { return a.def }

// ActOptions carries per-call overrides. They are scoped to one Act call
// by construction; nothing here outlives the invocation.
type ActOptions struct {
	// Model overrides the model for this call. Empty or the sentinel
	// "default" falls through to the workspace's configured default.
	Model string

	// ResumeToken resumes a previous responder conversation.
	ResumeToken string
}

// Outcome is the result of one Act call: either response text, or a
// signal that the responder applied changes directly.
type Outcome struct {
	Text    string
	Applied bool
}

// Act composes the prompt, evaluates the behavior's decision, and
// dispatches to the responder. One actor's failure is returned as an
// error value the caller can branch on; it never aborts anything beyond
// this call.
func (a *Actor) Act(ctx context.Context, raw string, opts ActOptions) (*Outcome, error) {
	if a.responder == nil {
		return nil, fmt.Errorf("actor %s has no responder", a.def.Name)
	}

	a.logPrompt(raw)

	composed := a.ComposePrompt(raw)
	a.logProcessedPrompt(composed)

	action := a.behavior.Decide(composed)
	model := a.resolveModel(opts)

	text, err := a.responder.Respond(ctx, responder.Request{
		Prompt:      action.Text,
		Model:       model,
		Dir:         a.workingDir(),
		ResumeToken: opts.ResumeToken,
	})
	if err != nil {
		a.logError(err)
		return nil, fmt.Errorf("actor %s: %w", a.def.Name, err)
	}

	switch action.Kind {
	case ActionApplyChanges:
		a.logResponse(model, "")
		return &Outcome{Applied: true}, nil
	default:
		a.logResponse(model, text)
		return &Outcome{Text: text}, nil
	}
}

// resolveModel applies the per-call precedence: an explicit override that
// is not the "default" sentinel wins; otherwise the workspace default;
// otherwise no model selection at all, letting the responder pick.
func (a *Actor) resolveModel(opts ActOptions) string {
	if opts.Model != "" && opts.Model != ModelDefault {
		return opts.Model
	}
	if a.ws != nil {
		return a.ws.DefaultModel()
	}
	return ""
}

func (a *Actor) workingDir() string {
	if a.ws == nil {
		return ""
	}
	return a.ws.Root()
}

func (a *Actor) logPrompt(text string) {
	if a.log != nil {
		a.log.Prompt(a.def.Name, text)
	}
}

func (a *Actor) logProcessedPrompt(text string) {
	if a.log != nil {
		a.log.ProcessedPrompt(a.def.Name, text)
	}
}

func (a *Actor) logResponse(model, text string) {
	if a.log != nil {
		a.log.Response(a.def.Name, model, text)
	}
}

func (a *Actor) logError(err error) {
	if a.log != nil {
		a.log.Error(a.def.Name, err.Error())
	}
}
