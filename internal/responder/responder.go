// Package responder defines the boundary to the external text-generation
// capability, plus the default implementation that shells out to a
// Claude-style CLI.
package responder

import (
	"context"
	"errors"
	"fmt"
)

// Request carries everything a responder needs for one call.
type Request struct {
	// Prompt is the composed prompt text.
	Prompt string

	// Model selects a model. Empty lets the responder pick.
	Model string

	// Dir is the working directory for the call. Empty means the
	// process working directory.
	Dir string

	// ResumeToken resumes a previous responder conversation, when the
	// implementation supports that.
	ResumeToken string
}

// Responder turns a composed prompt into response text. Ordinary failures
// (nonzero exit, empty output) are reported as a *Failure error the
// caller can branch on, so a multi-actor run continues past one actor's
// failure.
type Responder interface {
	Respond(ctx context.Context, req Request) (string, error)
}

// Failure describes an ordinary responder failure.
type Failure struct {
	// Reason is a short human-readable description.
	Reason string

	// ExitCode is the process exit code, when the responder is an
	// external process. Zero when not applicable.
	ExitCode int

	// Detail carries stderr or other diagnostic output.
	Detail string
}

func (f *Failure) Error() string {
	if f.Detail != "" {
		return fmt.Sprintf("responder failure: %s: %s", f.Reason, f.Detail)
	}
	return fmt.Sprintf("responder failure: %s", f.Reason)
}

// IsFailure checks if an error is an ordinary responder failure rather
// than a fault in the surrounding machinery.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}
