// Package loop drives repeated actor invocations to a terminal state.
package loop

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/troupe-cli/troupe/internal/actor"
	"github.com/troupe-cli/troupe/internal/sessionlog"
)

// State is the controller's run state. Runs start in StateRunning and end
// in one of the terminal states.
type State int

const (
	StateRunning State = iota
	StateCompleted
	StateError
	StateMaxIterations
)

// String returns a human-readable description of the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateError:
		return "error"
	case StateMaxIterations:
		return "max iterations reached"
	default:
		return "unknown"
	}
}

// Default sentinel substrings scanned for in single-actor results.
const (
	DefaultStopKeyword  = "DONE"
	DefaultErrorKeyword = "ERROR"
)

// Observer fires synchronously after each iteration with the iteration
// number and the results collected so far. It must not influence control
// flow; its return is ignored and the slice is a copy.
type Observer func(iteration int, results []string)

// Runner executes iterative actor runs.
type Runner struct {
	// StopKeyword ends a single-actor run with StateCompleted when
	// found in a result. Empty means DefaultStopKeyword.
	StopKeyword string

	// ErrorKeyword ends a single-actor run with StateError when found
	// in a result. Empty means DefaultErrorKeyword.
	ErrorKeyword string

	// Observer, when set, fires after each iteration.
	Observer Observer

	// Log, when set, records run progress to the session log.
	Log *sessionlog.Logger
}

// Run drives one or many actors for up to maxIterations iterations and
// returns the ordered results with the terminal state. Iterations execute
// for indices 1..maxIterations inclusive, never maxIterations+1.
//
// Single-actor mode feeds each iteration either continuePrompt or, when
// that is empty, the previous iteration's result, and scans results for
// the stop and error keywords. Multi-actor mode invokes every actor with
// the same current prompt and joins the collected texts into one result
// per iteration, which also becomes the next prompt; the run ends early
// when an iteration collects nothing. Both modes return at most
// maxIterations results.
func (r *Runner) Run(ctx context.Context, actors []*actor.Actor, startPrompt, continuePrompt string, maxIterations int) ([]string, State) {
	if len(actors) == 0 || maxIterations <= 0 {
		return nil, StateMaxIterations
	}

	r.logInfo(fmt.Sprintf("starting run: %d actor(s), max %d iterations", len(actors), maxIterations))

	var results []string
	var state State
	if len(actors) == 1 {
		results, state = r.runSingle(ctx, actors[0], startPrompt, continuePrompt, maxIterations)
	} else {
		results, state = r.runMulti(ctx, actors, startPrompt, maxIterations)
	}

	r.logInfo("run ended: " + state.String())
	return results, state
}

func (r *Runner) runSingle(ctx context.Context, a *actor.Actor, startPrompt, continuePrompt string, maxIterations int) ([]string, State) {
	stopKeyword := r.StopKeyword
	if stopKeyword == "" {
		stopKeyword = DefaultStopKeyword
	}
	errorKeyword := r.ErrorKeyword
	if errorKeyword == "" {
		errorKeyword = DefaultErrorKeyword
	}

	var results []string
	prompt := startPrompt

	for i := 1; i <= maxIterations; i++ {
		outcome, err := a.Act(ctx, prompt, actor.ActOptions{})
		if err != nil {
			log.Warn().Err(err).Str("actor", a.Name()).Int("iteration", i).Msg("actor failed")
			r.observe(i, results)
			return results, StateError
		}

		text := ""
		if !outcome.Applied {
			text = outcome.Text
		}
		results = append(results, text)
		r.observe(i, results)

		if strings.Contains(text, stopKeyword) {
			return results, StateCompleted
		}
		if strings.Contains(text, errorKeyword) {
			return results, StateError
		}

		// Feedback mode: without a continue prompt, the next input is
		// the literal text of this iteration's result.
		if continuePrompt != "" {
			prompt = continuePrompt
		} else {
			prompt = text
		}
	}

	return results, StateMaxIterations
}

func (r *Runner) runMulti(ctx context.Context, actors []*actor.Actor, startPrompt string, maxIterations int) ([]string, State) {
	var results []string
	prompt := startPrompt

	for i := 1; i <= maxIterations; i++ {
		var collected []string
		for _, a := range actors {
			outcome, err := a.Act(ctx, prompt, actor.ActOptions{})
			if err != nil {
				// One actor's failure never aborts the iteration.
				log.Warn().Err(err).Str("actor", a.Name()).Int("iteration", i).Msg("actor failed")
				continue
			}
			if outcome.Applied || outcome.Text == "" {
				continue
			}
			collected = append(collected, outcome.Text)
		}

		if len(collected) == 0 {
			r.observe(i, results)
			return results, StateCompleted
		}

		// One result per iteration: the joined text, which is also the
		// next iteration's prompt.
		joined := strings.Join(collected, "\n\n")
		results = append(results, joined)
		r.observe(i, results)

		prompt = joined
	}

	return results, StateMaxIterations
}

func (r *Runner) observe(iteration int, results []string) {
	if r.Observer != nil {
		r.Observer(iteration, slices.Clone(results))
	}
}

func (r *Runner) logInfo(text string) {
	if r.Log != nil {
		r.Log.Info(text)
	}
}
