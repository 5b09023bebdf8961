package testutil

import (
	"context"
	"sync"

	"github.com/troupe-cli/troupe/internal/responder"
)

// StubResponder is a scriptable Responder. It records every request and
// replays the configured responses in order; calls past the end repeat
// the last response. With no responses configured it answers "ok".
type StubResponder struct {
	mu sync.Mutex

	// Responses are replayed in call order.
	Responses []string

	// Err, when set, is returned for every call.
	Err error

	// Requests holds every request seen, in call order.
	Requests []responder.Request

	calls int
}

var _ responder.Responder = (*StubResponder)(nil)

// Respond implements responder.Responder.
func (s *StubResponder) Respond(_ context.Context, req responder.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Requests = append(s.Requests, req)
	s.calls++

	if s.Err != nil {
		return "", s.Err
	}

	if len(s.Responses) == 0 {
		return "ok", nil
	}
	idx := s.calls - 1
	if idx >= len(s.Responses) {
		idx = len(s.Responses) - 1
	}
	return s.Responses[idx], nil
}

// Calls returns the number of Respond invocations seen so far.
func (s *StubResponder) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
