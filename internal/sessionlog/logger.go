// Package sessionlog records every command, prompt, composed prompt,
// response, and error of a troupe session as append-only, line-oriented
// JSON files with time-bucketed rotation.
//
// A Logger starts out buffering entries in memory, because the workspace
// (and with it the log destination) may not be known yet. Binding it to a
// destination folder flushes the buffer verbatim as the first file's
// initial content. A disposed logger accepts and silently drops writes.
package sessionlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Session identifies one process-lifetime logging session.
type Session struct {
	ID            string
	StartedAt     time.Time
	BucketMinutes int
}

// NewSession creates a session with a random id.
func NewSession(bucketMinutes int) Session {
	return Session{
		ID:            uuid.NewString(),
		StartedAt:     time.Now(),
		BucketMinutes: bucketMinutes,
	}
}

// ErrAlreadyBound is returned when Bind is called on a bound or disposed
// logger. The Buffering -> Bound transition happens exactly once.
var ErrAlreadyBound = errors.New("session logger already bound")

type loggerState int

const (
	stateBuffering loggerState = iota
	stateBound
	stateDisposed
)

// Logger is the session event recorder. All state transitions and writes
// are serialized behind one mutex so concurrent callers cannot interleave
// partial lines.
type Logger struct {
	mu      sync.Mutex
	session Session
	state   loggerState

	// Buffering state.
	buffer []Entry

	// Bound state.
	dir      string
	fileName string
	file     *os.File

	// now allows tests to control entry timestamps.
	now func() time.Time
}

// New creates a Logger in the Buffering state.
func New(session Session) *Logger {
	return &Logger{
		session: session,
		now:     time.Now,
	}
}

// Session returns the logger's session.
func (l *Logger) Session() Session {
	return l.session
}

// Bind transitions the logger from Buffering to Bound. Entries are then
// written to <dir>/<sessionName>/<bucket-file>; the buffered entries are
// flushed in original order as the first file's initial content.
func (l *Logger) Bind(dir, sessionName string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != stateBuffering {
		return ErrAlreadyBound
	}

	target := filepath.Join(dir, sessionName)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// The first file is named after the first buffered entry, falling
	// back to the bind time for an empty buffer.
	first := l.now()
	if len(l.buffer) > 0 {
		first = l.buffer[0].Timestamp
	}

	l.dir = target
	l.state = stateBound
	if err := l.open(bucketFileName(first, l.session.BucketMinutes)); err != nil {
		l.state = stateBuffering
		l.dir = ""
		return err
	}

	for _, e := range l.buffer {
		l.append(e)
	}
	l.buffer = nil

	return nil
}

// Dispose transitions the logger to Disposed. Further writes are accepted
// and dropped, not errored. Safe to call on any state, more than once.
func (l *Logger) Dispose() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		if err := l.file.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close session log file")
		}
		l.file = nil
	}
	l.buffer = nil
	l.state = stateDisposed
}

// Write records one entry. The entry's timestamp and session id are
// stamped here; callers only supply category-specific fields.
func (l *Logger) Write(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.Timestamp = l.now()
	e.SessionID = l.session.ID

	switch l.state {
	case stateBuffering:
		l.buffer = append(l.buffer, e)
	case stateBound:
		l.rotate(e.Timestamp)
		l.append(e)
	case stateDisposed:
		// Dropped.
	}
}

// Command records a raw command line.
func (l *Logger) Command(command string) {
	l.Write(Entry{Category: CategoryCommand, Command: command})
}

// Prompt records the raw prompt text handed to an actor.
func (l *Logger) Prompt(actor, text string) {
	l.Write(Entry{Category: CategoryPrompt, Actor: actor, Text: text})
}

// ProcessedPrompt records the composed prompt sent to the responder.
func (l *Logger) ProcessedPrompt(actor, text string) {
	l.Write(Entry{Category: CategoryProcessedPrompt, Actor: actor, Text: text})
}

// Response records responder output for an actor.
func (l *Logger) Response(actor, model, text string) {
	l.Write(Entry{Category: CategoryResponse, Actor: actor, Model: model, Text: text})
}

// Info records an informational message.
func (l *Logger) Info(text string) {
	l.Write(Entry{Category: CategoryInfo, Text: text})
}

// Error records an actor-scoped error.
func (l *Logger) Error(actor, detail string) {
	l.Write(Entry{Category: CategoryError, Actor: actor, Detail: detail})
}

// CliError records a command-level error.
func (l *Logger) CliError(detail string) {
	l.Write(Entry{Category: CategoryCliError, Detail: detail})
}

// rotate switches the open file when the bucket for ts differs from the
// current one. A name that sorts below the current one is superseded and
// is never reopened; such entries stay in the current file.
func (l *Logger) rotate(ts time.Time) {
	name := bucketFileName(ts, l.session.BucketMinutes)
	if name == l.fileName || name < l.fileName {
		return
	}
	if err := l.open(name); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("failed to rotate session log")
	}
}

// open closes the current file, if any, and opens the named one in
// append mode. Caller holds the mutex.
func (l *Logger) open(name string) error {
	if l.file != nil {
		if err := l.file.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close session log file")
		}
		l.file = nil
	}

	path := filepath.Join(l.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open session log file: %w", err)
	}

	l.file = f
	l.fileName = name
	return nil
}

// append encodes and writes one entry line. Caller holds the mutex.
func (l *Logger) append(e Entry) {
	if l.file == nil {
		return
	}
	line, err := e.encode()
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode session log entry")
		return
	}
	if _, err := l.file.Write(line); err != nil {
		log.Warn().Err(err).Msg("failed to write session log entry")
	}
}
