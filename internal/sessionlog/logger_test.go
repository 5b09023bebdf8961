package sessionlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readLines returns the non-empty lines of a session log file.
func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func newTestLogger(bucketMinutes int) *Logger {
	return New(Session{
		ID:            "test-session",
		StartedAt:     time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		BucketMinutes: bucketMinutes,
	})
}

func TestBind_FlushesBufferInOrder(t *testing.T) {
	t.Parallel()

	l := newTestLogger(0)
	for i := 0; i < 5; i++ {
		l.Info(fmt.Sprintf("entry %d", i))
	}

	dir := t.TempDir()
	require.NoError(t, l.Bind(dir, "sess"))

	l.Info("after bind")
	l.Dispose()

	lines := readLines(t, filepath.Join(dir, "sess", fixedFileName))
	require.Len(t, lines, 6)

	for i := 0; i < 5; i++ {
		var e Entry
		require.NoError(t, json.Unmarshal([]byte(lines[i]), &e))
		assert.Equal(t, fmt.Sprintf("entry %d", i), e.Text)
		assert.Equal(t, "test-session", e.SessionID)
		assert.Equal(t, CategoryInfo, e.Category)
	}
}

func TestBind_OnlyOnce(t *testing.T) {
	t.Parallel()

	l := newTestLogger(0)
	dir := t.TempDir()
	require.NoError(t, l.Bind(dir, "sess"))
	assert.ErrorIs(t, l.Bind(dir, "other"), ErrAlreadyBound)
	l.Dispose()
}

func TestBind_AfterDispose(t *testing.T) {
	t.Parallel()

	l := newTestLogger(0)
	l.Dispose()
	assert.ErrorIs(t, l.Bind(t.TempDir(), "sess"), ErrAlreadyBound)
}

func TestWrite_DroppedAfterDispose(t *testing.T) {
	t.Parallel()

	l := newTestLogger(0)
	dir := t.TempDir()
	require.NoError(t, l.Bind(dir, "sess"))

	l.Info("kept")
	l.Dispose()
	l.Info("dropped")
	l.Dispose() // idempotent

	lines := readLines(t, filepath.Join(dir, "sess", fixedFileName))
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "kept")
}

func TestRotation(t *testing.T) {
	t.Parallel()

	l := newTestLogger(10)
	clock := time.Date(2024, 3, 5, 10, 5, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	dir := t.TempDir()
	require.NoError(t, l.Bind(dir, "sess"))

	l.Info("first bucket a")
	clock = time.Date(2024, 3, 5, 10, 9, 0, 0, time.UTC)
	l.Info("first bucket b")
	clock = time.Date(2024, 3, 5, 10, 12, 0, 0, time.UTC)
	l.Info("second bucket")
	l.Dispose()

	first := readLines(t, filepath.Join(dir, "sess", "2024-03-05_1000.log"))
	second := readLines(t, filepath.Join(dir, "sess", "2024-03-05_1010.log"))

	require.Len(t, first, 2)
	require.Len(t, second, 1)
	assert.Contains(t, second[0], "second bucket")
}

func TestRotation_NeverReopensSupersededFile(t *testing.T) {
	t.Parallel()

	l := newTestLogger(10)
	clock := time.Date(2024, 3, 5, 10, 5, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	dir := t.TempDir()
	require.NoError(t, l.Bind(dir, "sess"))

	l.Info("on time")
	clock = time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC)
	l.Info("next bucket")

	// A clock step backwards must not reopen the superseded file.
	clock = time.Date(2024, 3, 5, 10, 7, 0, 0, time.UTC)
	l.Info("late arrival")
	l.Dispose()

	first := readLines(t, filepath.Join(dir, "sess", "2024-03-05_1000.log"))
	second := readLines(t, filepath.Join(dir, "sess", "2024-03-05_1010.log"))

	require.Len(t, first, 1)
	require.Len(t, second, 2)
	assert.Contains(t, second[1], "late arrival")
}

func TestBind_FirstFileNamedAfterFirstBufferedEntry(t *testing.T) {
	t.Parallel()

	l := newTestLogger(10)
	clock := time.Date(2024, 3, 5, 9, 58, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	l.Info("buffered before bind")

	clock = time.Date(2024, 3, 5, 10, 2, 0, 0, time.UTC)
	dir := t.TempDir()
	require.NoError(t, l.Bind(dir, "sess"))
	l.Dispose()

	lines := readLines(t, filepath.Join(dir, "sess", "2024-03-05_0950.log"))
	require.Len(t, lines, 1)
}

func TestEntry_CategoryFieldsOmitted(t *testing.T) {
	t.Parallel()

	l := newTestLogger(0)
	dir := t.TempDir()
	require.NoError(t, l.Bind(dir, "sess"))

	l.Command("act reviewer hello")
	l.Prompt("reviewer", "hello")
	l.ProcessedPrompt("reviewer", "## Actor: reviewer")
	l.Response("reviewer", "opus", "hi")
	l.Error("reviewer", "boom")
	l.CliError("bad flag")
	l.Dispose()

	lines := readLines(t, filepath.Join(dir, "sess", fixedFileName))
	require.Len(t, lines, 6)

	// Command entries carry no actor/model/text fields.
	assert.Contains(t, lines[0], `"category":"command"`)
	assert.NotContains(t, lines[0], `"actor"`)
	assert.NotContains(t, lines[0], `"model"`)
	assert.NotContains(t, lines[0], `"text"`)

	// Response entries carry actor and model.
	assert.Contains(t, lines[3], `"actor":"reviewer"`)
	assert.Contains(t, lines[3], `"model":"opus"`)

	// Error entries carry detail, not text.
	assert.Contains(t, lines[4], `"detail":"boom"`)
	assert.NotContains(t, lines[4], `"text"`)
}

func TestConcurrentWrites(t *testing.T) {
	t.Parallel()

	l := newTestLogger(0)
	dir := t.TempDir()
	require.NoError(t, l.Bind(dir, "sess"))

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				l.Info(fmt.Sprintf("writer %d entry %d", w, i))
			}
		}(w)
	}
	wg.Wait()
	l.Dispose()

	lines := readLines(t, filepath.Join(dir, "sess", fixedFileName))
	require.Len(t, lines, writers*perWriter)

	// Every line is one complete JSON entry; no interleaved partials.
	for _, line := range lines {
		var e Entry
		require.NoError(t, json.Unmarshal([]byte(line), &e))
	}
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	a := NewSession(10)
	b := NewSession(10)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 10, a.BucketMinutes)
	assert.False(t, a.StartedAt.IsZero())
}
