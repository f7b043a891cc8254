package bridge

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"opsdesk/pkg/logging"
)

// TraceEntry records one Bridge invocation and its outcome.
type TraceEntry struct {
	ID       string
	Mode     Mode
	Command  string
	Args     map[string]any
	Start    time.Time
	Duration time.Duration
	Err      error
}

// TraceSink consumes trace entries. Record must not block for long; it runs
// on the invoking goroutine after the result is already decided, so nothing
// a sink does can change what the caller sees.
type TraceSink interface {
	Record(entry TraceEntry)
}

// TraceWriter is a TraceSink that prints one human-readable line per
// invocation, with timestamps relative to session start.
type TraceWriter struct {
	mu        sync.Mutex
	writer    io.Writer
	startTime time.Time
}

// NewTraceWriter creates a TraceWriter emitting to w.
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{
		writer:    w,
		startTime: time.Now(),
	}
}

// Record implements TraceSink.
// Format: [0.234s] native invoke load_kube_config(path) ok (3ms)
func (t *TraceWriter) Record(entry TraceEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := time.Since(t.startTime).Seconds()
	outcome := "ok"
	if entry.Err != nil {
		outcome = fmt.Sprintf("error: %v", entry.Err)
	}
	fmt.Fprintf(t.writer, "[%.3fs] %s invoke %s(%s) %s (%dms)\n",
		elapsed, entry.Mode, entry.Command, joinArgKeys(entry.Args), outcome, entry.Duration.Milliseconds())
}

// joinArgKeys renders argument names only. Values stay out of the trace;
// they can hold credentials.
func joinArgKeys(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

// record hands the entry to the sink, keeping sink panics away from the
// invocation path.
func record(sink TraceSink, entry TraceEntry) {
	if sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logging.Warn("Bridge", "Trace sink panicked recording command '%s': %v", entry.Command, r)
		}
	}()
	sink.Record(entry)
}

var _ TraceSink = (*TraceWriter)(nil)
