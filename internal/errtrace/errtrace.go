// Package errtrace records the call path that led to a failure.
//
// A Trace belongs to a single load or save call and is passed to the code it
// traces explicitly; there is no process-wide registry. Functions push a
// frame on entry and pop it when they return without error, so after a
// failure the trace holds the chain of calls that failed, outermost first.
//
// All methods accept a nil *Trace and do nothing, which keeps tracing
// optional for callers that only want the returned error.
package errtrace

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
)

// Frame is one recorded call site.
type Frame struct {
	File     string
	Function string
	Line     int
}

func (f Frame) String() string {
	return fmt.Sprintf("file:%s:%s:%d", f.File, f.Function, f.Line)
}

// Trace is a growable stack of frames. It is not safe for concurrent use;
// give each goroutine its own.
type Trace struct {
	ID     uuid.UUID
	frames []Frame
}

// New returns an empty trace with a fresh ID.
func New() *Trace {
	return &Trace{ID: uuid.New(), frames: make([]Frame, 0, 4)}
}

// Push records the function that called Push.
func (t *Trace) Push() {
	t.PushSkip(1)
}

// PushSkip records the caller skip levels above PushSkip's caller.
func (t *Trace) PushSkip(skip int) {
	if t == nil {
		return
	}
	t.frames = append(t.frames, caller(skip+2))
}

// Pop drops the most recent frame.
func (t *Trace) Pop() {
	if t == nil || len(t.frames) == 0 {
		return
	}
	t.frames = t.frames[:len(t.frames)-1]
}

// Enter pushes a frame for the calling function and returns a func that pops
// it again unless *errp is non-nil. It is meant to be deferred:
//
//	func load(tr *errtrace.Trace) (err error) {
//		defer tr.Enter()(&err)
//		...
//	}
func (t *Trace) Enter() func(errp *error) {
	if t == nil {
		return func(*error) {}
	}
	t.frames = append(t.frames, caller(2))
	depth := len(t.frames)
	return func(errp *error) {
		if errp != nil && *errp != nil {
			return
		}
		if len(t.frames) >= depth {
			t.frames = t.frames[:depth-1]
		}
	}
}

// Len returns the number of recorded frames.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.frames)
}

// Frames returns a copy of the recorded frames, outermost first.
func (t *Trace) Frames() []Frame {
	if t == nil {
		return nil
	}
	out := make([]Frame, len(t.frames))
	copy(out, t.frames)
	return out
}

// Reset clears the trace but keeps its ID.
func (t *Trace) Reset() {
	if t == nil {
		return
	}
	t.frames = t.frames[:0]
}

// WriteTo prints the trace in the form
//
//	Error Trace:
//	file:<file>:<function>:<line>
func (t *Trace) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String())
	return int64(n), err
}

func (t *Trace) String() string {
	var sb strings.Builder
	sb.WriteString("Error Trace:\n")
	for _, f := range t.Frames() {
		sb.WriteString(f.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func caller(skip int) Frame {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Frame{File: "?", Function: "?"}
	}
	name := "?"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
	}
	return Frame{File: filepath.Base(file), Function: name, Line: line}
}
