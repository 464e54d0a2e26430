package relay

import (
	"fmt"
	"io"
	"time"
)

// CallEvent records metadata about a single relay request.
type CallEvent struct {
	Method    string
	Path      string
	RequestID string
	LatencyMs int64
	Status    int
	Err       error
}

// Observer receives events about relay calls for logging and diagnostics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes relay call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := fmt.Sprintf("%d", event.Status)
	if event.Err != nil {
		status = "err:" + event.Err.Error()
	}
	fmt.Fprintf(o.w, "[%s] relay_call method=%s path=%s request_id=%s latency_ms=%d status=%s\n",
		ts, event.Method, event.Path, event.RequestID, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
