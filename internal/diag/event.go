// Package diag records catalog lifecycle events for the in-app
// diagnostics overlay.
//
// The controller pushes an Event for the load and for every search or sort
// change; the UI pushes thumbnail failures. Events live only in a bounded
// in-memory Ring. Durable logging goes through internal/logging.
package diag

import (
	"encoding/json"
	"time"
)

// Level is event severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Kind identifies an event. Dot-delimited: "<subsystem>.<action>".
type Kind string

const (
	KindLoadStart    Kind = "load.start"
	KindLoadComplete Kind = "load.complete"
	KindLoadError    Kind = "load.error"
	KindLoadDiscard  Kind = "load.discard"

	KindSearch Kind = "view.search"
	KindSort   Kind = "view.sort"

	KindThumbError Kind = "thumb.error"

	KindDispose Kind = "sys.dispose"
)

// Event is one diagnostics record. Only Kind and Time are required.
type Event struct {
	Time      time.Time     `json:"t"`
	Level     Level         `json:"level,omitempty"`
	Kind      Kind          `json:"kind"`
	RequestID string        `json:"request,omitempty"`
	Dur       time.Duration `json:"-"`
	DurMs     float64       `json:"dur_ms,omitempty"` // filled from Dur at marshal time
	Count     int           `json:"count,omitempty"`
	Term      string        `json:"term,omitempty"`
	Sort      string        `json:"sort,omitempty"`
	Err       string        `json:"err,omitempty"`
	Msg       string        `json:"msg,omitempty"`
}

// MarshalJSON writes Dur as fractional milliseconds.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	a := alias(e)
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}

