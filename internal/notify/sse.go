package notify

import (
	"io"
	"iter"

	"github.com/tmaxmax/go-sse"
)

// Event is one dispatched text/event-stream event.
type Event struct {
	ID   string
	Type string
	Data string
}

// IsMessage reports whether the event has the default "message" type.
func (e Event) IsMessage() bool { return e.Type == "" || e.Type == "message" }

// Decoder pulls events from a text/event-stream body one at a time.
type Decoder struct {
	next func() (sse.Event, error, bool)
	stop func()
}

// NewDecoder returns a decoder reading from r. Call Close when done.
func NewDecoder(r io.Reader) *Decoder {
	next, stop := iter.Pull2(sse.Read(r, nil))
	return &Decoder{next: next, stop: stop}
}

// Next blocks until a complete event is available.
// It returns io.EOF when the stream ends cleanly.
func (d *Decoder) Next() (Event, error) {
	ev, err, ok := d.next()
	if !ok {
		return Event{}, io.EOF
	}
	if err != nil {
		return Event{}, err
	}
	return Event{ID: ev.LastEventID, Type: ev.Type, Data: ev.Data}, nil
}

// Close releases the decoder. It does not close the underlying reader.
func (d *Decoder) Close() { d.stop() }
