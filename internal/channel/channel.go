// Package channel delivers envelopes to the collector over a one-way,
// asynchronous outbound transport, or to a local stream in dry mode.
package channel

import (
	"errors"
	"fmt"
	"io"

	"bwbeacon/internal/wire"
)

// ErrTransport reports a failure to establish the outbound transport.
// Mid-stream transport hiccups never surface here; the client library
// reconnects on its own.
var ErrTransport = errors.New("transport unavailable")

// Channel accepts one envelope per Send. Send returns once the message
// is handed to the local send buffer; it does not confirm remote
// receipt. When the buffer is full, Send blocks the caller rather than
// dropping the message.
type Channel interface {
	Send(env *wire.Envelope) error
	Close() error
}

// Dry writes one human-readable JSON line per envelope to a local
// stream instead of the network.
type Dry struct {
	Out io.Writer
}

func (d Dry) Send(env *wire.Envelope) error {
	payload, err := env.Encode()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(d.Out, "%s\n", payload)
	return err
}

func (d Dry) Close() error { return nil }

var _ Channel = Dry{}
