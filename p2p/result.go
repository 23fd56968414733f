package p2p

import (
	"fmt"
	"time"

	"github.com/996BC/dash-handshake/p2p/peer"
	"github.com/996BC/dash-handshake/serialize/message"
	"github.com/google/uuid"
)

// Outcome is how a handshake attempt ended
type Outcome uint8

const (
	OutcomeUnknown Outcome = iota
	OutcomeComplete
	OutcomeDisconnected
	OutcomeTimedOut
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeComplete:
		return "complete"
	case OutcomeDisconnected:
		return "incomplete, disconnected"
	case OutcomeTimedOut:
		return "incomplete, timed out"
	case OutcomeTransportError:
		return "incomplete, transport error"
	default:
		return "unknown"
	}
}

// Result describes one handshake attempt
type Result struct {
	SessionID string
	Peer      *peer.Peer
	Network   string
	Outcome   Outcome
	State     HandshakeState

	// commands written to the peer, in order
	FramesSent []string

	LocalNonce  uint64
	PeerVersion *message.Version // nil if the peer version could not be decoded

	Start    time.Time
	Duration time.Duration
	Err      error
}

func newResult(p *peer.Peer, network string) *Result {
	return &Result{
		SessionID: uuid.New().String(),
		Peer:      p,
		Network:   network,
		Start:     time.Now(),
	}
}

// Phase returns the phase the attempt stopped in
func (r *Result) Phase() Phase {
	if r.Outcome == OutcomeTransportError {
		return Failed
	}
	return r.State.Phase()
}

func (r *Result) String() string {
	return fmt.Sprintf("session %s peer %v outcome [%v] phase [%v] sent %v in %v",
		r.SessionID, r.Peer, r.Outcome, r.Phase(), r.FramesSent, r.Duration)
}

func (r *Result) finish(outcome Outcome) *Result {
	r.Outcome = outcome
	r.Duration = time.Since(r.Start)
	return r
}

func (r *Result) fail(err error) (*Result, error) {
	r.Err = err
	return r.finish(OutcomeTransportError), err
}
