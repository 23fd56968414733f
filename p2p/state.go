package p2p

import "github.com/996BC/dash-handshake/serialize/message"

// Phase is the position of an attempt in the handshake
type Phase uint8

const (
	Connecting Phase = iota
	AwaitingPeerVersion
	AwaitingPeerAck
	Complete
	Failed
)

var phaseNames = [...]string{
	Connecting:          "connecting",
	AwaitingPeerVersion: "awaiting peer version",
	AwaitingPeerAck:     "awaiting peer ack",
	Complete:            "complete",
	Failed:              "failed",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// action is what the driver owes the peer after a transition
type action uint8

const (
	noAction action = iota
	sendVerAck
)

// HandshakeState is the conversation state of one attempt.
// The zero value is the state right after the version message went out.
type HandshakeState struct {
	ReceivedVersion bool
	Complete        bool
}

// Phase derives the phase of a connected attempt
func (s HandshakeState) Phase() Phase {
	switch {
	case s.Complete:
		return Complete
	case s.ReceivedVersion:
		return AwaitingPeerAck
	default:
		return AwaitingPeerVersion
	}
}

// next returns the state after receiving command; s itself is never modified
func (s HandshakeState) next(command string) (HandshakeState, action) {
	if s.Complete {
		return s, noAction
	}

	switch command {
	case message.CmdVersion:
		if !s.ReceivedVersion {
			s.ReceivedVersion = true
			return s, sendVerAck
		}
	case message.CmdVerAck, message.CmdInv:
		if s.ReceivedVersion {
			s.Complete = true
		}
	}
	return s, noAction
}
