package p2p

import (
	"errors"
	"fmt"

	"github.com/996BC/dash-handshake/p2p/peer"
)

var ErrMissingPeer = errors.New("missing peer")

var ErrMissingNetwork = errors.New("missing network")

// ConnectFailure means the transport could not reach the peer
type ConnectFailure struct {
	Peer *peer.Peer
	Err  error
}

func (c ConnectFailure) Error() string {
	return fmt.Sprintf("connect to %v failed:%v", c.Peer, c.Err)
}

func (c ConnectFailure) Unwrap() error {
	return c.Err
}

// WriteFailure means sending a frame failed mid handshake
type WriteFailure struct {
	Command string
	Err     error
}

func (w WriteFailure) Error() string {
	return fmt.Sprintf("send %s failed:%v", w.Command, w.Err)
}

func (w WriteFailure) Unwrap() error {
	return w.Err
}
