package p2p

import (
	"bytes"
	"fmt"
	"time"

	"github.com/996BC/dash-handshake/p2p/peer"
	"github.com/996BC/dash-handshake/params"
	"github.com/996BC/dash-handshake/serialize/message"
	"github.com/996BC/dash-handshake/utils"
)

/*
connect -> send version -> read loop:
	version (first)          -> reply verack
	verack | inv (after it)  -> complete
	timeout                  -> keep reading, up to MaxIdleReads if set
	zero bytes               -> peer closed, incomplete
Frames are assumed to arrive one per read; only the header command is inspected.
*/

var logger = utils.NewLogger("p2p")

// Dialer opens the transport to a peer
type Dialer interface {
	Dial(p *peer.Peer) (utils.TCPConn, error)
}

type tcpDialer struct{}

func (tcpDialer) Dial(p *peer.Peer) (utils.TCPConn, error) {
	return utils.TCPConnectTo(p.IP, p.Port)
}

// Config is configs for a handshake attempt
type Config struct {
	Network *params.Network
	Peer    *peer.Peer

	// PeerIP and PeerPort are taken from Peer
	Version message.VersionConfig

	ReadTimeout time.Duration // params.ReadTimeout if zero

	// MaxIdleReads ends the attempt after that many timeouts in a row; zero waits forever
	MaxIdleReads int

	Dialer Dialer // TCP if nil
}

// Handshaker drives the version/verack exchange with a single peer
type Handshaker struct {
	network      *params.Network
	peer         *peer.Peer
	builder      *message.VersionBuilder
	readTimeout  time.Duration
	maxIdleReads int
	dialer       Dialer
}

// NewHandshaker validates c and returns a Handshaker
func NewHandshaker(c *Config) (*Handshaker, error) {
	if c.Network == nil {
		return nil, ErrMissingNetwork
	}
	if c.Peer == nil || c.Peer.IP == nil {
		return nil, ErrMissingPeer
	}
	if c.Peer.Port <= 0 || c.Peer.Port > 65535 {
		return nil, fmt.Errorf("invalid peer port:%d", c.Peer.Port)
	}
	if c.MaxIdleReads < 0 {
		return nil, fmt.Errorf("invalid max idle reads:%d", c.MaxIdleReads)
	}

	vc := c.Version
	vc.PeerIP = c.Peer.IP
	vc.PeerPort = uint16(c.Peer.Port)
	builder, err := message.NewVersionBuilder(&vc)
	if err != nil {
		return nil, err
	}

	h := &Handshaker{
		network:      c.Network,
		peer:         c.Peer,
		builder:      builder,
		readTimeout:  c.ReadTimeout,
		maxIdleReads: c.MaxIdleReads,
		dialer:       c.Dialer,
	}
	if h.readTimeout <= 0 {
		h.readTimeout = params.ReadTimeout
	}
	if h.dialer == nil {
		h.dialer = tcpDialer{}
	}
	return h, nil
}

// Run performs one handshake attempt. Only transport failures are returned as errors;
// a peer that leaves or stays silent ends the attempt with an incomplete Outcome.
func (h *Handshaker) Run() (*Result, error) {
	result := newResult(h.peer, h.network.Name)
	logger.Info("starting handshake with %v on %v\n", h.peer, h.network)

	conn, err := h.dialer.Dial(h.peer)
	if err != nil {
		logger.Warn("connect to %v failed:%v\n", h.peer, err)
		return result.fail(ConnectFailure{Peer: h.peer, Err: err})
	}
	defer conn.Close()
	logger.Info("connected to %v\n", h.peer)

	version, err := h.builder.Build()
	if err != nil {
		return result.fail(err)
	}
	result.LocalNonce = version.Nonce

	logger.Info("sending version message to %v\n", h.peer)
	if err := h.send(conn, message.CmdVersion, version.Marshal(), result); err != nil {
		return result.fail(err)
	}

	outcome := h.loop(conn, result)
	if result.State.Complete {
		logger.Info("handshake with %v completed successfully\n", h.peer)
	} else if outcome != OutcomeTransportError {
		logger.Warn("handshake with %v did not complete fully:%v\n", h.peer, outcome)
	}

	if outcome == OutcomeTransportError {
		return result.fail(result.Err)
	}
	return result.finish(outcome), nil
}

// loop reads until the handshake completes or the peer goes away.
// The state is only replaced, never shared, so result.State always holds the last one.
func (h *Handshaker) loop(conn utils.TCPConn, result *Result) Outcome {
	buf := make([]byte, params.ReadBufferSize)
	idle := 0

	for !result.State.Complete {
		size, err := conn.ReadTimeout(buf, h.readTimeout)
		if err == utils.ErrReadTimeout {
			idle++
			logger.Debug("nothing from %v in %v (%d in a row)\n", h.peer, h.readTimeout, idle)
			if h.maxIdleReads > 0 && idle >= h.maxIdleReads {
				return OutcomeTimedOut
			}
			continue
		}
		if err != nil {
			logger.Warn("read from %v failed:%v\n", h.peer, err)
			size = 0
		}
		if size == 0 {
			logger.Info("connection closed by %v\n", h.peer)
			return OutcomeDisconnected
		}
		idle = 0

		data := buf[:size]
		command := message.ExtractCommand(data)
		next, act := result.State.next(command)
		result.State = next

		switch {
		case act == sendVerAck:
			logger.Info("received version message from %v\n", h.peer)
			result.PeerVersion = h.decodePeerVersion(data, result.LocalNonce)
			logger.Info("sending verack message to %v\n", h.peer)
			if err := h.send(conn, message.CmdVerAck, nil, result); err != nil {
				result.Err = err
				return OutcomeTransportError
			}
		case next.Complete:
			logger.Info("received %s message, peer accepted us\n", command)
		default:
			logger.Info("received %q message, ignored in phase [%v]\n", command, next.Phase())
		}
	}

	return OutcomeComplete
}

func (h *Handshaker) send(conn utils.TCPConn, command string, payload []byte, result *Result) error {
	frame, err := message.NewFrame(h.network.Magic, command, payload)
	if err != nil {
		return err
	}

	if err := conn.Write(frame.Marshal()); err != nil {
		logger.Warn("send %v to %v failed:%v\n", frame, h.peer, err)
		return WriteFailure{Command: command, Err: err}
	}

	result.FramesSent = append(result.FramesSent, command)
	return nil
}

// decodePeerVersion is best effort: a frame split across reads or a bad checksum only loses the details
func (h *Handshaker) decodePeerVersion(data []byte, localNonce uint64) *message.Version {
	frame, err := message.UnmarshalFrame(bytes.NewReader(data))
	if err != nil {
		logger.Debug("incomplete version frame from %v:%v\n", h.peer, err)
		return nil
	}
	if !frame.Verify() {
		logger.Warn("version frame from %v failed checksum\n", h.peer)
		return nil
	}

	v, err := message.UnmarshalVersion(bytes.NewReader(frame.Payload))
	if err != nil {
		logger.Debug("decode version payload from %v failed:%v\n", h.peer, err)
		return nil
	}
	if v.Nonce == localNonce {
		logger.Warn("peer %v echoed our nonce, connected to self?\n", h.peer)
	}

	logger.Debug("peer %v %v\n", h.peer, v)
	return v
}
