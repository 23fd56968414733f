package message

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/996BC/dash-handshake/utils"
	"github.com/btcsuite/btcd/wire"
)

// NetAddress is a network address record without the timestamp, as used in version messages
type NetAddress struct {
	Services uint64
	IP       net.IP
	Port     uint16
}

func (n *NetAddress) marshal(w io.Writer) {
	ip := make([]byte, net.IPv6len)
	if n.IP != nil {
		copy(ip, n.IP.To16())
	}

	binary.Write(w, binary.LittleEndian, n.Services)
	w.Write(ip)
	binary.Write(w, binary.BigEndian, n.Port)
}

func (n *NetAddress) unmarshal(data io.Reader) error {
	ip := make([]byte, net.IPv6len)

	if err := binary.Read(data, binary.LittleEndian, &n.Services); err != nil {
		return err
	}
	if _, err := io.ReadFull(data, ip); err != nil {
		return err
	}
	n.IP = net.IP(ip)
	return binary.Read(data, binary.BigEndian, &n.Port)
}

// Version is the payload of the version message
type Version struct {
	ProtocolVersion int32
	Services        uint64
	Timestamp       int64
	AddrRecv        NetAddress
	AddrFrom        NetAddress
	Nonce           uint64
	UserAgent       string
	StartHeight     int32
}

func (v *Version) String() string {
	return fmt.Sprintf("version %d agent %s height %d services %d",
		v.ProtocolVersion, v.UserAgent, v.StartHeight, v.Services)
}

// Marshal serializes the payload; the user agent must already fit MaxUserAgentLen
func (v *Version) Marshal() []byte {
	result := new(bytes.Buffer)

	binary.Write(result, binary.LittleEndian, v.ProtocolVersion)
	binary.Write(result, binary.LittleEndian, v.Services)
	binary.Write(result, binary.LittleEndian, v.Timestamp)
	v.AddrRecv.marshal(result)
	v.AddrFrom.marshal(result)
	binary.Write(result, binary.LittleEndian, v.Nonce)

	userAgent := []byte(v.UserAgent)
	binary.Write(result, binary.LittleEndian, utils.Uint8Len(userAgent))
	result.Write(userAgent)

	binary.Write(result, binary.LittleEndian, v.StartHeight)

	return result.Bytes()
}

// UnmarshalVersion decodes a version payload, trailing fields such as the relay flag are left unread
func UnmarshalVersion(data io.Reader) (*Version, error) {
	result := &Version{}
	var userAgentLen uint8
	var err error

	if err = binary.Read(data, binary.LittleEndian, &result.ProtocolVersion); err != nil {
		return nil, err
	}
	if err = binary.Read(data, binary.LittleEndian, &result.Services); err != nil {
		return nil, err
	}
	if err = binary.Read(data, binary.LittleEndian, &result.Timestamp); err != nil {
		return nil, err
	}
	if err = result.AddrRecv.unmarshal(data); err != nil {
		return nil, err
	}
	if err = result.AddrFrom.unmarshal(data); err != nil {
		return nil, err
	}
	if err = binary.Read(data, binary.LittleEndian, &result.Nonce); err != nil {
		return nil, err
	}

	if err = binary.Read(data, binary.LittleEndian, &userAgentLen); err != nil {
		return nil, err
	}
	userAgent := make([]byte, userAgentLen)
	if _, err = io.ReadFull(data, userAgent); err != nil {
		return nil, err
	}
	result.UserAgent = string(userAgent)

	if err = binary.Read(data, binary.LittleEndian, &result.StartHeight); err != nil {
		return nil, err
	}

	return result, nil
}

// VersionConfig holds the overridable fields of the outgoing version payload
type VersionConfig struct {
	ProtocolVersion int32
	LocalServices   uint64
	PeerServices    uint64
	PeerIP          net.IP
	PeerPort        uint16
	UserAgent       string
	StartHeight     int32
}

// VersionBuilder builds a fresh version payload for every handshake attempt
type VersionBuilder struct {
	config    VersionConfig
	nonceFunc func() (uint64, error) // for test stub
	nowFunc   func() time.Time       // for test stub
}

// NewVersionBuilder validates c and returns a builder
func NewVersionBuilder(c *VersionConfig) (*VersionBuilder, error) {
	if len(c.UserAgent) > MaxUserAgentLen {
		return nil, ErrUserAgentTooLong
	}
	if c.PeerIP == nil || c.PeerIP.To16() == nil {
		return nil, ErrMissingPeerIP
	}

	return &VersionBuilder{
		config:    *c,
		nonceFunc: wire.RandomUint64,
		nowFunc:   time.Now,
	}, nil
}

// Build returns a version payload stamped with the current time and a new random nonce
func (b *VersionBuilder) Build() (*Version, error) {
	nonce, err := b.nonceFunc()
	if err != nil {
		return nil, fmt.Errorf("generate nonce failed:%v", err)
	}

	c := &b.config
	return &Version{
		ProtocolVersion: c.ProtocolVersion,
		Services:        c.LocalServices,
		Timestamp:       b.nowFunc().Unix(),
		AddrRecv: NetAddress{
			Services: c.PeerServices,
			IP:       c.PeerIP.To16(),
			Port:     c.PeerPort,
		},
		// no known external address
		AddrFrom: NetAddress{
			Services: c.LocalServices,
			IP:       net.IPv6unspecified,
			Port:     c.PeerPort,
		},
		Nonce:       nonce,
		UserAgent:   c.UserAgent,
		StartHeight: c.StartHeight,
	}, nil
}
