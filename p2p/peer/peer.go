package peer

import (
	"fmt"
	"net"
	"strconv"

	"github.com/996BC/dash-handshake/utils"
)

// Peer is a node that can connect to
type Peer struct {
	IP   net.IP
	Port int
}

// NewPeer create a Peer
func NewPeer(ip net.IP, port int) *Peer {
	return &Peer{
		IP:   ip,
		Port: port,
	}
}

// ParsePeer parses "ip:port", "[ipv6]:port" or a bare IP which then gets defaultPort
func ParsePeer(address string, defaultPort int) (*Peer, error) {
	if ip := net.ParseIP(address); ip != nil {
		return NewPeer(ip, defaultPort), nil
	}

	ip, port := utils.ParseIPPort(address)
	if ip == nil {
		return nil, fmt.Errorf("invalid peer address:%s", address)
	}
	return NewPeer(ip, port), nil
}

func (p *Peer) String() string {
	return p.Address()
}

// Address returns the peer ip address like 192.168.1.1:8080,[2001:0db8:85a3:08d3:1319:8a2e:0370:7344]:8443
func (p *Peer) Address() string {
	v4IP := p.IP.To4()
	if v4IP != nil {
		return net.JoinHostPort(v4IP.String(), strconv.Itoa(p.Port))
	}
	return net.JoinHostPort(p.IP.String(), strconv.Itoa(p.Port))
}
