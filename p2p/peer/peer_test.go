package peer

import (
	"net"
	"testing"

	"github.com/996BC/dash-handshake/utils"
)

func TestParsePeer(t *testing.T) {
	cases := []struct {
		input   string
		ip      net.IP
		port    int
		address string
	}{
		{"8.219.5.90", net.ParseIP("8.219.5.90"), 9999, "8.219.5.90:9999"},
		{"8.219.5.90:19999", net.ParseIP("8.219.5.90"), 19999, "8.219.5.90:19999"},
		{"::1", net.IPv6loopback, 9999, "[::1]:9999"},
		{"[2001:db8::1]:8443", net.ParseIP("2001:db8::1"), 8443, "[2001:db8::1]:8443"},
	}

	for _, c := range cases {
		p, err := ParsePeer(c.input, 9999)
		if err != nil {
			t.Fatalf("parse %s failed:%v\n", c.input, err)
		}
		if err := utils.TCheckIP("ip", c.ip, p.IP); err != nil {
			t.Fatal(err)
		}
		if err := utils.TCheckInt("port", c.port, p.Port); err != nil {
			t.Fatal(err)
		}
		if err := utils.TCheckString("address", c.address, p.Address()); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := ParsePeer("dash.org:9999", 9999); err == nil {
		t.Fatal("expect host names rejected")
	}
}
