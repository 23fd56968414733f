package storage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/996BC/dash-handshake/utils"
)

var recordTestVar = struct {
	record *Record
}{}

func init() {
	r := NewRecordV1()
	r.SessionID = "0b5f4c62-6f8e-4b3a-9c1e-2d7a3c1f9e10"
	r.Peer = "127.0.0.1:9999"
	r.Network = "mainnet"
	r.Outcome = 1
	r.LocalNonce = 0x0102030405060708
	r.PeerProtocolVersion = 70230
	r.PeerUserAgent = "/Dash Core:20.0.0/"
	r.PeerStartHeight = 1987654
	r.FramesSent = []string{"version", "verack"}
	r.StartTime = 1700000000123456789
	r.Duration = 250000000
	recordTestVar.record = r
}

func TestRecord(t *testing.T) {
	r := recordTestVar.record

	rr, err := UnmarshalRecord(bytes.NewReader(r.Marshal()))
	if err != nil {
		t.Fatal(err)
	}

	if err := utils.TCheckUint8("version", r.Version, rr.Version); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckString("session", r.SessionID, rr.SessionID); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckString("peer", r.Peer, rr.Peer); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckString("network", r.Network, rr.Network); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckUint8("outcome", r.Outcome, rr.Outcome); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckUint64("nonce", r.LocalNonce, rr.LocalNonce); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckInt32("peer version", r.PeerProtocolVersion, rr.PeerProtocolVersion); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckString("user agent", r.PeerUserAgent, rr.PeerUserAgent); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckInt32("start height", r.PeerStartHeight, rr.PeerStartHeight); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckInt("frames", len(r.FramesSent), len(rr.FramesSent)); err != nil {
		t.Fatal(err)
	}
	for i := range r.FramesSent {
		if err := utils.TCheckString("frame", r.FramesSent[i], rr.FramesSent[i]); err != nil {
			t.Fatal(err)
		}
	}
	if err := utils.TCheckInt64("start", r.StartTime, rr.StartTime); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckInt64("duration", r.Duration, rr.Duration); err != nil {
		t.Fatal(err)
	}
}

func TestRecordEmptyFields(t *testing.T) {
	r := NewRecordV1()
	rr, err := UnmarshalRecord(bytes.NewReader(r.Marshal()))
	if err != nil {
		t.Fatal(err)
	}
	if len(rr.FramesSent) != 0 || rr.Peer != "" || rr.PeerUserAgent != "" {
		t.Fatalf("expect empty record, got %+v", rr)
	}
}

func TestRecordLongString(t *testing.T) {
	r := NewRecordV1()
	r.PeerUserAgent = strings.Repeat("a", 300)

	rr, err := UnmarshalRecord(bytes.NewReader(r.Marshal()))
	if err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckInt("user agent length", 255, len(rr.PeerUserAgent)); err != nil {
		t.Fatal(err)
	}
}

func TestRecordBadInput(t *testing.T) {
	data := recordTestVar.record.Marshal()

	if _, err := UnmarshalRecord(bytes.NewReader(data[:len(data)-1])); err == nil {
		t.Fatal("expect error on truncated record")
	}

	bad := append([]byte{}, data...)
	bad[0] = 9
	if _, err := UnmarshalRecord(bytes.NewReader(bad)); err == nil {
		t.Fatal("expect error on unknown version")
	}
}
