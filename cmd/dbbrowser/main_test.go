package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/996BC/dash-handshake/serialize/storage"
	"github.com/stretchr/testify/assert"
)

func TestFormatOutputRecord(t *testing.T) {
	r := storage.NewRecordV1()
	r.SessionID = "s1"
	r.Peer = "127.0.0.1:9999"
	r.Network = "mainnet"
	r.Outcome = 2
	r.FramesSent = []string{"version", "verack"}
	r.PeerUserAgent = "/Dash Core:20.0.0/"
	r.StartTime = time.Now().UnixNano()
	r.Duration = int64(1500 * time.Millisecond)

	buf := new(bytes.Buffer)
	formatOutputRecord(buf, r)
	out := buf.String()

	assert.Contains(t, out, ">>>>> [Handshake] s1")
	assert.Contains(t, out, "127.0.0.1:9999")
	assert.Contains(t, out, "incomplete, disconnected")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "[version verack]")
	assert.Contains(t, out, "/Dash Core:20.0.0/")
}
