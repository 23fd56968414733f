package main

import (
	"github.com/996BC/dash-handshake/db"
	"github.com/996BC/dash-handshake/p2p"
	"github.com/996BC/dash-handshake/serialize/storage"
)

func toRecord(r *p2p.Result) *storage.Record {
	record := storage.NewRecordV1()
	record.SessionID = r.SessionID
	record.Peer = r.Peer.Address()
	record.Network = r.Network
	record.Outcome = uint8(r.Outcome)
	record.LocalNonce = r.LocalNonce
	record.FramesSent = append(record.FramesSent, r.FramesSent...)
	record.StartTime = r.Start.UnixNano()
	record.Duration = int64(r.Duration)

	if r.PeerVersion != nil {
		record.PeerProtocolVersion = r.PeerVersion.ProtocolVersion
		record.PeerUserAgent = r.PeerVersion.UserAgent
		record.PeerStartHeight = r.PeerVersion.StartHeight
	}
	return record
}

// saveResult stores r under dataPath; history is best effort and never changes the exit status
func saveResult(dataPath string, r *p2p.Result) {
	if err := db.Init(dataPath); err != nil {
		logger.Warn("open history db under %s failed:%v\n", dataPath, err)
		return
	}
	defer db.Close()

	if err := db.PutRecord(toRecord(r)); err != nil {
		logger.Warn("save handshake %s failed:%v\n", r.SessionID, err)
		return
	}
	logger.Debug("handshake %s saved under %s\n", r.SessionID, dataPath)
}
