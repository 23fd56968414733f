package db

import (
	"bytes"
	"encoding/binary"
)

var (
	// time is a byte array of the record start time in unix nanoseconds
	recordPrefix  = []byte("r") // recordPrefix + time + sessionID -> record
	sessionPrefix = []byte("s") // sessionPrefix + sessionID -> record key
	peerPrefix    = []byte("p") // peerPrefix + peer + peerSep + time + sessionID -> record key
	peerSep       = []byte("|")

	// meta data key should begin with 'm'
	mRecordCount = []byte("mRecordCount")
)

func tbyte(t int64) []byte {
	result := make([]byte, 8)
	binary.BigEndian.PutUint64(result, uint64(t))
	return result
}

func bytet(data []byte) int64 {
	var result int64
	buf := bytes.NewReader(data)
	binary.Read(buf, binary.BigEndian, &result)
	return result
}

// r..
func getRecordKey(startTime int64, sessionID string) []byte {
	key := append([]byte{}, recordPrefix...)
	key = append(key, tbyte(startTime)...)
	return append(key, sessionID...)
}

// s..
func getSessionKey(sessionID string) []byte {
	return append(append([]byte{}, sessionPrefix...), sessionID...)
}

// p..|
func getPeerKeyPrefix(peer string) []byte {
	key := append([]byte{}, peerPrefix...)
	key = append(key, peer...)
	return append(key, peerSep...)
}

// p..|..
func getPeerKey(peer string, startTime int64, sessionID string) []byte {
	key := getPeerKeyPrefix(peer)
	key = append(key, tbyte(startTime)...)
	return append(key, sessionID...)
}
