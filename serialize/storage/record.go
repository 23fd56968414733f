package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/996BC/dash-handshake/utils"
)

// Record is one stored handshake attempt
type Record struct {
	Version             uint8
	SessionID           string
	Peer                string
	Network             string
	Outcome             uint8
	LocalNonce          uint64
	PeerProtocolVersion int32
	PeerUserAgent       string
	PeerStartHeight     int32
	FramesSent          []string
	StartTime           int64
	Duration            int64
}

func NewRecordV1() *Record {
	return &Record{
		Version: RecordV1,
	}
}

func UnmarshalRecord(data io.Reader) (*Record, error) {
	result := &Record{}
	var framesNum uint8
	var err error

	if err = binary.Read(data, binary.BigEndian, &result.Version); err != nil {
		return nil, err
	}
	if result.Version != RecordV1 {
		return nil, fmt.Errorf("unknown record version %d", result.Version)
	}

	if result.SessionID, err = readString(data); err != nil {
		return nil, err
	}
	if result.Peer, err = readString(data); err != nil {
		return nil, err
	}
	if result.Network, err = readString(data); err != nil {
		return nil, err
	}

	if err = binary.Read(data, binary.BigEndian, &result.Outcome); err != nil {
		return nil, err
	}
	if err = binary.Read(data, binary.BigEndian, &result.LocalNonce); err != nil {
		return nil, err
	}
	if err = binary.Read(data, binary.BigEndian, &result.PeerProtocolVersion); err != nil {
		return nil, err
	}
	if result.PeerUserAgent, err = readString(data); err != nil {
		return nil, err
	}
	if err = binary.Read(data, binary.BigEndian, &result.PeerStartHeight); err != nil {
		return nil, err
	}

	if err = binary.Read(data, binary.BigEndian, &framesNum); err != nil {
		return nil, err
	}
	for i := uint8(0); i < framesNum; i++ {
		frame, err := readString(data)
		if err != nil {
			return nil, err
		}
		result.FramesSent = append(result.FramesSent, frame)
	}

	if err = binary.Read(data, binary.BigEndian, &result.StartTime); err != nil {
		return nil, err
	}
	if err = binary.Read(data, binary.BigEndian, &result.Duration); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *Record) Marshal() []byte {
	result := new(bytes.Buffer)

	binary.Write(result, binary.BigEndian, r.Version)
	writeString(result, r.SessionID)
	writeString(result, r.Peer)
	writeString(result, r.Network)
	binary.Write(result, binary.BigEndian, r.Outcome)
	binary.Write(result, binary.BigEndian, r.LocalNonce)
	binary.Write(result, binary.BigEndian, r.PeerProtocolVersion)
	writeString(result, r.PeerUserAgent)
	binary.Write(result, binary.BigEndian, r.PeerStartHeight)

	binary.Write(result, binary.BigEndian, uint8(len(r.FramesSent)))
	for _, frame := range r.FramesSent {
		writeString(result, frame)
	}

	binary.Write(result, binary.BigEndian, r.StartTime)
	binary.Write(result, binary.BigEndian, r.Duration)

	return result.Bytes()
}

// strings longer than 255 bytes are cut
func writeString(w *bytes.Buffer, s string) {
	b := []byte(s)
	if len(b) > 255 {
		b = b[:255]
	}
	binary.Write(w, binary.BigEndian, utils.Uint8Len(b))
	w.Write(b)
}

func readString(data io.Reader) (string, error) {
	var length uint8
	if err := binary.Read(data, binary.BigEndian, &length); err != nil {
		return "", err
	}

	b := make([]byte, length)
	if _, err := io.ReadFull(data, b); err != nil {
		return "", err
	}
	return string(b), nil
}
