package message

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/996BC/dash-handshake/utils"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Frame is one wire message; build it with NewFrame so Length and Checksum stay consistent
type Frame struct {
	Magic    wire.BitcoinNet
	Command  string
	Length   uint32
	Checksum []byte
	Payload  []byte
}

// Checksum returns the first 4 bytes of the double sha256 of payload
func Checksum(payload []byte) []byte {
	return chainhash.DoubleHashB(payload)[:ChecksumSize]
}

// NewFrame wraps payload for the network identified by magic
func NewFrame(magic wire.BitcoinNet, command string, payload []byte) (*Frame, error) {
	if len(command) > CommandSize {
		return nil, ErrCommandTooLong
	}

	if payload == nil {
		payload = []byte{}
	}
	return &Frame{
		Magic:    magic,
		Command:  command,
		Length:   utils.Uint32Len(payload),
		Checksum: Checksum(payload),
		Payload:  payload,
	}, nil
}

// Marshal returns the frame bytes ready to be written to the wire
func (f *Frame) Marshal() []byte {
	result := utils.GetBuf()
	defer utils.ReturnBuf(result)

	var command [CommandSize]byte
	copy(command[:], f.Command)

	binary.Write(result, binary.LittleEndian, uint32(f.Magic))
	result.Write(command[:])
	binary.Write(result, binary.LittleEndian, f.Length)
	result.Write(f.Checksum)
	result.Write(f.Payload)

	return append(make([]byte, 0, result.Len()), result.Bytes()...)
}

// Verify checks the length and checksum fields against the payload
func (f *Frame) Verify() bool {
	if f.Length != utils.Uint32Len(f.Payload) {
		return false
	}
	return bytes.Equal(f.Checksum, Checksum(f.Payload))
}

func (f *Frame) String() string {
	return fmt.Sprintf("%s(%d bytes, checksum %s)", f.Command, f.Length, utils.ToHex(f.Checksum))
}

// UnmarshalFrame reads one complete frame; the payload is read according to Length
func UnmarshalFrame(data io.Reader) (*Frame, error) {
	result := &Frame{}
	var magic uint32
	var command [CommandSize]byte
	var err error

	if err = binary.Read(data, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	result.Magic = wire.BitcoinNet(magic)

	if _, err = io.ReadFull(data, command[:]); err != nil {
		return nil, err
	}
	result.Command = decodeCommand(command[:])

	if err = binary.Read(data, binary.LittleEndian, &result.Length); err != nil {
		return nil, err
	}

	result.Checksum = make([]byte, ChecksumSize)
	if _, err = io.ReadFull(data, result.Checksum); err != nil {
		return nil, err
	}

	if result.Length > wire.MaxMessagePayload {
		return nil, fmt.Errorf("payload length %d over limit %d", result.Length, wire.MaxMessagePayload)
	}
	result.Payload = make([]byte, result.Length)
	if _, err = io.ReadFull(data, result.Payload); err != nil {
		return nil, err
	}

	return result, nil
}

// ExtractCommand returns the command field of raw header bytes.
// Input shorter than a header yields a truncated or empty command.
func ExtractCommand(data []byte) string {
	if len(data) <= magicSize {
		return ""
	}

	end := magicSize + CommandSize
	if len(data) < end {
		end = len(data)
	}
	return decodeCommand(data[magicSize:end])
}

func decodeCommand(field []byte) string {
	command := strings.ToValidUTF8(string(field), string(utf8.RuneError))
	return strings.TrimRight(command, "\x00")
}
