package message

import (
	"errors"

	"github.com/btcsuite/btcd/wire"
)

/*
Frame
+---------------+-----------------------------------------------+
|     Magic     |                   Command                     |
+---------------+---------------+---------------+---------------+
|    Length     |   Checksum    |             Payload           |
+---------------+---------------+-------------------------------+

(bytes)
Magic           4   network magic, little endian
Command         12  ASCII, zero padded
Length          4   payload length, little endian
Checksum        4   sha256(sha256(payload))[:4]
Payload         -

Version payload
(bytes)
ProtocolVersion 4   int32 LE
Services        8   uint64 LE
Timestamp       8   int64 LE, unix seconds
AddrRecv        26  services(8 LE) + IP(16, IPv4-mapped) + port(2 BE)
AddrFrom        26  services(8 LE) + IP(16) + port(2 BE)
Nonce           8   uint64 LE
UserAgent L     1
UserAgent       -
StartHeight     4   int32 LE
*/

const (
	CmdVersion = wire.CmdVersion
	CmdVerAck  = wire.CmdVerAck
	CmdInv     = wire.CmdInv

	HeaderSize   = wire.MessageHeaderSize
	CommandSize  = wire.CommandSize
	ChecksumSize = 4

	// MaxUserAgentLen is bound by the single length byte in front of the user agent
	MaxUserAgentLen = 255

	magicSize = 4
)

var ErrCommandTooLong = errors.New("command longer than 12 bytes")

var ErrUserAgentTooLong = errors.New("user agent longer than 255 bytes")

var ErrMissingPeerIP = errors.New("missing peer IP")
