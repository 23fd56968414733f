package storage

/*
Record
+---------------+-----------------------------------------------+
|   Version     |   SessionL    |           SessionID           |
+---------------+---------------+-------------------------------+
|   PeerL       |                    Peer                       |
+---------------+-----------------------------------------------+
|   NetworkL    |                    Network                    |
+---------------+---------------+-------------------------------+
|   Outcome     |                  LocalNonce                   |
+---------------+-----------------------------------------------+
|  PeerProto    |   AgentL      |           PeerUserAgent       |
+---------------+---------------+-------------------------------+
|  PeerHeight   |   Frames      |  FrameL | Frame | ......      |
+---------------+---------------+-------------------------------+
|   StartTime   |   Duration    |
+---------------+---------------+

(bytes)
Version             1
SessionID length    1
SessionID           -
Peer length         1
Peer                -
Network length      1
Network             -
Outcome             1
LocalNonce          8
PeerProtocolVer     4
PeerUserAgent len   1
PeerUserAgent       -
PeerStartHeight     4
Frames count        1
Frame length        1
Frame               -
StartTime           8   unix nano
Duration            8   nano
*/

const (
	// RecordV1 (record version 1)
	RecordV1 = 1
)
