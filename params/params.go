package params

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/wire"
)

// Network identifies a Dash network by its magic and default port.
// The magic is sent little endian, so mainnet's 0xBD6B0CBF goes out as bf 0c 6b bd.
type Network struct {
	Name        string
	Magic       wire.BitcoinNet
	DefaultPort int
}

var (
	MainNet = &Network{Name: "mainnet", Magic: wire.BitcoinNet(0xBD6B0CBF), DefaultPort: 9999}
	TestNet = &Network{Name: "testnet", Magic: wire.BitcoinNet(0xFFCAE2CE), DefaultPort: 19999}
	RegTest = &Network{Name: "regtest", Magic: wire.BitcoinNet(0xDCB7C1FC), DefaultPort: 19899}
	DevNet  = &Network{Name: "devnet", Magic: wire.BitcoinNet(0xCEFFCAE2), DefaultPort: 19799}
)

var networks = map[string]*Network{
	MainNet.Name: MainNet,
	TestNet.Name: TestNet,
	RegTest.Name: RegTest,
	DevNet.Name:  DevNet,
}

// GetNetwork returns the network registered under name
func GetNetwork(name string) (*Network, error) {
	if n, ok := networks[name]; ok {
		return n, nil
	}
	return nil, fmt.Errorf("unknown network:%s", name)
}

func (n *Network) String() string {
	return n.Name
}

////////////////////////////////////////////////////////////////

const (
	// ProtocolVersion is the dash protocol version announced in version messages
	ProtocolVersion = int32(70230)

	LocalServices = uint64(0)
	PeerServices  = uint64(wire.SFNodeNetwork)

	UserAgent   = "/DashGoClient:0.1.0/"
	StartHeight = int32(0)
)

////////////////////////////////////////////////////////////////

const (
	ReadTimeout    = 10 * time.Second
	ReadBufferSize = 1024
)
