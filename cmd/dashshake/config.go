package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"github.com/996BC/dash-handshake/p2p"
	"github.com/996BC/dash-handshake/p2p/peer"
	"github.com/996BC/dash-handshake/params"
	"github.com/996BC/dash-handshake/serialize/message"
	"github.com/996BC/dash-handshake/utils"
	"github.com/ghodss/yaml"
)

const defaultMaxIdleReads = 6

type config struct {
	Network         string `json:"network"`
	PeerAddress     string `json:"peer_address"`
	ProtocolVersion int32  `json:"protocol_version"`
	LocalServices   uint64 `json:"local_services"`
	PeerServices    uint64 `json:"peer_services"`
	UserAgent       string `json:"user_agent"`
	StartHeight     int32  `json:"start_height"`
	ReadTimeout     int    `json:"read_timeout"` // seconds
	MaxIdleReads    int    `json:"max_idle_reads"`
	LogLevel        int    `json:"log_level"`
	DataPath        string `json:"data_path"`
}

func defaultConfig() *config {
	return &config{
		Network:         params.MainNet.Name,
		ProtocolVersion: params.ProtocolVersion,
		LocalServices:   params.LocalServices,
		PeerServices:    params.PeerServices,
		UserAgent:       params.UserAgent,
		StartHeight:     params.StartHeight,
		ReadTimeout:     int(params.ReadTimeout / time.Second),
		MaxIdleReads:    defaultMaxIdleReads,
		LogLevel:        utils.LogInfoLevel,
	}
}

// parseConfig loads cf over the defaults; an empty cf keeps the defaults.
// A non-empty peerAddress replaces peer_address.
func parseConfig(cf string, peerAddress string) (*config, error) {
	conf := defaultConfig()

	if len(cf) != 0 {
		if err := utils.AccessCheck(cf); err != nil {
			return nil, err
		}

		content, err := ioutil.ReadFile(cf)
		if err != nil {
			return nil, fmt.Errorf("read config file failed:%v", err)
		}

		if err := unmarshalConfig(cf, content, conf); err != nil {
			return nil, fmt.Errorf("config parse failed:%v", err)
		}
	}

	if len(peerAddress) != 0 {
		conf.PeerAddress = peerAddress
	}

	if err := verifyConfig(conf); err != nil {
		return nil, err
	}

	return conf, nil
}

func unmarshalConfig(cf string, content []byte, conf *config) error {
	switch strings.ToLower(filepath.Ext(cf)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(content, conf)
	default:
		return json.Unmarshal(content, conf)
	}
}

func verifyConfig(c *config) error {
	network, err := params.GetNetwork(c.Network)
	if err != nil {
		return err
	}

	if len(c.PeerAddress) == 0 {
		return fmt.Errorf("miss peer address")
	}
	if _, err := peer.ParsePeer(c.PeerAddress, network.DefaultPort); err != nil {
		return err
	}

	if c.ProtocolVersion <= 0 {
		return fmt.Errorf("invalid protocol version:%d", c.ProtocolVersion)
	}

	if len(c.UserAgent) > message.MaxUserAgentLen {
		return fmt.Errorf("user agent too long:%d bytes", len(c.UserAgent))
	}

	if c.StartHeight < 0 {
		return fmt.Errorf("invalid start height:%d", c.StartHeight)
	}

	if c.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout:%d", c.ReadTimeout)
	}

	if c.MaxIdleReads < 0 {
		return fmt.Errorf("invalid max idle reads:%d", c.MaxIdleReads)
	}

	if !utils.ValidLogLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level:%d", c.LogLevel)
	}

	if len(c.DataPath) != 0 {
		if err := utils.AccessCheck(c.DataPath); err != nil {
			return err
		}
	}

	return nil
}

// handshakeConfig turns a verified config into the driver config
func (c *config) handshakeConfig() (*p2p.Config, error) {
	network, err := params.GetNetwork(c.Network)
	if err != nil {
		return nil, err
	}

	p, err := peer.ParsePeer(c.PeerAddress, network.DefaultPort)
	if err != nil {
		return nil, err
	}

	return &p2p.Config{
		Network: network,
		Peer:    p,
		Version: message.VersionConfig{
			ProtocolVersion: c.ProtocolVersion,
			LocalServices:   c.LocalServices,
			PeerServices:    c.PeerServices,
			UserAgent:       c.UserAgent,
			StartHeight:     c.StartHeight,
		},
		ReadTimeout:  time.Duration(c.ReadTimeout) * time.Second,
		MaxIdleReads: c.MaxIdleReads,
	}, nil
}
