package main

import (
	"flag"
	"log"
	"os"

	"github.com/996BC/dash-handshake/p2p"
	"github.com/996BC/dash-handshake/utils"
)

var logger = utils.GetStdoutLog()

func main() {
	cf := flag.String("c", "", "config file, json or yaml (.yaml/.yml)")
	peerAddress := flag.String("peer", "", `peer address like "1.2.3.4:9999", overrides the config`)
	flag.Parse()

	conf, err := parseConfig(*cf, *peerAddress)
	if err != nil {
		log.Fatal(err)
	}
	utils.SetLogLevel(conf.LogLevel)

	hc, err := conf.handshakeConfig()
	if err != nil {
		log.Fatal(err)
	}

	h, err := p2p.NewHandshaker(hc)
	if err != nil {
		log.Fatal(err)
	}

	result, err := h.Run()
	if err != nil {
		logger.Error("handshake failed:%v\n", err)
	}
	logger.Infoln(result)

	if len(conf.DataPath) != 0 {
		saveResult(conf.DataPath, result)
	}

	if result.Outcome != p2p.OutcomeComplete {
		os.Exit(1)
	}
}
