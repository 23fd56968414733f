package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/996BC/dash-handshake/db"
	"github.com/996BC/dash-handshake/p2p"
	"github.com/996BC/dash-handshake/serialize/storage"
	"github.com/996BC/dash-handshake/utils"
)

var output io.Writer

func main() {
	dbpath := flag.String("dbpath", "", `path of database`)
	n := flag.Int("n", 10, `view the latest n handshakes, 0 for all`)
	p := flag.String("peer", "", `view handshakes with one peer, like "1.2.3.4:9999"`)
	s := flag.String("s", "", `view one handshake via its session id`)

	o := flag.String("o", "", `result output file; if it's null it will print to stdout`)
	flag.Parse()
	var err error

	if len(*dbpath) == 0 {
		fmt.Println("empty db path")
		os.Exit(1)
	}

	if err = utils.AccessCheck(*dbpath); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err = db.Init(*dbpath); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer db.Close()

	if len(*o) != 0 {
		f, err := os.OpenFile(*o, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			fmt.Printf("open file %s failed:%v\n", *o, err)
			os.Exit(1)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	if len(*s) != 0 {
		err = sessionView(*s)
	} else if len(*p) != 0 {
		err = peerView(*p)
	} else {
		err = latestView(*n)
	}
	if err != nil {
		fmt.Printf("error happen: %v\n", err)
		db.Close()
		os.Exit(1)
	}
	fmt.Println("Finish.")
}

func latestView(n int) error {
	if n < 0 {
		return fmt.Errorf("invalid number %d", n)
	}

	records, err := db.GetLatestRecords(n)
	if err != nil {
		return err
	}

	total, err := db.GetRecordCount()
	if err != nil {
		return err
	}

	write("%d of %d handshakes, newest first\n\n", len(records), total)
	for _, r := range records {
		formatOutputRecord(output, r)
	}
	return nil
}

func peerView(peer string) error {
	records, err := db.GetRecordsViaPeer(peer)
	if err != nil {
		return err
	}

	write("%d handshakes with %s\n\n", len(records), peer)
	for _, r := range records {
		formatOutputRecord(output, r)
	}
	return nil
}

func sessionView(id string) error {
	r, err := db.GetRecordViaSession(id)
	if err != nil {
		return fmt.Errorf("get session %s failed:%v", id, err)
	}
	formatOutputRecord(output, r)
	return nil
}

func write(format string, v ...interface{}) {
	if _, err := fmt.Fprintf(output, format, v...); err != nil {
		fmt.Printf("output err:%v\n", err)
		os.Exit(1)
	}
}

func formatOutputRecord(w io.Writer, r *storage.Record) {
	format :=
		`>>>>> [Handshake] %s
peer		%s
network		%s
outcome		%s
time		%s
duration	%s
nonce		%d
sent		%v
peer version	%d
peer agent	%s
peer height	%d

`
	fmt.Fprintf(w, format, r.SessionID,
		r.Peer,
		r.Network,
		p2p.Outcome(r.Outcome),
		utils.TimeToString(r.StartTime/int64(time.Second)),
		time.Duration(r.Duration),
		r.LocalNonce,
		r.FramesSent,
		r.PeerProtocolVersion,
		r.PeerUserAgent,
		r.PeerStartHeight)
}
