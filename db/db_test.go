package db

import (
	"fmt"
	"os"
	"testing"

	"github.com/996BC/dash-handshake/serialize/storage"
	"github.com/996BC/dash-handshake/utils"
)

var dbTestVar = &struct {
	dbPath string

	peerA string
	peerB string

	// ordered by start time
	records []*storage.Record
}{
	peerA: "127.0.0.1:9999",
	peerB: "[::1]:19999",
}

func init() {
	tv := dbTestVar

	peers := []string{tv.peerA, tv.peerB, tv.peerA, tv.peerA}
	outcomes := []uint8{1, 2, 3, 1}
	for i, p := range peers {
		r := storage.NewRecordV1()
		r.SessionID = fmt.Sprintf("session-%d", i)
		r.Peer = p
		r.Network = "mainnet"
		r.Outcome = outcomes[i]
		r.LocalNonce = uint64(1000 + i)
		r.FramesSent = []string{"version"}
		r.StartTime = int64(1700000000000000000 + i*1000)
		r.Duration = int64(i * 10)
		tv.records = append(tv.records, r)
	}
}

func setup() {
	tv := dbTestVar

	dir, err := os.MkdirTemp("", "db_test_tmp")
	if err != nil {
		logger.Fatal("create tmp directory failed:%v\n", err)
	}
	tv.dbPath = dir

	if err := Init(tv.dbPath); err != nil {
		logger.Fatal("initialize db failed:%v\n", err)
	}
}

func cleanup() {
	tv := dbTestVar

	Close()
	if err := os.RemoveAll(tv.dbPath); err != nil {
		logger.Fatal("remove tmp directory failed:%v\n", err)
	}
}

func insertTestData(t *testing.T) {
	// out of order on purpose, the key order must win
	for _, i := range []int{2, 0, 3, 1} {
		if err := PutRecord(dbTestVar.records[i]); err != nil {
			t.Fatalf("insert record %d failed:%v\n", i, err)
		}
	}
}

func checkRecord(t *testing.T, prefix string, expect *storage.Record, result *storage.Record) {
	if err := utils.TCheckString(prefix+"session", expect.SessionID, result.SessionID); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckString(prefix+"peer", expect.Peer, result.Peer); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckUint8(prefix+"outcome", expect.Outcome, result.Outcome); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckUint64(prefix+"nonce", expect.LocalNonce, result.LocalNonce); err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckInt64(prefix+"start", expect.StartTime, result.StartTime); err != nil {
		t.Fatal(err)
	}
}

func TestNotInitialized(t *testing.T) {
	if err := PutRecord(dbTestVar.records[0]); err != ErrNotInitialized {
		t.Fatalf("expect %v, got %v\n", ErrNotInitialized, err)
	}
	if _, err := GetLatestRecords(1); err != ErrNotInitialized {
		t.Fatalf("expect %v, got %v\n", ErrNotInitialized, err)
	}
}

func TestGetRecordViaSession(t *testing.T) {
	tv := dbTestVar
	setup()
	defer cleanup()
	insertTestData(t)

	for i, r := range tv.records {
		result, err := GetRecordViaSession(r.SessionID)
		if err != nil {
			t.Fatal(err)
		}
		checkRecord(t, fmt.Sprintf("[%d] ", i), r, result)
	}

	if _, err := GetRecordViaSession("missing"); err != ErrNotFound {
		t.Fatalf("expect %v, got %v\n", ErrNotFound, err)
	}
}

func TestGetLatestRecords(t *testing.T) {
	tv := dbTestVar
	setup()
	defer cleanup()

	empty, err := GetLatestRecords(5)
	if err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckInt("empty db", 0, len(empty)); err != nil {
		t.Fatal(err)
	}

	insertTestData(t)

	cases := []struct {
		limit  int
		expect []int
	}{
		{1, []int{3}},
		{2, []int{3, 2}},
		{10, []int{3, 2, 1, 0}},
		{0, []int{3, 2, 1, 0}},
	}

	for i, cs := range cases {
		result, err := GetLatestRecords(cs.limit)
		if err != nil {
			t.Fatal(err)
		}
		if err := utils.TCheckInt(fmt.Sprintf("[%d] count", i), len(cs.expect), len(result)); err != nil {
			t.Fatal(err)
		}
		for j, idx := range cs.expect {
			checkRecord(t, fmt.Sprintf("[%d][%d] ", i, j), tv.records[idx], result[j])
		}
	}
}

func TestGetRecordsViaPeer(t *testing.T) {
	tv := dbTestVar
	setup()
	defer cleanup()
	insertTestData(t)

	cases := []struct {
		peer   string
		expect []int
	}{
		{tv.peerA, []int{0, 2, 3}},
		{tv.peerB, []int{1}},
		{"127.0.0.1:999", nil},
		{"127.0.0.1", nil},
	}

	for i, cs := range cases {
		result, err := GetRecordsViaPeer(cs.peer)
		if err != nil {
			t.Fatal(err)
		}
		if err := utils.TCheckInt(fmt.Sprintf("[%d] count", i), len(cs.expect), len(result)); err != nil {
			t.Fatal(err)
		}
		for j, idx := range cs.expect {
			checkRecord(t, fmt.Sprintf("[%d][%d] ", i, j), tv.records[idx], result[j])
		}
	}
}

func TestPutRecordRejects(t *testing.T) {
	tv := dbTestVar
	setup()
	defer cleanup()
	insertTestData(t)

	if err := PutRecord(tv.records[0]); err != ErrDuplicateSession {
		t.Fatalf("expect %v, got %v\n", ErrDuplicateSession, err)
	}

	noSession := storage.NewRecordV1()
	noSession.Peer = tv.peerA
	if err := PutRecord(noSession); err == nil {
		t.Fatal("expect error on empty session id")
	}

	noPeer := storage.NewRecordV1()
	noPeer.SessionID = "no-peer"
	if err := PutRecord(noPeer); err == nil {
		t.Fatal("expect error on empty peer")
	}

	count, err := GetRecordCount()
	if err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckInt64("count", int64(len(tv.records)), count); err != nil {
		t.Fatal(err)
	}
}

func TestReopen(t *testing.T) {
	tv := dbTestVar
	setup()
	defer cleanup()
	insertTestData(t)

	Close()
	if err := Init(tv.dbPath); err != nil {
		t.Fatal(err)
	}

	count, err := GetRecordCount()
	if err != nil {
		t.Fatal(err)
	}
	if err := utils.TCheckInt64("count after reopen", int64(len(tv.records)), count); err != nil {
		t.Fatal(err)
	}
}

func TestInitMissingPath(t *testing.T) {
	if err := Init("/nonexistent/dash-handshake/db"); err == nil {
		t.Fatal("expect error on missing path")
	}
	if instance != nil {
		t.Fatal("expect no instance after a failed init")
	}
}
