package db

import (
	"github.com/996BC/dash-handshake/serialize/storage"
	"github.com/996BC/dash-handshake/utils"
)

type db interface {
	Init(path string) error
	PutRecord(r *storage.Record) error
	GetRecordViaSession(sessionID string) (*storage.Record, error)
	GetLatestRecords(limit int) ([]*storage.Record, error)
	GetRecordsViaPeer(peer string) ([]*storage.Record, error)
	GetRecordCount() (int64, error)
	Close()
}

var (
	logger   = utils.NewLogger("db")
	instance db
)

func Init(path string) error {
	b := newBadger()
	if err := b.Init(path); err != nil {
		return err
	}
	instance = b
	return nil
}

func PutRecord(r *storage.Record) error {
	if instance == nil {
		return ErrNotInitialized
	}
	return instance.PutRecord(r)
}

func GetRecordViaSession(sessionID string) (*storage.Record, error) {
	if instance == nil {
		return nil, ErrNotInitialized
	}
	return instance.GetRecordViaSession(sessionID)
}

// GetLatestRecords returns at most limit records, newest first. A limit <= 0 returns all.
func GetLatestRecords(limit int) ([]*storage.Record, error) {
	if instance == nil {
		return nil, ErrNotInitialized
	}
	return instance.GetLatestRecords(limit)
}

// GetRecordsViaPeer returns the records of peer (ip:port), oldest first
func GetRecordsViaPeer(peer string) ([]*storage.Record, error) {
	if instance == nil {
		return nil, ErrNotInitialized
	}
	return instance.GetRecordsViaPeer(peer)
}

func GetRecordCount() (int64, error) {
	if instance == nil {
		return 0, ErrNotInitialized
	}
	return instance.GetRecordCount()
}

func Close() {
	if instance != nil {
		instance.Close()
		instance = nil
	}
}
