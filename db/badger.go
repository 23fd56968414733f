package db

import (
	"bytes"
	"path/filepath"
	"time"

	"github.com/996BC/dash-handshake/serialize/storage"
	"github.com/996BC/dash-handshake/utils"
	"github.com/dgraph-io/badger"
)

const gcInterval = 10 * time.Minute

type badgerDB struct {
	*badger.DB
	lm *utils.LoopMode
}

func newBadger() *badgerDB {
	return &badgerDB{
		lm: utils.NewLoop(1),
	}
}

func (b *badgerDB) Init(path string) error {
	var dbpath string
	var err error

	if dbpath, err = filepath.Abs(path); err != nil {
		return err
	}

	if err = utils.AccessCheck(dbpath); err != nil {
		return err
	}

	opts := badger.DefaultOptions(dbpath)
	opts = opts.WithLogger(nil)
	opts = opts.WithValueLogFileSize(64 << 20)
	opts = opts.WithMaxTableSize(8 << 20)

	b.DB, err = badger.Open(opts)
	if err != nil {
		return b.wrapError(err)
	}

	b.start()
	return nil
}

func (b *badgerDB) Close() {
	b.stop()
	b.DB.Close()
}

// PutRecord stores r and indexes it by session and by peer.
// A session id can only be stored once.
func (b *badgerDB) PutRecord(r *storage.Record) error {
	if r.SessionID == "" {
		return ErrInvalidRecord{"session id"}
	}
	if r.Peer == "" {
		return ErrInvalidRecord{"peer"}
	}

	wf := func(tx *badger.Txn) error {
		sessionKey := getSessionKey(r.SessionID)
		_, err := tx.Get(sessionKey)
		if err == nil {
			return ErrDuplicateSession
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		recordKey := getRecordKey(r.StartTime, r.SessionID)
		if err := tx.Set(recordKey, r.Marshal()); err != nil {
			return err
		}
		if err := tx.Set(sessionKey, recordKey); err != nil {
			return err
		}
		if err := tx.Set(getPeerKey(r.Peer, r.StartTime, r.SessionID), recordKey); err != nil {
			return err
		}

		return b.updateRecordCountTX(tx)
	}

	return b.update(wf)
}

func (b *badgerDB) GetRecordViaSession(sessionID string) (*storage.Record, error) {
	var result *storage.Record

	rf := func(tx *badger.Txn) error {
		item, err := tx.Get(getSessionKey(sessionID))
		if err != nil {
			return err
		}

		recordKey, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		result, err = b.getRecordTX(recordKey, tx)
		return err
	}

	return result, b.view(rf)
}

func (b *badgerDB) GetLatestRecords(limit int) ([]*storage.Record, error) {
	var result []*storage.Record

	rf := func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// reverse seek lands on the largest key not greater than the seek key
		seek := append(append([]byte{}, recordPrefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(recordPrefix); it.Next() {
			if limit > 0 && len(result) >= limit {
				break
			}

			err := it.Item().Value(func(v []byte) error {
				r, err := storage.UnmarshalRecord(bytes.NewReader(v))
				if err != nil {
					return err
				}
				result = append(result, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}

	return result, b.view(rf)
}

func (b *badgerDB) GetRecordsViaPeer(peer string) ([]*storage.Record, error) {
	var result []*storage.Record

	rf := func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		var recordKeys [][]byte
		prefix := getPeerKeyPrefix(peer)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			k, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			recordKeys = append(recordKeys, k)
		}

		for _, k := range recordKeys {
			r, err := b.getRecordTX(k, txn)
			if err != nil {
				return err
			}
			result = append(result, r)
		}
		return nil
	}

	return result, b.view(rf)
}

func (b *badgerDB) GetRecordCount() (int64, error) {
	var result int64

	rf := func(tx *badger.Txn) error {
		item, err := tx.Get(mRecordCount)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			result = bytet(val)
			return nil
		})
	}

	err := b.View(rf)
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, b.wrapError(err)
	}
	return result, nil
}

func (b *badgerDB) getRecordTX(recordKey []byte, tx *badger.Txn) (*storage.Record, error) {
	var result *storage.Record

	item, err := tx.Get(recordKey)
	if err != nil {
		return nil, err
	}

	err = item.Value(func(val []byte) error {
		result, err = storage.UnmarshalRecord(bytes.NewReader(val))
		return err
	})
	return result, err
}

func (b *badgerDB) updateRecordCountTX(tx *badger.Txn) error {
	item, err := tx.Get(mRecordCount)
	if err != nil && err != badger.ErrKeyNotFound {
		return err
	}

	origin := int64(0)
	if err != badger.ErrKeyNotFound {
		item.Value(func(val []byte) error {
			origin = bytet(val)
			return nil
		})
	}

	origin++
	return tx.Set(mRecordCount, tbyte(origin))
}

func (b *badgerDB) view(fn func(txn *badger.Txn) error) error {
	return b.wrapError(b.View(fn))
}

func (b *badgerDB) update(fn func(txn *badger.Txn) error) error {
	return b.wrapError(b.Update(fn))
}

// wrap the error directly get from badger
func (b *badgerDB) wrapError(err error) error {
	if err == nil {
		return nil
	}

	switch err {
	case badger.ErrKeyNotFound:
		return ErrNotFound
	case ErrDuplicateSession:
		return err
	}

	logger.Warn("badger got unexpect err:%v\n", err)
	return ErrInternal
}

func (b *badgerDB) start() {
	b.lm.Go(b.gcLoop)
}

func (b *badgerDB) stop() {
	b.lm.Stop()
}

func (b *badgerDB) gcLoop() {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.lm.D:
			return
		case <-ticker.C:
			if err := b.RunValueLogGC(0.5); err != nil && err != badger.ErrNoRewrite {
				logger.Debug("value log gc:%v\n", err)
			}
		}
	}
}
