package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	leveldbIterator "github.com/syndtr/goleveldb/leveldb/iterator"
	leveldbOpt "github.com/syndtr/goleveldb/leveldb/opt"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"

	"boscoin.io/tally/lib/errors"
)

// LevelDBCore is satisfied by both `*leveldb.DB` and `*leveldb.Transaction`.
type LevelDBCore interface {
	Has([]byte, *leveldbOpt.ReadOptions) (bool, error)
	Get([]byte, *leveldbOpt.ReadOptions) ([]byte, error)
	NewIterator(*leveldbUtil.Range, *leveldbOpt.ReadOptions) leveldbIterator.Iterator
	Put([]byte, []byte, *leveldbOpt.WriteOptions) error
	Delete([]byte, *leveldbOpt.WriteOptions) error
}

type LevelDBBackend struct {
	DB *leveldb.DB

	Core LevelDBCore
}

func setLevelDBCoreError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*errors.Error); ok {
		return err
	}

	return errors.StorageCoreError.Clone().SetData("error", err.Error())
}

func NewLevelDBBackend(config *Config) (*LevelDBBackend, error) {
	st := &LevelDBBackend{}
	if err := st.Init(config); err != nil {
		return nil, err
	}

	return st, nil
}

func (st *LevelDBBackend) Init(config *Config) (err error) {
	var db *leveldb.DB

	switch config.Scheme {
	case "file":
		if db, err = leveldb.OpenFile(config.Path, nil); err != nil {
			return pkgerrors.Wrapf(setLevelDBCoreError(err), "failed to open leveldb, %q", config.Path)
		}
	case "memory":
		if db, err = leveldb.Open(leveldbStorage.NewMemStorage(), nil); err != nil {
			return pkgerrors.Wrap(setLevelDBCoreError(err), "failed to open memory leveldb")
		}
	default:
		return errors.InvalidStorageConfig.Clone().SetData("scheme", config.Scheme)
	}

	st.DB = db
	st.Core = db

	return
}

func (st *LevelDBBackend) Close() error {
	return st.DB.Close()
}

func (st *LevelDBBackend) IsTransaction() bool {
	_, ok := st.Core.(*leveldb.Transaction)
	return ok
}

// OpenTransaction returns new backend which writes into the leveldb
// transaction; the writes are visible to the reads of the same backend
// until `Commit` or `Discard`.
func (st *LevelDBBackend) OpenTransaction() (*LevelDBBackend, error) {
	if st.IsTransaction() {
		return nil, setLevelDBCoreError(fmt.Errorf("this is already *leveldb.Transaction"))
	}

	transaction, err := st.DB.OpenTransaction()
	if err != nil {
		return nil, setLevelDBCoreError(err)
	}

	return &LevelDBBackend{
		DB:   st.DB,
		Core: transaction,
	}, nil
}

func (st *LevelDBBackend) Discard() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return setLevelDBCoreError(fmt.Errorf("this is not *leveldb.Transaction"))
	}

	ts.Discard()
	return nil
}

func (st *LevelDBBackend) Commit() error {
	ts, ok := st.Core.(*leveldb.Transaction)
	if !ok {
		return setLevelDBCoreError(fmt.Errorf("this is not *leveldb.Transaction"))
	}

	return setLevelDBCoreError(ts.Commit())
}

func (st *LevelDBBackend) makeKey(key string) []byte {
	return []byte(key)
}

func (st *LevelDBBackend) Has(k string) (bool, error) {
	ok, err := st.Core.Has(st.makeKey(k), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return false, nil
		}
		return false, setLevelDBCoreError(err)
	}

	return ok, nil
}

func (st *LevelDBBackend) GetRaw(k string) (b []byte, err error) {
	b, err = st.Core.Get(st.makeKey(k), nil)
	if err == leveldb.ErrNotFound {
		err = errors.StorageRecordDoesNotExist.Clone().SetData("key", k)
		return
	}
	err = setLevelDBCoreError(err)

	return
}

func (st *LevelDBBackend) Get(k string, i interface{}) (err error) {
	var b []byte
	if b, err = st.GetRaw(k); err != nil {
		return
	}

	if err = json.Unmarshal(b, i); err != nil {
		err = setLevelDBCoreError(err)
		return
	}

	return
}

func encodeValue(v interface{}) ([]byte, error) {
	if b, ok := v.([]byte); ok {
		return b, nil
	}

	return json.Marshal(v)
}

// New stores only when the key does not exist.
func (st *LevelDBBackend) New(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = encodeValue(v); err != nil {
		err = setLevelDBCoreError(err)
		return
	}

	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if exists {
		err = errors.StorageRecordAlreadyExists.Clone().SetData("key", k)
		return
	}

	err = setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))

	return
}

// Set overwrites only when the key exists.
func (st *LevelDBBackend) Set(k string, v interface{}) (err error) {
	var encoded []byte
	if encoded, err = encodeValue(v); err != nil {
		err = setLevelDBCoreError(err)
		return
	}

	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if !exists {
		err = errors.StorageRecordDoesNotExist.Clone().SetData("key", k)
		return
	}

	err = setLevelDBCoreError(st.Core.Put(st.makeKey(k), encoded, nil))

	return
}

func (st *LevelDBBackend) Remove(k string) (err error) {
	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if !exists {
		err = errors.StorageRecordDoesNotExist.Clone().SetData("key", k)
		return
	}

	err = setLevelDBCoreError(st.Core.Delete(st.makeKey(k), nil))

	return
}

// GetIterator iterates the keys which starts with `prefix`. The `cursor` of
// `ListOptions` is exclusive: the iteration starts right after (or right
// before, in reverse) the cursor key.
func (st *LevelDBBackend) GetIterator(prefix string, option ListOptions) (IterFunc, func()) {
	var reverse bool
	var cursor []byte
	var limit uint64
	if option != nil {
		reverse = option.Reverse()
		cursor = option.Cursor()
		limit = option.Limit()
	}

	var dbRange *leveldbUtil.Range
	if len(prefix) > 0 {
		dbRange = leveldbUtil.BytesPrefix(st.makeKey(prefix))
	}

	iter := st.Core.NewIterator(dbRange, nil)

	var first func() bool
	switch {
	case reverse && len(cursor) > 0:
		first = func() bool {
			if !iter.Seek(cursor) {
				return iter.Last()
			}
			return iter.Prev()
		}
	case reverse:
		first = iter.Last
	case len(cursor) > 0:
		first = func() bool {
			if !iter.Seek(cursor) {
				return false
			}
			if bytes.Equal(iter.Key(), cursor) {
				return iter.Next()
			}
			return true
		}
	default:
		first = iter.First
	}

	next := iter.Next
	if reverse {
		next = iter.Prev
	}

	var released bool
	release := func() {
		if released {
			return
		}
		released = true
		iter.Release()
	}

	var n uint64
	var started bool
	return func() (IterItem, bool) {
		if released || (limit > 0 && n >= limit) {
			release()
			return IterItem{}, false
		}

		var ok bool
		if !started {
			started = true
			ok = first()
		} else {
			ok = next()
		}

		if !ok {
			release()
			return IterItem{}, false
		}

		n++
		return IterItem{
			N:     n,
			Key:   append([]byte(nil), iter.Key()...),
			Value: append([]byte(nil), iter.Value()...),
		}, true
	}, release
}

type WalkFunc func(key, value []byte) (bool, error)

// Walk calls `walkFunc` for each item until it returns false or error.
func (st *LevelDBBackend) Walk(prefix string, option ListOptions, walkFunc WalkFunc) error {
	iterFunc, closeFunc := st.GetIterator(prefix, option)
	defer closeFunc()

	for {
		item, hasNext := iterFunc()
		if !hasNext {
			return nil
		}

		if next, err := walkFunc(item.Key, item.Value); err != nil {
			return err
		} else if !next {
			return nil
		}
	}
}
