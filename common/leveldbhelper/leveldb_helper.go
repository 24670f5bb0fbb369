/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package leveldbhelper

import (
	"bytes"
	"sync"

	"github.com/certledger/ledgergw/internal/fileutil"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	goleveldbutil "github.com/syndtr/goleveldb/leveldb/util"
)

var logger = flogging.MustGetLogger("leveldbhelper")

// ErrClosed is returned by operations on a DB that is not open.
var ErrClosed = errors.New("leveldb is not open")

var partitionSeparator = []byte{0x00}

type dbState int32

const (
	closed dbState = iota
	opened
)

// Conf configures a DB.
type Conf struct {
	DBPath string
}

// DB wraps a goleveldb database and hands out named partitions.
type DB struct {
	conf    *Conf
	db      *leveldb.DB
	dbState dbState
	mutex   sync.RWMutex

	readOpts      *opt.ReadOptions
	writeOptsSync *opt.WriteOptions
}

// CreateDB constructs a DB. The database is not opened.
func CreateDB(conf *Conf) *DB {
	return &DB{
		conf:          conf,
		dbState:       closed,
		readOpts:      &opt.ReadOptions{},
		writeOptsSync: &opt.WriteOptions{Sync: true},
	}
}

// Open opens the underlying database, creating its directory when missing.
// Opening an already open DB has no effect.
func (dbInst *DB) Open() error {
	dbInst.mutex.Lock()
	defer dbInst.mutex.Unlock()
	if dbInst.dbState == opened {
		return nil
	}
	dirEmpty, err := fileutil.CreateDirIfMissing(dbInst.conf.DBPath)
	if err != nil {
		return errors.WithMessagef(err, "error creating leveldb dir [%s]", dbInst.conf.DBPath)
	}
	dbOpts := &opt.Options{ErrorIfMissing: !dirEmpty}
	db, err := leveldb.OpenFile(dbInst.conf.DBPath, dbOpts)
	if err != nil {
		return errors.Wrapf(err, "error opening leveldb at [%s]", dbInst.conf.DBPath)
	}
	dbInst.db = db
	dbInst.dbState = opened
	logger.Debugw("opened leveldb", "path", dbInst.conf.DBPath)
	return nil
}

// Close closes the underlying database. Closing a closed DB has no effect.
func (dbInst *DB) Close() {
	dbInst.mutex.Lock()
	defer dbInst.mutex.Unlock()
	if dbInst.dbState == closed {
		return
	}
	if err := dbInst.db.Close(); err != nil {
		logger.Errorf("Error closing leveldb: %s", err)
	}
	dbInst.db = nil
	dbInst.dbState = closed
}

// Get returns the value for key, or nil when the key is absent.
func (dbInst *DB) Get(key []byte) ([]byte, error) {
	dbInst.mutex.RLock()
	defer dbInst.mutex.RUnlock()
	if dbInst.dbState == closed {
		return nil, ErrClosed
	}
	value, err := dbInst.db.Get(key, dbInst.readOpts)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error retrieving leveldb key [%q]", key)
	}
	return value, nil
}

// Has reports whether key is present.
func (dbInst *DB) Has(key []byte) (bool, error) {
	dbInst.mutex.RLock()
	defer dbInst.mutex.RUnlock()
	if dbInst.dbState == closed {
		return false, ErrClosed
	}
	ok, err := dbInst.db.Has(key, dbInst.readOpts)
	if err != nil {
		return false, errors.Wrapf(err, "error checking leveldb key [%q]", key)
	}
	return ok, nil
}

// PutIfAbsent writes value under key only when key is not already present.
// It reports whether the value was written. The check and the write happen
// inside one leveldb transaction, so concurrent callers racing on the same
// key see exactly one winner.
func (dbInst *DB) PutIfAbsent(key []byte, value []byte) (bool, error) {
	dbInst.mutex.RLock()
	defer dbInst.mutex.RUnlock()
	if dbInst.dbState == closed {
		return false, ErrClosed
	}
	tr, err := dbInst.db.OpenTransaction()
	if err != nil {
		return false, errors.Wrap(err, "error opening leveldb transaction")
	}
	exists, err := tr.Has(key, dbInst.readOpts)
	if err != nil {
		tr.Discard()
		return false, errors.Wrapf(err, "error checking leveldb key [%q]", key)
	}
	if exists {
		tr.Discard()
		return false, nil
	}
	if err := tr.Put(key, value, dbInst.writeOptsSync); err != nil {
		tr.Discard()
		return false, errors.Wrapf(err, "error writing leveldb key [%q]", key)
	}
	if err := tr.Commit(); err != nil {
		return false, errors.Wrap(err, "error committing leveldb transaction")
	}
	return true, nil
}

// GetIterator returns an iterator over [startKey, endKey). A nil startKey is
// the first key and a nil endKey is past the last key. The iterator must be
// released after use.
func (dbInst *DB) GetIterator(startKey []byte, endKey []byte) (iterator.Iterator, error) {
	dbInst.mutex.RLock()
	defer dbInst.mutex.RUnlock()
	if dbInst.dbState == closed {
		return nil, ErrClosed
	}
	return dbInst.db.NewIterator(&goleveldbutil.Range{Start: startKey, Limit: endKey}, dbInst.readOpts), nil
}

// Partition returns a handle scoped to name. Keys written through the handle
// are prefixed with name and a 0x00 separator so partitions never collide.
func (dbInst *DB) Partition(name string) *DBHandle {
	return &DBHandle{name: name, db: dbInst}
}

// DBHandle is a named partition of a DB.
type DBHandle struct {
	name string
	db   *DB
}

// Get returns the value for key within the partition.
func (h *DBHandle) Get(key []byte) ([]byte, error) {
	return h.db.Get(constructPartitionKey(h.name, key))
}

// Has reports whether key is present within the partition.
func (h *DBHandle) Has(key []byte) (bool, error) {
	return h.db.Has(constructPartitionKey(h.name, key))
}

// PutIfAbsent writes key within the partition unless it is already present.
func (h *DBHandle) PutIfAbsent(key []byte, value []byte) (bool, error) {
	return h.db.PutIfAbsent(constructPartitionKey(h.name, key), value)
}

// Keys returns every key stored in the partition, without the prefix, in
// ascending order.
func (h *DBHandle) Keys() ([][]byte, error) {
	start := constructPartitionKey(h.name, nil)
	end := partitionEnd(h.name)
	itr, err := h.db.GetIterator(start, end)
	if err != nil {
		return nil, err
	}
	defer itr.Release()

	var keys [][]byte
	for itr.Next() {
		keys = append(keys, bytes.Clone(itr.Key()[len(start):]))
	}
	if err := itr.Error(); err != nil {
		return nil, errors.Wrapf(err, "error iterating partition [%s]", h.name)
	}
	return keys, nil
}

func constructPartitionKey(name string, key []byte) []byte {
	k := make([]byte, 0, len(name)+len(partitionSeparator)+len(key))
	k = append(k, name...)
	k = append(k, partitionSeparator...)
	return append(k, key...)
}

// partitionEnd is the smallest key greater than every key of the partition.
func partitionEnd(name string) []byte {
	k := make([]byte, 0, len(name)+1)
	k = append(k, name...)
	return append(k, partitionSeparator[0]+1)
}
