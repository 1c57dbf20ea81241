// Package ldb adapts github.com/syndtr/goleveldb into the database2.Database
// capability set used by the consensus store layer.
package ldb

import (
	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// LevelDB is a goleveldb-backed implementation of model.DBReader/DBWriter
type LevelDB struct {
	ldb *leveldb.DB
}

// NewLevelDB opens (or creates) a goleveldb database at path
func NewLevelDB(path string) (*LevelDB, error) {
	options := &opt.Options{
		Compression: opt.SnappyCompression,
	}
	db, err := leveldb.OpenFile(path, options)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening database at %s", path)
	}
	return &LevelDB{ldb: db}, nil
}

// Close closes the underlying database handle
func (l *LevelDB) Close() error {
	return l.ldb.Close()
}

// Get returns the value associated with key
func (l *LevelDB) Get(key model.DBKey) ([]byte, error) {
	data, err := l.ldb.Get(key.Bytes(), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, errors.Wrapf(err, "key %s not found", key)
		}
		return nil, err
	}
	return data, nil
}

// Has returns whether key exists in the database
func (l *LevelDB) Has(key model.DBKey) (bool, error) {
	return l.ldb.Has(key.Bytes(), nil)
}

// Put sets key to value
func (l *LevelDB) Put(key model.DBKey, value []byte) error {
	return l.ldb.Put(key.Bytes(), value, nil)
}

// Delete removes key from the database
func (l *LevelDB) Delete(key model.DBKey) error {
	return l.ldb.Delete(key.Bytes(), nil)
}

// Cursor opens an iterator-backed cursor over every key in bucket
func (l *LevelDB) Cursor(bucket model.Bucket) (model.DBCursor, error) {
	iter := l.ldb.NewIterator(bucket.KeyRange(), nil)
	return &levelDBCursor{iterator: iter}, nil
}

// Begin starts a new leveldb-backed transaction
func (l *LevelDB) Begin() (model.DBTransaction, error) {
	tx, err := l.ldb.OpenTransaction()
	if err != nil {
		return nil, err
	}
	return &levelDBTransaction{tx: tx}, nil
}

type levelDBCursor struct {
	iterator iterator.Iterator
}

func (c *levelDBCursor) Next() bool {
	return c.iterator.Next()
}

func (c *levelDBCursor) Key() (model.DBKey, error) {
	key := c.iterator.Key()
	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)
	return model.NewDBKeyFromBytes(keyCopy), nil
}

func (c *levelDBCursor) Value() ([]byte, error) {
	value := c.iterator.Value()
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	return valueCopy, nil
}

func (c *levelDBCursor) Close() error {
	c.iterator.Release()
	return c.iterator.Error()
}

type levelDBTransaction struct {
	tx *leveldb.Transaction
}

func (t *levelDBTransaction) Get(key model.DBKey) ([]byte, error) {
	return t.tx.Get(key.Bytes(), nil)
}

func (t *levelDBTransaction) Has(key model.DBKey) (bool, error) {
	return t.tx.Has(key.Bytes(), nil)
}

func (t *levelDBTransaction) Cursor(bucket model.Bucket) (model.DBCursor, error) {
	iter := t.tx.NewIterator(bucket.KeyRange(), nil)
	return &levelDBCursor{iterator: iter}, nil
}

func (t *levelDBTransaction) Put(key model.DBKey, value []byte) error {
	return t.tx.Put(key.Bytes(), value, nil)
}

func (t *levelDBTransaction) Delete(key model.DBKey) error {
	return t.tx.Delete(key.Bytes(), nil)
}

func (t *levelDBTransaction) Commit() error {
	return t.tx.Commit()
}

func (t *levelDBTransaction) Rollback() error {
	t.tx.Discard()
	return nil
}
