package model

import "github.com/syndtr/goleveldb/leveldb/util"

// DBKey is a key to be used in the underlying key-value store. Every DBKey
// carries the small prefix byte sequence of the bucket it belongs to, so
// that stores never collide over the same key space.
type DBKey struct {
	bytes []byte
}

// Bytes returns the raw bytes making up this key
func (k DBKey) Bytes() []byte {
	return k.bytes
}

// NewDBKeyFromBytes wraps a raw key, as read back from the underlying
// database driver, into a DBKey
func NewDBKeyFromBytes(keyBytes []byte) DBKey {
	return DBKey{bytes: keyBytes}
}

func (k DBKey) String() string {
	return string(k.bytes)
}

// Bucket groups keys under a common prefix
type Bucket struct {
	path []byte
}

// MakeBucket creates a new Bucket for the given path(s), joined by a separator
func MakeBucket(path ...[]byte) Bucket {
	const separator = byte('/')
	fullPath := make([]byte, 0)
	for _, part := range path {
		fullPath = append(fullPath, part...)
		fullPath = append(fullPath, separator)
	}
	return Bucket{path: fullPath}
}

// Bucket returns a new Bucket that's nested inside this one
func (b Bucket) Bucket(name []byte) Bucket {
	return MakeBucket(b.path, name)
}

// Path returns the bucket's full path, to be used as a key prefix for range scans
func (b Bucket) Path() []byte {
	return b.path
}

// Key builds a DBKey by appending suffix to the bucket's path
func (b Bucket) Key(suffix []byte) DBKey {
	key := make([]byte, len(b.path)+len(suffix))
	copy(key, b.path)
	copy(key[len(b.path):], suffix)
	return DBKey{bytes: key}
}

// KeyRange returns the leveldb key range covering every key in this bucket,
// grounded on syndtr/goleveldb's own BytesPrefix helper.
func (b Bucket) KeyRange() *util.Range {
	return util.BytesPrefix(b.path)
}
