// Package blockheaderstore stores block headers, keyed by block hash, along
// with a running count of how many headers are known.
package blockheaderstore

import (
	"bytes"
	"encoding/gob"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/lrucache"
	"github.com/pkg/errors"
)

var bucket = model.MakeBucket([]byte("block-headers"))
var countKey = model.MakeBucket([]byte("block-headers-meta")).Key([]byte("count"))

type blockHeaderStore struct {
	cache    *lrucache.LRUCache
	count    uint64
	countRead bool
}

// New instantiates a new BlockHeaderStore
func New(dbContext model.DBReader, cacheSize int, preallocate bool) (model.BlockHeaderStore, error) {
	store := &blockHeaderStore{cache: lrucache.New(cacheSize)}
	if !preallocate {
		return store, nil
	}
	count, err := store.readCount(dbContext)
	if err != nil {
		return nil, err
	}
	store.count = count
	store.countRead = true
	return store, nil
}

type blockHeaderStagingShard struct {
	store    *blockHeaderStore
	toAdd    map[externalapi.DomainHash]*externalapi.DomainBlockHeader
	toDelete map[externalapi.DomainHash]struct{}
}

func (bhs *blockHeaderStore) stagingShard(stagingArea *model.StagingArea) *blockHeaderStagingShard {
	return stagingArea.GetOrCreateShard(model.StagingShardIDBlockHeader, func() model.StagingShard {
		return &blockHeaderStagingShard{
			store:    bhs,
			toAdd:    make(map[externalapi.DomainHash]*externalapi.DomainBlockHeader),
			toDelete: make(map[externalapi.DomainHash]struct{}),
		}
	}).(*blockHeaderStagingShard)
}

// Stage stages the given block header for blockHash
func (bhs *blockHeaderStore) Stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash,
	blockHeader *externalapi.DomainBlockHeader) {

	shard := bhs.stagingShard(stagingArea)
	delete(shard.toDelete, *blockHash)
	shard.toAdd[*blockHash] = blockHeader.Clone()
}

// Delete marks blockHash's header for deletion
func (bhs *blockHeaderStore) Delete(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) {
	shard := bhs.stagingShard(stagingArea)
	delete(shard.toAdd, *blockHash)
	shard.toDelete[*blockHash] = struct{}{}
}

func (bhss *blockHeaderStagingShard) Commit(dbTx model.DBTransaction) error {
	countDelta := int64(0)
	for hash, header := range bhss.toAdd {
		headerBytes, err := serializeHeader(header)
		if err != nil {
			return err
		}
		exists, err := dbTx.Has(key(&hash))
		if err != nil {
			return err
		}
		if err = dbTx.Put(key(&hash), headerBytes); err != nil {
			return err
		}
		if !exists {
			countDelta++
		}
		bhss.store.cache.Add(&hash, header)
	}
	for hash := range bhss.toDelete {
		exists, err := dbTx.Has(key(&hash))
		if err != nil {
			return err
		}
		if err = dbTx.Delete(key(&hash)); err != nil {
			return err
		}
		if exists {
			countDelta--
		}
		bhss.store.cache.Remove(&hash)
	}
	if countDelta != 0 && bhss.store.countRead {
		if countDelta > 0 {
			bhss.store.count += uint64(countDelta)
		} else {
			bhss.store.count -= uint64(-countDelta)
		}
		if err := dbTx.Put(countKey, serializeCount(bhss.store.count)); err != nil {
			return err
		}
	}
	return nil
}

// BlockHeader returns the header associated with blockHash
func (bhs *blockHeaderStore) BlockHeader(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (*externalapi.DomainBlockHeader, error) {

	shard := bhs.stagingShard(stagingArea)
	if header, ok := shard.toAdd[*blockHash]; ok {
		return header.Clone(), nil
	}
	if _, ok := shard.toDelete[*blockHash]; ok {
		return nil, errors.Errorf("block header for %s not found", blockHash)
	}
	if header, ok := bhs.cache.Get(blockHash); ok {
		return header.(*externalapi.DomainBlockHeader).Clone(), nil
	}
	headerBytes, err := dbContext.Get(key(blockHash))
	if err != nil {
		return nil, err
	}
	header, err := deserializeHeader(headerBytes)
	if err != nil {
		return nil, err
	}
	bhs.cache.Add(blockHash, header)
	return header.Clone(), nil
}

// BlockHeaders returns the headers associated with blockHashes
func (bhs *blockHeaderStore) BlockHeaders(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHashes []*externalapi.DomainHash) ([]*externalapi.DomainBlockHeader, error) {

	headers := make([]*externalapi.DomainBlockHeader, len(blockHashes))
	for i, hash := range blockHashes {
		header, err := bhs.BlockHeader(dbContext, stagingArea, hash)
		if err != nil {
			return nil, err
		}
		headers[i] = header
	}
	return headers, nil
}

// HasBlockHeader returns whether blockHash has a known header
func (bhs *blockHeaderStore) HasBlockHeader(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (bool, error) {

	shard := bhs.stagingShard(stagingArea)
	if _, ok := shard.toAdd[*blockHash]; ok {
		return true, nil
	}
	if _, ok := shard.toDelete[*blockHash]; ok {
		return false, nil
	}
	if bhs.cache.Has(blockHash) {
		return true, nil
	}
	return dbContext.Has(key(blockHash))
}

// Count returns the number of headers currently known
func (bhs *blockHeaderStore) Count(stagingArea *model.StagingArea) uint64 {
	shard := bhs.stagingShard(stagingArea)
	return bhs.count + uint64(len(shard.toAdd)) - uint64(len(shard.toDelete))
}

// Name returns the store's name
func (bhs *blockHeaderStore) Name() string {
	return "block-headers"
}

func (bhs *blockHeaderStore) readCount(dbContext model.DBReader) (uint64, error) {
	countBytes, err := dbContext.Get(countKey)
	if err != nil {
		return 0, nil
	}
	return deserializeCount(countBytes), nil
}

func key(blockHash *externalapi.DomainHash) model.DBKey {
	return bucket.Key(blockHash.ByteSlice())
}

func serializeHeader(header *externalapi.DomainBlockHeader) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := gob.NewEncoder(buf).Encode(header)
	if err != nil {
		return nil, errors.Wrap(err, "error serializing block header")
	}
	return buf.Bytes(), nil
}

func deserializeHeader(headerBytes []byte) (*externalapi.DomainBlockHeader, error) {
	header := &externalapi.DomainBlockHeader{}
	err := gob.NewDecoder(bytes.NewReader(headerBytes)).Decode(header)
	if err != nil {
		return nil, errors.Wrap(err, "error deserializing block header")
	}
	return header, nil
}

func serializeCount(count uint64) []byte {
	buf := &bytes.Buffer{}
	gob.NewEncoder(buf).Encode(count)
	return buf.Bytes()
}

func deserializeCount(countBytes []byte) uint64 {
	var count uint64
	gob.NewDecoder(bytes.NewReader(countBytes)).Decode(&count)
	return count
}
