// Package blockstore stores full blocks (header plus transactions), keyed
// by block hash.
package blockstore

import (
	"bytes"
	"encoding/gob"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/lrucache"
	"github.com/pkg/errors"
)

var bucket = model.MakeBucket([]byte("blocks"))

type blockStore struct {
	cache *lrucache.LRUCache
	count uint64
}

// New instantiates a new BlockStore
func New(cacheSize int) model.BlockStore {
	return &blockStore{cache: lrucache.New(cacheSize)}
}

type blockStagingShard struct {
	store    *blockStore
	toAdd    map[externalapi.DomainHash]*externalapi.DomainBlock
	toDelete map[externalapi.DomainHash]struct{}
}

func (bs *blockStore) stagingShard(stagingArea *model.StagingArea) *blockStagingShard {
	return stagingArea.GetOrCreateShard(model.StagingShardIDBlock, func() model.StagingShard {
		return &blockStagingShard{
			store:    bs,
			toAdd:    make(map[externalapi.DomainHash]*externalapi.DomainBlock),
			toDelete: make(map[externalapi.DomainHash]struct{}),
		}
	}).(*blockStagingShard)
}

// Stage stages block under blockHash
func (bs *blockStore) Stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash,
	block *externalapi.DomainBlock) {

	shard := bs.stagingShard(stagingArea)
	delete(shard.toDelete, *blockHash)
	shard.toAdd[*blockHash] = block.Clone()
}

// IsStaged returns whether this staging area has any staged block changes
func (bs *blockStore) IsStaged(stagingArea *model.StagingArea) bool {
	shard := bs.stagingShard(stagingArea)
	return len(shard.toAdd) != 0 || len(shard.toDelete) != 0
}

// Delete marks blockHash's block for deletion
func (bs *blockStore) Delete(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) {
	shard := bs.stagingShard(stagingArea)
	delete(shard.toAdd, *blockHash)
	shard.toDelete[*blockHash] = struct{}{}
}

func (bss *blockStagingShard) Commit(dbTx model.DBTransaction) error {
	countDelta := int64(0)
	for hash, block := range bss.toAdd {
		blockBytes, err := serializeBlock(block)
		if err != nil {
			return err
		}
		exists, err := dbTx.Has(key(&hash))
		if err != nil {
			return err
		}
		if err = dbTx.Put(key(&hash), blockBytes); err != nil {
			return err
		}
		if !exists {
			countDelta++
		}
		bss.store.cache.Add(&hash, block)
	}
	for hash := range bss.toDelete {
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
		bss.store.cache.Remove(&hash)
	}
	if countDelta > 0 {
		bss.store.count += uint64(countDelta)
	} else if countDelta < 0 {
		bss.store.count -= uint64(-countDelta)
	}
	return nil
}

// Block returns the block associated with blockHash
func (bs *blockStore) Block(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error) {

	shard := bs.stagingShard(stagingArea)
	if block, ok := shard.toAdd[*blockHash]; ok {
		return block.Clone(), nil
	}
	if _, ok := shard.toDelete[*blockHash]; ok {
		return nil, errors.Errorf("block %s not found", blockHash)
	}
	if block, ok := bs.cache.Get(blockHash); ok {
		return block.(*externalapi.DomainBlock).Clone(), nil
	}
	blockBytes, err := dbContext.Get(key(blockHash))
	if err != nil {
		return nil, err
	}
	block, err := deserializeBlock(blockBytes)
	if err != nil {
		return nil, err
	}
	bs.cache.Add(blockHash, block)
	return block.Clone(), nil
}

// HasBlock returns whether blockHash has a known block body
func (bs *blockStore) HasBlock(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (bool, error) {

	shard := bs.stagingShard(stagingArea)
	if _, ok := shard.toAdd[*blockHash]; ok {
		return true, nil
	}
	if _, ok := shard.toDelete[*blockHash]; ok {
		return false, nil
	}
	if bs.cache.Has(blockHash) {
		return true, nil
	}
	return dbContext.Has(key(blockHash))
}

// Count returns the number of blocks currently known
func (bs *blockStore) Count(stagingArea *model.StagingArea) uint64 {
	shard := bs.stagingShard(stagingArea)
	return bs.count + uint64(len(shard.toAdd)) - uint64(len(shard.toDelete))
}

// Name returns the store's name
func (bs *blockStore) Name() string {
	return "blocks"
}

func key(blockHash *externalapi.DomainHash) model.DBKey {
	return bucket.Key(blockHash.ByteSlice())
}

func serializeBlock(block *externalapi.DomainBlock) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := gob.NewEncoder(buf).Encode(block)
	if err != nil {
		return nil, errors.Wrap(err, "error serializing block")
	}
	return buf.Bytes(), nil
}

func deserializeBlock(blockBytes []byte) (*externalapi.DomainBlock, error) {
	block := &externalapi.DomainBlock{}
	err := gob.NewDecoder(bytes.NewReader(blockBytes)).Decode(block)
	if err != nil {
		return nil, errors.Wrap(err, "error deserializing block")
	}
	return block, nil
}
