// Package blockrelationstore stores, for every known block, its direct
// parents and children in the DAG.
package blockrelationstore

import (
	"bytes"
	"encoding/gob"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/lrucache"
	"github.com/pkg/errors"
)

var bucket = model.MakeBucket([]byte("block-relations"))

type blockRelationStore struct {
	cache *lrucache.LRUCache
}

// New instantiates a new BlockRelationStore
func New(cacheSize int) model.BlockRelationStore {
	return &blockRelationStore{cache: lrucache.New(cacheSize)}
}

type blockRelationStagingShard struct {
	store   *blockRelationStore
	toAdd   map[externalapi.DomainHash]*model.BlockRelations
	toDelete map[externalapi.DomainHash]struct{}
}

func (brs *blockRelationStore) stagingShard(stagingArea *model.StagingArea) *blockRelationStagingShard {
	return stagingArea.GetOrCreateShard(model.StagingShardIDBlockRelation, func() model.StagingShard {
		return &blockRelationStagingShard{
			store:    brs,
			toAdd:    make(map[externalapi.DomainHash]*model.BlockRelations),
			toDelete: make(map[externalapi.DomainHash]struct{}),
		}
	}).(*blockRelationStagingShard)
}

// StageBlockRelation stages the given block relations for the given block hash
func (brs *blockRelationStore) StageBlockRelation(stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash, blockRelations *model.BlockRelations) {

	shard := brs.stagingShard(stagingArea)
	delete(shard.toDelete, *blockHash)
	shard.toAdd[*blockHash] = blockRelations.Clone()
}

// Delete marks the block relations for blockHash for deletion
func (brs *blockRelationStore) Delete(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) {
	shard := brs.stagingShard(stagingArea)
	delete(shard.toAdd, *blockHash)
	shard.toDelete[*blockHash] = struct{}{}
}

func (brss *blockRelationStagingShard) Commit(dbTx model.DBTransaction) error {
	for hash, relations := range brss.toAdd {
		relationsBytes, err := serializeBlockRelations(relations)
		if err != nil {
			return err
		}
		err = dbTx.Put(key(&hash), relationsBytes)
		if err != nil {
			return err
		}
		brss.store.cache.Add(&hash, relations)
	}
	for hash := range brss.toDelete {
		err := dbTx.Delete(key(&hash))
		if err != nil {
			return err
		}
		brss.store.cache.Remove(&hash)
	}
	return nil
}

// BlockRelation returns the block relations associated with blockHash
func (brs *blockRelationStore) BlockRelation(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (*model.BlockRelations, error) {

	shard := brs.stagingShard(stagingArea)

	if relations, ok := shard.toAdd[*blockHash]; ok {
		return relations.Clone(), nil
	}
	if _, ok := shard.toDelete[*blockHash]; ok {
		return nil, errors.Errorf("block relations for %s not found", blockHash)
	}
	if relations, ok := brs.cache.Get(blockHash); ok {
		return relations.(*model.BlockRelations).Clone(), nil
	}

	relationsBytes, err := dbContext.Get(key(blockHash))
	if err != nil {
		return nil, err
	}
	relations, err := deserializeBlockRelations(relationsBytes)
	if err != nil {
		return nil, err
	}
	brs.cache.Add(blockHash, relations)
	return relations.Clone(), nil
}

// Has returns whether blockHash has an entry in the store
func (brs *blockRelationStore) Has(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (bool, error) {

	shard := brs.stagingShard(stagingArea)
	if _, ok := shard.toAdd[*blockHash]; ok {
		return true, nil
	}
	if _, ok := shard.toDelete[*blockHash]; ok {
		return false, nil
	}
	if brs.cache.Has(blockHash) {
		return true, nil
	}
	return dbContext.Has(key(blockHash))
}

// Name returns the store's name
func (brs *blockRelationStore) Name() string {
	return "block-relations"
}

func key(blockHash *externalapi.DomainHash) model.DBKey {
	return bucket.Key(blockHash.ByteSlice())
}

func serializeBlockRelations(relations *model.BlockRelations) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := gob.NewEncoder(buf).Encode(relations)
	if err != nil {
		return nil, errors.Wrap(err, "error serializing block relations")
	}
	return buf.Bytes(), nil
}

func deserializeBlockRelations(relationsBytes []byte) (*model.BlockRelations, error) {
	relations := &model.BlockRelations{}
	err := gob.NewDecoder(bytes.NewReader(relationsBytes)).Decode(relations)
	if err != nil {
		return nil, errors.Wrap(err, "error deserializing block relations")
	}
	return relations, nil
}
