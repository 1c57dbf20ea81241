// Package blockstatusstore tracks each block's externalapi.BlockStatus.
package blockstatusstore

import (
	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/lrucache"
)

var bucket = model.MakeBucket([]byte("block-statuses"))

type blockStatusStore struct {
	cache *lrucache.LRUCache
}

// New instantiates a new BlockStatusStore
func New(cacheSize int) model.BlockStatusStore {
	return &blockStatusStore{cache: lrucache.New(cacheSize)}
}

type blockStatusStagingShard struct {
	store *blockStatusStore
	toAdd map[externalapi.DomainHash]externalapi.BlockStatus
}

func (bss *blockStatusStore) stagingShard(stagingArea *model.StagingArea) *blockStatusStagingShard {
	return stagingArea.GetOrCreateShard(model.StagingShardIDBlockStatus, func() model.StagingShard {
		return &blockStatusStagingShard{
			store: bss,
			toAdd: make(map[externalapi.DomainHash]externalapi.BlockStatus),
		}
	}).(*blockStatusStagingShard)
}

// Stage stages the given status for blockHash
func (bss *blockStatusStore) Stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash,
	status externalapi.BlockStatus) {

	bss.stagingShard(stagingArea).toAdd[*blockHash] = status
}

// IsStaged returns whether this staging area has any staged status changes
func (bss *blockStatusStore) IsStaged(stagingArea *model.StagingArea) bool {
	return len(bss.stagingShard(stagingArea).toAdd) != 0
}

func (bsss *blockStatusStagingShard) Commit(dbTx model.DBTransaction) error {
	for hash, status := range bsss.toAdd {
		err := dbTx.Put(key(&hash), []byte{byte(status)})
		if err != nil {
			return err
		}
		bsss.store.cache.Add(&hash, status)
	}
	return nil
}

// Exists returns whether blockHash has a known status
func (bss *blockStatusStore) Exists(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) bool {

	shard := bss.stagingShard(stagingArea)
	if _, ok := shard.toAdd[*blockHash]; ok {
		return true
	}
	if bss.cache.Has(blockHash) {
		return true
	}
	has, err := dbContext.Has(key(blockHash))
	return err == nil && has
}

// Get returns the status associated with blockHash
func (bss *blockStatusStore) Get(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (externalapi.BlockStatus, error) {

	shard := bss.stagingShard(stagingArea)
	if status, ok := shard.toAdd[*blockHash]; ok {
		return status, nil
	}
	if status, ok := bss.cache.Get(blockHash); ok {
		return status.(externalapi.BlockStatus), nil
	}
	statusBytes, err := dbContext.Get(key(blockHash))
	if err != nil {
		return 0, err
	}
	status := externalapi.BlockStatus(statusBytes[0])
	bss.cache.Add(blockHash, status)
	return status, nil
}

// Name returns the store's name
func (bss *blockStatusStore) Name() string {
	return "block-statuses"
}

func key(blockHash *externalapi.DomainHash) model.DBKey {
	return bucket.Key(blockHash.ByteSlice())
}
