// Package multisetstore stores, for every known block, the ECMH multiset
// commitment over the UTXO set it accepts.
package multisetstore

import (
	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/lrucache"
	"github.com/kaspanet/kaspad/domain/consensus/utils/multiset"
)

var bucket = model.MakeBucket([]byte("multisets"))

type multisetStore struct {
	cache *lrucache.LRUCache
}

// New instantiates a new MultisetStore
func New(cacheSize int) model.MultisetStore {
	return &multisetStore{cache: lrucache.New(cacheSize)}
}

type multisetStagingShard struct {
	store    *multisetStore
	toAdd    map[externalapi.DomainHash]model.Multiset
	toDelete map[externalapi.DomainHash]struct{}
}

func (ms *multisetStore) stagingShard(stagingArea *model.StagingArea) *multisetStagingShard {
	return stagingArea.GetOrCreateShard(model.StagingShardIDMultiset, func() model.StagingShard {
		return &multisetStagingShard{
			store:    ms,
			toAdd:    make(map[externalapi.DomainHash]model.Multiset),
			toDelete: make(map[externalapi.DomainHash]struct{}),
		}
	}).(*multisetStagingShard)
}

// Stage stages the given multiset for blockHash
func (ms *multisetStore) Stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, blockMultiset model.Multiset) {
	shard := ms.stagingShard(stagingArea)
	delete(shard.toDelete, *blockHash)
	shard.toAdd[*blockHash] = blockMultiset.Clone()
}

// Delete marks blockHash's multiset for deletion
func (ms *multisetStore) Delete(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) {
	shard := ms.stagingShard(stagingArea)
	delete(shard.toAdd, *blockHash)
	shard.toDelete[*blockHash] = struct{}{}
}

func (mss *multisetStagingShard) Commit(dbTx model.DBTransaction) error {
	for hash, ms := range mss.toAdd {
		err := dbTx.Put(key(&hash), ms.Serialize())
		if err != nil {
			return err
		}
		mss.store.cache.Add(&hash, ms)
	}
	for hash := range mss.toDelete {
		if err := dbTx.Delete(key(&hash)); err != nil {
			return err
		}
		mss.store.cache.Remove(&hash)
	}
	return nil
}

// Get returns the multiset associated with blockHash
func (ms *multisetStore) Get(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (model.Multiset, error) {

	shard := ms.stagingShard(stagingArea)
	if m, ok := shard.toAdd[*blockHash]; ok {
		return m.Clone(), nil
	}
	if m, ok := ms.cache.Get(blockHash); ok {
		return m.(model.Multiset).Clone(), nil
	}
	msBytes, err := dbContext.Get(key(blockHash))
	if err != nil {
		return nil, err
	}
	m, err := multiset.FromBytes(msBytes)
	if err != nil {
		return nil, err
	}
	ms.cache.Add(blockHash, m)
	return m.Clone(), nil
}

// Name returns the store's name
func (ms *multisetStore) Name() string {
	return "multisets"
}

func key(blockHash *externalapi.DomainHash) model.DBKey {
	return bucket.Key(blockHash.ByteSlice())
}
