// Package reachabilitydatastore stores the interval-tree reachability data
// computed for every known block, plus the single reindex root hash.
package reachabilitydatastore

import (
	"bytes"
	"encoding/gob"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/lrucache"
	"github.com/pkg/errors"
)

var bucket = model.MakeBucket([]byte("reachability-data"))
var reindexRootKey = model.MakeBucket([]byte("reachability-meta")).Key([]byte("reindex-root"))

type reachabilityDataStore struct {
	cache           *lrucache.LRUCache
	reindexRootCache *externalapi.DomainHash
}

// New instantiates a new ReachabilityDataStore
func New(cacheSize int) model.ReachabilityDataStore {
	return &reachabilityDataStore{cache: lrucache.New(cacheSize)}
}

type reachabilityDataStagingShard struct {
	store             *reachabilityDataStore
	toAdd             map[externalapi.DomainHash]*model.ReachabilityData
	reindexRootStaged *externalapi.DomainHash
}

func (rds *reachabilityDataStore) stagingShard(stagingArea *model.StagingArea) *reachabilityDataStagingShard {
	return stagingArea.GetOrCreateShard(model.StagingShardIDReachability, func() model.StagingShard {
		return &reachabilityDataStagingShard{
			store: rds,
			toAdd: make(map[externalapi.DomainHash]*model.ReachabilityData),
		}
	}).(*reachabilityDataStagingShard)
}

// StageReachabilityData stages reachabilityData for blockHash
func (rds *reachabilityDataStore) StageReachabilityData(stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash, reachabilityData *model.ReachabilityData) {

	rds.stagingShard(stagingArea).toAdd[*blockHash] = reachabilityData.Clone()
}

// StageReachabilityReindexRoot stages a new reindex root
func (rds *reachabilityDataStore) StageReachabilityReindexRoot(stagingArea *model.StagingArea,
	reindexRoot *externalapi.DomainHash) {

	rds.stagingShard(stagingArea).reindexRootStaged = reindexRoot.Clone()
}

// IsStaged returns whether this staging area has any staged reachability changes
func (rds *reachabilityDataStore) IsStaged(stagingArea *model.StagingArea) bool {
	shard := rds.stagingShard(stagingArea)
	return len(shard.toAdd) != 0 || shard.reindexRootStaged != nil
}

func (rdss *reachabilityDataStagingShard) Commit(dbTx model.DBTransaction) error {
	for hash, data := range rdss.toAdd {
		dataBytes, err := serializeReachabilityData(data)
		if err != nil {
			return err
		}
		err = dbTx.Put(key(&hash), dataBytes)
		if err != nil {
			return err
		}
		rdss.store.cache.Add(&hash, data)
	}
	if rdss.reindexRootStaged != nil {
		err := dbTx.Put(reindexRootKey, rdss.reindexRootStaged.ByteSlice())
		if err != nil {
			return err
		}
		rdss.store.reindexRootCache = rdss.reindexRootStaged
	}
	return nil
}

// ReachabilityData returns the reachability data associated with blockHash
func (rds *reachabilityDataStore) ReachabilityData(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (*model.ReachabilityData, error) {

	shard := rds.stagingShard(stagingArea)
	if data, ok := shard.toAdd[*blockHash]; ok {
		return data.Clone(), nil
	}
	if data, ok := rds.cache.Get(blockHash); ok {
		return data.(*model.ReachabilityData).Clone(), nil
	}
	dataBytes, err := dbContext.Get(key(blockHash))
	if err != nil {
		return nil, err
	}
	data, err := deserializeReachabilityData(dataBytes)
	if err != nil {
		return nil, err
	}
	rds.cache.Add(blockHash, data)
	return data.Clone(), nil
}

// HasReachabilityData returns whether blockHash has known reachability data
func (rds *reachabilityDataStore) HasReachabilityData(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (bool, error) {

	shard := rds.stagingShard(stagingArea)
	if _, ok := shard.toAdd[*blockHash]; ok {
		return true, nil
	}
	if rds.cache.Has(blockHash) {
		return true, nil
	}
	return dbContext.Has(key(blockHash))
}

// ReachabilityReindexRoot returns the current reindex root
func (rds *reachabilityDataStore) ReachabilityReindexRoot(dbContext model.DBReader,
	stagingArea *model.StagingArea) (*externalapi.DomainHash, error) {

	shard := rds.stagingShard(stagingArea)
	if shard.reindexRootStaged != nil {
		return shard.reindexRootStaged.Clone(), nil
	}
	if rds.reindexRootCache != nil {
		return rds.reindexRootCache.Clone(), nil
	}
	rootBytes, err := dbContext.Get(reindexRootKey)
	if err != nil {
		return nil, errors.Wrap(err, "reachability reindex root not found")
	}
	root := externalapi.DomainHash{}
	copy(root[:], rootBytes)
	rds.reindexRootCache = &root
	return root.Clone(), nil
}

// Name returns the store's name
func (rds *reachabilityDataStore) Name() string {
	return "reachability-data"
}

func key(blockHash *externalapi.DomainHash) model.DBKey {
	return bucket.Key(blockHash.ByteSlice())
}

func serializeReachabilityData(data *model.ReachabilityData) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := gob.NewEncoder(buf).Encode(data)
	if err != nil {
		return nil, errors.Wrap(err, "error serializing reachability data")
	}
	return buf.Bytes(), nil
}

func deserializeReachabilityData(dataBytes []byte) (*model.ReachabilityData, error) {
	data := &model.ReachabilityData{}
	err := gob.NewDecoder(bytes.NewReader(dataBytes)).Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, "error deserializing reachability data")
	}
	return data, nil
}
