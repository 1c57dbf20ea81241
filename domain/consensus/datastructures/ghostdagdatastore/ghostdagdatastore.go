// Package ghostdagdatastore stores, for every known block, the GHOSTDAG data
// computed for it: selected parent, blue score, blue work and mergeset
// colouring.
package ghostdagdatastore

import (
	"bytes"
	"encoding/gob"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/lrucache"
	"github.com/pkg/errors"
)

var bucket = model.MakeBucket([]byte("block-ghostdag-data"))

type ghostdagDataStore struct {
	cache *lrucache.LRUCache
}

// New instantiates a new GHOSTDAGDataStore
func New(cacheSize int) model.GHOSTDAGDataStore {
	return &ghostdagDataStore{cache: lrucache.New(cacheSize)}
}

type ghostdagDataStagingShard struct {
	store *ghostdagDataStore
	toAdd map[externalapi.DomainHash]*model.BlockGHOSTDAGData
}

func (gds *ghostdagDataStore) stagingShard(stagingArea *model.StagingArea) *ghostdagDataStagingShard {
	return stagingArea.GetOrCreateShard(model.StagingShardIDGHOSTDAG, func() model.StagingShard {
		return &ghostdagDataStagingShard{
			store: gds,
			toAdd: make(map[externalapi.DomainHash]*model.BlockGHOSTDAGData),
		}
	}).(*ghostdagDataStagingShard)
}

// Stage stages blockGHOSTDAGData for blockHash
func (gds *ghostdagDataStore) Stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash,
	blockGHOSTDAGData *model.BlockGHOSTDAGData) {

	gds.stagingShard(stagingArea).toAdd[*blockHash] = blockGHOSTDAGData.Clone()
}

// IsStaged returns whether this staging area has any staged GHOSTDAG data
func (gds *ghostdagDataStore) IsStaged(stagingArea *model.StagingArea) bool {
	return len(gds.stagingShard(stagingArea).toAdd) != 0
}

func (gdss *ghostdagDataStagingShard) Commit(dbTx model.DBTransaction) error {
	for hash, data := range gdss.toAdd {
		dataBytes, err := serializeGHOSTDAGData(data)
		if err != nil {
			return err
		}
		err = dbTx.Put(key(&hash), dataBytes)
		if err != nil {
			return err
		}
		gdss.store.cache.Add(&hash, data)
	}
	return nil
}

// Get returns the GHOSTDAG data associated with blockHash
func (gds *ghostdagDataStore) Get(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (*model.BlockGHOSTDAGData, error) {

	shard := gds.stagingShard(stagingArea)
	if data, ok := shard.toAdd[*blockHash]; ok {
		return data.Clone(), nil
	}
	if data, ok := gds.cache.Get(blockHash); ok {
		return data.(*model.BlockGHOSTDAGData).Clone(), nil
	}
	dataBytes, err := dbContext.Get(key(blockHash))
	if err != nil {
		return nil, errors.Wrapf(err, "no GHOSTDAG data found for block %s", blockHash)
	}
	data, err := deserializeGHOSTDAGData(dataBytes)
	if err != nil {
		return nil, err
	}
	gds.cache.Add(blockHash, data)
	return data.Clone(), nil
}

// Name returns the store's name
func (gds *ghostdagDataStore) Name() string {
	return "block-ghostdag-data"
}

func key(blockHash *externalapi.DomainHash) model.DBKey {
	return bucket.Key(blockHash.ByteSlice())
}

func serializeGHOSTDAGData(data *model.BlockGHOSTDAGData) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := gob.NewEncoder(buf).Encode(data)
	if err != nil {
		return nil, errors.Wrap(err, "error serializing GHOSTDAG data")
	}
	return buf.Bytes(), nil
}

func deserializeGHOSTDAGData(dataBytes []byte) (*model.BlockGHOSTDAGData, error) {
	data := &model.BlockGHOSTDAGData{}
	err := gob.NewDecoder(bytes.NewReader(dataBytes)).Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, "error deserializing GHOSTDAG data")
	}
	return data, nil
}
