// Package acceptancedatastore stores, for every block on the selected
// chain, which transactions in its mergeset were accepted and which were
// disqualified as double spends.
package acceptancedatastore

import (
	"bytes"
	"encoding/gob"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/lrucache"
	"github.com/pkg/errors"
)

var bucket = model.MakeBucket([]byte("acceptance-data"))

type acceptanceDataStore struct {
	cache *lrucache.LRUCache
}

// New instantiates a new AcceptanceDataStore
func New(cacheSize int) model.AcceptanceDataStore {
	return &acceptanceDataStore{cache: lrucache.New(cacheSize)}
}

type acceptanceDataStagingShard struct {
	store    *acceptanceDataStore
	toAdd    map[externalapi.DomainHash]externalapi.AcceptanceData
	toDelete map[externalapi.DomainHash]struct{}
}

func (ads *acceptanceDataStore) stagingShard(stagingArea *model.StagingArea) *acceptanceDataStagingShard {
	return stagingArea.GetOrCreateShard(model.StagingShardIDAcceptanceData, func() model.StagingShard {
		return &acceptanceDataStagingShard{
			store:    ads,
			toAdd:    make(map[externalapi.DomainHash]externalapi.AcceptanceData),
			toDelete: make(map[externalapi.DomainHash]struct{}),
		}
	}).(*acceptanceDataStagingShard)
}

// Stage stages acceptanceData for blockHash
func (ads *acceptanceDataStore) Stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash,
	acceptanceData externalapi.AcceptanceData) {

	shard := ads.stagingShard(stagingArea)
	delete(shard.toDelete, *blockHash)
	shard.toAdd[*blockHash] = acceptanceData.Clone()
}

// IsStaged returns whether this staging area has any staged acceptance data changes
func (ads *acceptanceDataStore) IsStaged(stagingArea *model.StagingArea) bool {
	shard := ads.stagingShard(stagingArea)
	return len(shard.toAdd) != 0 || len(shard.toDelete) != 0
}

// Delete marks blockHash's acceptance data for deletion
func (ads *acceptanceDataStore) Delete(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) {
	shard := ads.stagingShard(stagingArea)
	delete(shard.toAdd, *blockHash)
	shard.toDelete[*blockHash] = struct{}{}
}

func (adss *acceptanceDataStagingShard) Commit(dbTx model.DBTransaction) error {
	for hash, data := range adss.toAdd {
		dataBytes, err := serializeAcceptanceData(data)
		if err != nil {
			return err
		}
		if err = dbTx.Put(key(&hash), dataBytes); err != nil {
			return err
		}
		adss.store.cache.Add(&hash, data)
	}
	for hash := range adss.toDelete {
		if err := dbTx.Delete(key(&hash)); err != nil {
			return err
		}
		adss.store.cache.Remove(&hash)
	}
	return nil
}

// Get returns the acceptance data associated with blockHash
func (ads *acceptanceDataStore) Get(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (externalapi.AcceptanceData, error) {

	shard := ads.stagingShard(stagingArea)
	if data, ok := shard.toAdd[*blockHash]; ok {
		return data.Clone(), nil
	}
	if _, ok := shard.toDelete[*blockHash]; ok {
		return nil, errors.Errorf("acceptance data for %s not found", blockHash)
	}
	if data, ok := ads.cache.Get(blockHash); ok {
		return data.(externalapi.AcceptanceData).Clone(), nil
	}
	dataBytes, err := dbContext.Get(key(blockHash))
	if err != nil {
		return nil, err
	}
	data, err := deserializeAcceptanceData(dataBytes)
	if err != nil {
		return nil, err
	}
	ads.cache.Add(blockHash, data)
	return data.Clone(), nil
}

// Name returns the store's name
func (ads *acceptanceDataStore) Name() string {
	return "acceptance-data"
}

func key(blockHash *externalapi.DomainHash) model.DBKey {
	return bucket.Key(blockHash.ByteSlice())
}

func serializeAcceptanceData(data externalapi.AcceptanceData) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := gob.NewEncoder(buf).Encode(data)
	if err != nil {
		return nil, errors.Wrap(err, "error serializing acceptance data")
	}
	return buf.Bytes(), nil
}

func deserializeAcceptanceData(dataBytes []byte) (externalapi.AcceptanceData, error) {
	var data externalapi.AcceptanceData
	err := gob.NewDecoder(bytes.NewReader(dataBytes)).Decode(&data)
	if err != nil {
		return nil, errors.Wrap(err, "error deserializing acceptance data")
	}
	return data, nil
}
