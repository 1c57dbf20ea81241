// Package utxodiffstore stores, for every non-virtual block on the selected
// chain, the UTXO diff between it and its "UTXO diff child" — the next
// block down the chain for which the diff was actually materialised.
package utxodiffstore

import (
	"bytes"
	"encoding/gob"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/lrucache"
	"github.com/pkg/errors"
)

var diffBucket = model.MakeBucket([]byte("utxo-diffs"))
var diffChildBucket = model.MakeBucket([]byte("utxo-diff-children"))

type utxoDiffStore struct {
	diffCache      *lrucache.LRUCache
	diffChildCache *lrucache.LRUCache
}

// New instantiates a new UTXODiffStore
func New(cacheSize int) model.UTXODiffStore {
	return &utxoDiffStore{
		diffCache:      lrucache.New(cacheSize),
		diffChildCache: lrucache.New(cacheSize),
	}
}

type utxoDiffStagingShard struct {
	store             *utxoDiffStore
	diffToAdd         map[externalapi.DomainHash]*model.UTXODiff
	diffChildToAdd    map[externalapi.DomainHash]*externalapi.DomainHash
	toDelete          map[externalapi.DomainHash]struct{}
}

func (uds *utxoDiffStore) stagingShard(stagingArea *model.StagingArea) *utxoDiffStagingShard {
	return stagingArea.GetOrCreateShard(model.StagingShardIDUTXODiff, func() model.StagingShard {
		return &utxoDiffStagingShard{
			store:          uds,
			diffToAdd:      make(map[externalapi.DomainHash]*model.UTXODiff),
			diffChildToAdd: make(map[externalapi.DomainHash]*externalapi.DomainHash),
			toDelete:       make(map[externalapi.DomainHash]struct{}),
		}
	}).(*utxoDiffStagingShard)
}

// Stage stages the given UTXO diff and diff child for blockHash
func (uds *utxoDiffStore) Stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash,
	utxoDiff *model.UTXODiff, utxoDiffChild *externalapi.DomainHash) {

	shard := uds.stagingShard(stagingArea)
	delete(shard.toDelete, *blockHash)
	if utxoDiff != nil {
		shard.diffToAdd[*blockHash] = utxoDiff.Clone()
	}
	if utxoDiffChild != nil {
		shard.diffChildToAdd[*blockHash] = utxoDiffChild.Clone()
	}
}

// IsStaged returns whether this staging area has any staged UTXO diff changes
func (uds *utxoDiffStore) IsStaged(stagingArea *model.StagingArea) bool {
	shard := uds.stagingShard(stagingArea)
	return len(shard.diffToAdd) != 0 || len(shard.diffChildToAdd) != 0 || len(shard.toDelete) != 0
}

// Delete marks blockHash's UTXO diff and diff child for deletion
func (uds *utxoDiffStore) Delete(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) {
	shard := uds.stagingShard(stagingArea)
	delete(shard.diffToAdd, *blockHash)
	delete(shard.diffChildToAdd, *blockHash)
	shard.toDelete[*blockHash] = struct{}{}
}

func (udss *utxoDiffStagingShard) Commit(dbTx model.DBTransaction) error {
	for hash, diff := range udss.diffToAdd {
		diffBytes, err := serializeUTXODiff(diff)
		if err != nil {
			return err
		}
		if err = dbTx.Put(diffKey(&hash), diffBytes); err != nil {
			return err
		}
		udss.store.diffCache.Add(&hash, diff)
	}
	for hash, child := range udss.diffChildToAdd {
		if err := dbTx.Put(diffChildKey(&hash), child.ByteSlice()); err != nil {
			return err
		}
		udss.store.diffChildCache.Add(&hash, child)
	}
	for hash := range udss.toDelete {
		if err := dbTx.Delete(diffKey(&hash)); err != nil {
			return err
		}
		if err := dbTx.Delete(diffChildKey(&hash)); err != nil {
			return err
		}
		udss.store.diffCache.Remove(&hash)
		udss.store.diffChildCache.Remove(&hash)
	}
	return nil
}

// UTXODiff returns the UTXO diff associated with blockHash
func (uds *utxoDiffStore) UTXODiff(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (*model.UTXODiff, error) {

	shard := uds.stagingShard(stagingArea)
	if diff, ok := shard.diffToAdd[*blockHash]; ok {
		return diff.Clone(), nil
	}
	if diff, ok := uds.diffCache.Get(blockHash); ok {
		return diff.(*model.UTXODiff).Clone(), nil
	}
	diffBytes, err := dbContext.Get(diffKey(blockHash))
	if err != nil {
		return nil, err
	}
	diff, err := deserializeUTXODiff(diffBytes)
	if err != nil {
		return nil, err
	}
	uds.diffCache.Add(blockHash, diff)
	return diff.Clone(), nil
}

// UTXODiffChild returns the UTXO diff child associated with blockHash
func (uds *utxoDiffStore) UTXODiffChild(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (*externalapi.DomainHash, error) {

	shard := uds.stagingShard(stagingArea)
	if child, ok := shard.diffChildToAdd[*blockHash]; ok {
		return child.Clone(), nil
	}
	if child, ok := uds.diffChildCache.Get(blockHash); ok {
		return child.(*externalapi.DomainHash).Clone(), nil
	}
	childBytes, err := dbContext.Get(diffChildKey(blockHash))
	if err != nil {
		return nil, err
	}
	child := externalapi.DomainHash{}
	copy(child[:], childBytes)
	uds.diffChildCache.Add(blockHash, &child)
	return child.Clone(), nil
}

// HasUTXODiffChild returns whether blockHash has a known diff child
func (uds *utxoDiffStore) HasUTXODiffChild(dbContext model.DBReader, stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (bool, error) {

	shard := uds.stagingShard(stagingArea)
	if _, ok := shard.diffChildToAdd[*blockHash]; ok {
		return true, nil
	}
	if uds.diffChildCache.Has(blockHash) {
		return true, nil
	}
	return dbContext.Has(diffChildKey(blockHash))
}

// Name returns the store's name
func (uds *utxoDiffStore) Name() string {
	return "utxo-diffs"
}

func diffKey(blockHash *externalapi.DomainHash) model.DBKey {
	return diffBucket.Key(blockHash.ByteSlice())
}

func diffChildKey(blockHash *externalapi.DomainHash) model.DBKey {
	return diffChildBucket.Key(blockHash.ByteSlice())
}

func serializeUTXODiff(diff *model.UTXODiff) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := gob.NewEncoder(buf).Encode(diff)
	if err != nil {
		return nil, errors.Wrap(err, "error serializing UTXO diff")
	}
	return buf.Bytes(), nil
}

func deserializeUTXODiff(diffBytes []byte) (*model.UTXODiff, error) {
	diff := &model.UTXODiff{}
	err := gob.NewDecoder(bytes.NewReader(diffBytes)).Decode(diff)
	if err != nil {
		return nil, errors.Wrap(err, "error deserializing UTXO diff")
	}
	return diff, nil
}
