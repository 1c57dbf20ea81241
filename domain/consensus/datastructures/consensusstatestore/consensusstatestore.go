// Package consensusstatestore stores the current consensus state: the
// virtual's UTXO set and the current set of DAG tips.
package consensusstatestore

import (
	"bytes"
	"encoding/gob"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

var utxoBucket = model.MakeBucket([]byte("virtual-utxo-set"))
var tipsKey = model.MakeBucket([]byte("consensus-state-meta")).Key([]byte("tips"))

type consensusStateStore struct {
	tipsCache []*externalapi.DomainHash
}

// New instantiates a new ConsensusStateStore
func New() model.ConsensusStateStore {
	return &consensusStateStore{}
}

type consensusStateStagingShard struct {
	store         *consensusStateStore
	utxoDiff      *model.UTXODiff
	tipsStaged    []*externalapi.DomainHash
}

func (css *consensusStateStore) stagingShard(stagingArea *model.StagingArea) *consensusStateStagingShard {
	return stagingArea.GetOrCreateShard(model.StagingShardIDConsensusState, func() model.StagingShard {
		return &consensusStateStagingShard{store: css}
	}).(*consensusStateStagingShard)
}

// StageVirtualUTXODiff stages a diff to be applied to the virtual UTXO set on commit
func (css *consensusStateStore) StageVirtualUTXODiff(stagingArea *model.StagingArea, virtualUTXODiff *model.UTXODiff) {
	css.stagingShard(stagingArea).utxoDiff = virtualUTXODiff
}

// StageTips stages a new set of DAG tips
func (css *consensusStateStore) StageTips(stagingArea *model.StagingArea, tipHashes []*externalapi.DomainHash) {
	css.stagingShard(stagingArea).tipsStaged = externalapi.CloneHashes(tipHashes)
}

func (csss *consensusStateStagingShard) Commit(dbTx model.DBTransaction) error {
	if csss.utxoDiff != nil {
		for outpoint, entry := range csss.utxoDiff.ToRemove {
			err := dbTx.Delete(utxoKey(&outpoint))
			if err != nil {
				return err
			}
			_ = entry
		}
		for outpoint, entry := range csss.utxoDiff.ToAdd {
			entryBytes, err := serializeUTXOEntry(entry)
			if err != nil {
				return err
			}
			err = dbTx.Put(utxoKey(&outpoint), entryBytes)
			if err != nil {
				return err
			}
		}
	}
	if csss.tipsStaged != nil {
		err := dbTx.Put(tipsKey, serializeTips(csss.tipsStaged))
		if err != nil {
			return err
		}
		csss.store.tipsCache = csss.tipsStaged
	}
	return nil
}

// UTXOByOutpoint returns the UTXO entry for outpoint, considering any staged diff
func (css *consensusStateStore) UTXOByOutpoint(dbContext model.DBReader, stagingArea *model.StagingArea,
	outpoint *externalapi.DomainOutpoint) (*externalapi.UTXOEntry, error) {

	shard := css.stagingShard(stagingArea)
	if shard.utxoDiff != nil {
		if entry, ok := shard.utxoDiff.ToAdd[*outpoint]; ok {
			return entry.Clone(), nil
		}
		if _, ok := shard.utxoDiff.ToRemove[*outpoint]; ok {
			return nil, errors.Errorf("outpoint %s was removed from the UTXO set", outpoint)
		}
	}
	entryBytes, err := dbContext.Get(utxoKey(outpoint))
	if err != nil {
		return nil, err
	}
	return deserializeUTXOEntry(entryBytes)
}

// HasUTXOByOutpoint returns whether outpoint is part of the virtual UTXO set
func (css *consensusStateStore) HasUTXOByOutpoint(dbContext model.DBReader, stagingArea *model.StagingArea,
	outpoint *externalapi.DomainOutpoint) (bool, error) {

	shard := css.stagingShard(stagingArea)
	if shard.utxoDiff != nil {
		if _, ok := shard.utxoDiff.ToAdd[*outpoint]; ok {
			return true, nil
		}
		if _, ok := shard.utxoDiff.ToRemove[*outpoint]; ok {
			return false, nil
		}
	}
	return dbContext.Has(utxoKey(outpoint))
}

// VirtualUTXOSetIterator iterates over the virtual UTXO set as it currently
// exists in the database, ignoring the staged diff
func (css *consensusStateStore) VirtualUTXOSetIterator(dbContext model.DBReader,
	stagingArea *model.StagingArea) (model.ReadOnlyUTXOSetIterator, error) {

	cursor, err := dbContext.Cursor(utxoBucket)
	if err != nil {
		return nil, err
	}
	return &utxoSetIterator{cursor: cursor}, nil
}

// Tips returns the current set of DAG tips
func (css *consensusStateStore) Tips(dbContext model.DBReader, stagingArea *model.StagingArea) ([]*externalapi.DomainHash, error) {
	shard := css.stagingShard(stagingArea)
	if shard.tipsStaged != nil {
		return externalapi.CloneHashes(shard.tipsStaged), nil
	}
	if css.tipsCache != nil {
		return externalapi.CloneHashes(css.tipsCache), nil
	}
	tipsBytes, err := dbContext.Get(tipsKey)
	if err != nil {
		return nil, errors.Wrap(err, "tips not found")
	}
	tips := deserializeTips(tipsBytes)
	css.tipsCache = tips
	return externalapi.CloneHashes(tips), nil
}

// Name returns the store's name
func (css *consensusStateStore) Name() string {
	return "consensus-state"
}

type utxoSetIterator struct {
	cursor model.DBCursor
}

func (it *utxoSetIterator) Next() bool {
	return it.cursor.Next()
}

func (it *utxoSetIterator) Get() (*externalapi.DomainOutpoint, *externalapi.UTXOEntry, error) {
	keyBytes, err := it.cursor.Key()
	if err != nil {
		return nil, nil, err
	}
	outpoint, err := deserializeOutpoint(keyBytes.Bytes()[len(utxoBucket.Path()):])
	if err != nil {
		return nil, nil, err
	}
	valueBytes, err := it.cursor.Value()
	if err != nil {
		return nil, nil, err
	}
	entry, err := deserializeUTXOEntry(valueBytes)
	if err != nil {
		return nil, nil, err
	}
	return outpoint, entry, nil
}

func utxoKey(outpoint *externalapi.DomainOutpoint) model.DBKey {
	return utxoBucket.Key(serializeOutpoint(outpoint))
}

func serializeOutpoint(outpoint *externalapi.DomainOutpoint) []byte {
	buf := &bytes.Buffer{}
	gob.NewEncoder(buf).Encode(outpoint)
	return buf.Bytes()
}

func deserializeOutpoint(outpointBytes []byte) (*externalapi.DomainOutpoint, error) {
	outpoint := &externalapi.DomainOutpoint{}
	err := gob.NewDecoder(bytes.NewReader(outpointBytes)).Decode(outpoint)
	if err != nil {
		return nil, errors.Wrap(err, "error deserializing outpoint")
	}
	return outpoint, nil
}

func serializeUTXOEntry(entry *externalapi.UTXOEntry) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := gob.NewEncoder(buf).Encode(entry)
	if err != nil {
		return nil, errors.Wrap(err, "error serializing UTXO entry")
	}
	return buf.Bytes(), nil
}

func deserializeUTXOEntry(entryBytes []byte) (*externalapi.UTXOEntry, error) {
	entry := &externalapi.UTXOEntry{}
	err := gob.NewDecoder(bytes.NewReader(entryBytes)).Decode(entry)
	if err != nil {
		return nil, errors.Wrap(err, "error deserializing UTXO entry")
	}
	return entry, nil
}

func serializeTips(tips []*externalapi.DomainHash) []byte {
	buf := &bytes.Buffer{}
	gob.NewEncoder(buf).Encode(tips)
	return buf.Bytes()
}

func deserializeTips(tipsBytes []byte) []*externalapi.DomainHash {
	var tips []*externalapi.DomainHash
	gob.NewDecoder(bytes.NewReader(tipsBytes)).Decode(&tips)
	return tips
}
