// Package pruningstore stores the node's pruning state: the current pruning
// point, its serialized UTXO set (used to bootstrap peers), and the current
// pruning point candidate awaiting enough confirmations.
package pruningstore

import (
	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

var pruningPointKey = model.MakeBucket([]byte("pruning-meta")).Key([]byte("pruning-point"))
var pruningPointUTXOSetKey = model.MakeBucket([]byte("pruning-meta")).Key([]byte("pruning-point-utxo-set"))
var pruningPointCandidateKey = model.MakeBucket([]byte("pruning-meta")).Key([]byte("pruning-point-candidate"))

type pruningStore struct {
	pruningPointCache *externalapi.DomainHash
	candidateCache    *externalapi.DomainHash
}

// New instantiates a new PruningStore
func New() model.PruningStore {
	return &pruningStore{}
}

type pruningStagingShard struct {
	store               *pruningStore
	pruningPointStaged  *externalapi.DomainHash
	utxoSetStaged       []byte
	candidateStaged     *externalapi.DomainHash
}

func (ps *pruningStore) stagingShard(stagingArea *model.StagingArea) *pruningStagingShard {
	return stagingArea.GetOrCreateShard(model.StagingShardIDPruning, func() model.StagingShard {
		return &pruningStagingShard{store: ps}
	}).(*pruningStagingShard)
}

// StagePruningPoint stages a new pruning point block hash
func (ps *pruningStore) StagePruningPoint(stagingArea *model.StagingArea, pruningPointBlockHash *externalapi.DomainHash) {
	ps.stagingShard(stagingArea).pruningPointStaged = pruningPointBlockHash.Clone()
}

// StagePruningPointUTXOSet stages the serialized UTXO set as of the new pruning point
func (ps *pruningStore) StagePruningPointUTXOSet(stagingArea *model.StagingArea, pruningPointUTXOSetBytes []byte) {
	ps.stagingShard(stagingArea).utxoSetStaged = pruningPointUTXOSetBytes
}

// StagePruningPointCandidate stages a new pruning point candidate
func (ps *pruningStore) StagePruningPointCandidate(stagingArea *model.StagingArea, candidate *externalapi.DomainHash) {
	ps.stagingShard(stagingArea).candidateStaged = candidate.Clone()
}

func (pss *pruningStagingShard) Commit(dbTx model.DBTransaction) error {
	if pss.pruningPointStaged != nil {
		if err := dbTx.Put(pruningPointKey, pss.pruningPointStaged.ByteSlice()); err != nil {
			return err
		}
		pss.store.pruningPointCache = pss.pruningPointStaged
	}
	if pss.utxoSetStaged != nil {
		if err := dbTx.Put(pruningPointUTXOSetKey, pss.utxoSetStaged); err != nil {
			return err
		}
	}
	if pss.candidateStaged != nil {
		if err := dbTx.Put(pruningPointCandidateKey, pss.candidateStaged.ByteSlice()); err != nil {
			return err
		}
		pss.store.candidateCache = pss.candidateStaged
	}
	return nil
}

// PruningPointCandidate returns the current pruning point candidate
func (ps *pruningStore) PruningPointCandidate(dbContext model.DBReader, stagingArea *model.StagingArea) (*externalapi.DomainHash, error) {
	shard := ps.stagingShard(stagingArea)
	if shard.candidateStaged != nil {
		return shard.candidateStaged.Clone(), nil
	}
	if ps.candidateCache != nil {
		return ps.candidateCache.Clone(), nil
	}
	return readHash(dbContext, pruningPointCandidateKey)
}

// HasPruningPointCandidate returns whether a pruning point candidate is known
func (ps *pruningStore) HasPruningPointCandidate(dbContext model.DBReader, stagingArea *model.StagingArea) (bool, error) {
	shard := ps.stagingShard(stagingArea)
	if shard.candidateStaged != nil {
		return true, nil
	}
	if ps.candidateCache != nil {
		return true, nil
	}
	return dbContext.Has(pruningPointCandidateKey)
}

// PruningPoint returns the current pruning point
func (ps *pruningStore) PruningPoint(dbContext model.DBReader, stagingArea *model.StagingArea) (*externalapi.DomainHash, error) {
	shard := ps.stagingShard(stagingArea)
	if shard.pruningPointStaged != nil {
		return shard.pruningPointStaged.Clone(), nil
	}
	if ps.pruningPointCache != nil {
		return ps.pruningPointCache.Clone(), nil
	}
	return readHash(dbContext, pruningPointKey)
}

// HasPruningPoint returns whether a pruning point is known
func (ps *pruningStore) HasPruningPoint(dbContext model.DBReader, stagingArea *model.StagingArea) (bool, error) {
	shard := ps.stagingShard(stagingArea)
	if shard.pruningPointStaged != nil {
		return true, nil
	}
	if ps.pruningPointCache != nil {
		return true, nil
	}
	return dbContext.Has(pruningPointKey)
}

// PruningPointSerializedUTXOSet returns the serialized UTXO set as of the pruning point
func (ps *pruningStore) PruningPointSerializedUTXOSet(dbContext model.DBReader, stagingArea *model.StagingArea) ([]byte, error) {
	shard := ps.stagingShard(stagingArea)
	if shard.utxoSetStaged != nil {
		return shard.utxoSetStaged, nil
	}
	return dbContext.Get(pruningPointUTXOSetKey)
}

// Name returns the store's name
func (ps *pruningStore) Name() string {
	return "pruning"
}

func readHash(dbContext model.DBReader, key model.DBKey) (*externalapi.DomainHash, error) {
	hashBytes, err := dbContext.Get(key)
	if err != nil {
		return nil, errors.Wrap(err, "pruning data not found")
	}
	hash := externalapi.DomainHash{}
	copy(hash[:], hashBytes)
	return &hash, nil
}
