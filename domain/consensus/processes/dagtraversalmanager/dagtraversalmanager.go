// Package dagtraversalmanager implements traversals over the DAG: walking
// a block's selected parent chain, and computing a block's anticone with
// respect to the current tips.
package dagtraversalmanager

import (
	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// dagTraversalManager exposes methods for travering blocks
// in the DAG
type dagTraversalManager struct {
	databaseContext     model.DBReader
	dagTopologyManager  model.DAGTopologyManager
	ghostdagDataStore   model.GHOSTDAGDataStore
	consensusStateStore model.ConsensusStateStore
}

// New instantiates a new DAGTraversalManager
func New(
	databaseContext model.DBReader,
	dagTopologyManager model.DAGTopologyManager,
	ghostdagDataStore model.GHOSTDAGDataStore,
	consensusStateStore model.ConsensusStateStore) model.DAGTraversalManager {

	return &dagTraversalManager{
		databaseContext:     databaseContext,
		dagTopologyManager:  dagTopologyManager,
		ghostdagDataStore:   ghostdagDataStore,
		consensusStateStore: consensusStateStore,
	}
}

// SelectedParentIterator creates an iterator over the selected parent chain of the given highHash
func (dtm *dagTraversalManager) SelectedParentIterator(stagingArea *model.StagingArea,
	highHash *externalapi.DomainHash) (model.SelectedParentIterator, error) {

	return &selectedParentIterator{
		databaseContext:   dtm.databaseContext,
		stagingArea:       stagingArea,
		ghostdagDataStore: dtm.ghostdagDataStore,
		current:           highHash,
		isFirst:           true,
	}, nil
}

// HighestChainBlockBelowBlueScore returns the hash of the highest block with a blue score lower than
// the given blueScore in the block with the given highHash's selected parent chain
func (dtm *dagTraversalManager) HighestChainBlockBelowBlueScore(stagingArea *model.StagingArea,
	highHash *externalapi.DomainHash, blueScore uint64) (*externalapi.DomainHash, error) {

	current := highHash
	for {
		currentData, err := dtm.ghostdagDataStore.Get(dtm.databaseContext, stagingArea, current)
		if err != nil {
			return nil, err
		}
		if currentData.BlueScore < blueScore {
			return current, nil
		}
		if currentData.SelectedParent == nil {
			return current, nil
		}
		current = currentData.SelectedParent
	}
}

type selectedParentIterator struct {
	databaseContext   model.DBReader
	stagingArea       *model.StagingArea
	ghostdagDataStore model.GHOSTDAGDataStore
	current           *externalapi.DomainHash
	isFirst           bool
	err               error
}

// Next advances the iterator to the next block in the selected parent chain. It returns false once
// there's no further selected parent (i.e. the genesis block has been consumed)
func (it *selectedParentIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.isFirst {
		it.isFirst = false
		return it.current != nil
	}
	data, err := it.ghostdagDataStore.Get(it.databaseContext, it.stagingArea, it.current)
	if err != nil {
		it.err = err
		return false
	}
	if data.SelectedParent == nil {
		return false
	}
	it.current = data.SelectedParent
	return true
}

// Get returns the current block hash and its GHOSTDAG data
func (it *selectedParentIterator) Get() (*externalapi.DomainHash, *model.BlockGHOSTDAGData, error) {
	if it.err != nil {
		return nil, nil, it.err
	}
	if it.current == nil {
		return nil, nil, errors.New("selectedParentIterator: no current block")
	}
	data, err := it.ghostdagDataStore.Get(it.databaseContext, it.stagingArea, it.current)
	if err != nil {
		return nil, nil, err
	}
	return it.current, data, nil
}
