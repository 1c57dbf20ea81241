// Package reachabilitymanager maintains an interval-labelled tree over the
// blocks on the selected-parent-chain lineage of the DAG, plus a small
// future-covering set per node for the DAG edges that tree alone can't
// represent. Together they answer "is A an ancestor of B" queries without
// walking the DAG.
package reachabilitymanager

import (
	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// defaultReachabilityReindexWindow is the size newly-allocated tree children
// are given out of their parent's remaining interval capacity
const defaultReachabilityReindexWindow = uint64(1) << 20

// rootIntervalSize is the size of the interval space granted to the DAG's
// root (genesis) block
const rootIntervalSize = uint64(1) << 62

type reachabilityManager struct {
	databaseContext       model.DBReader
	reachabilityDataStore model.ReachabilityDataStore
}

// New instantiates a new ReachabilityManager
func New(databaseContext model.DBReader, reachabilityDataStore model.ReachabilityDataStore) model.ReachabilityManager {
	return &reachabilityManager{
		databaseContext:       databaseContext,
		reachabilityDataStore: reachabilityDataStore,
	}
}

// AddBlock inserts blockHash into the reachability tree as a child of selectedParent, and records
// blockHash in the future covering set of every other block in mergeSetParents, so that DAG edges
// that aren't part of the tree are still resolvable by IsDAGAncestorOf
func (rm *reachabilityManager) AddBlock(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash,
	selectedParent *externalapi.DomainHash, mergeSetParents []*externalapi.DomainHash) error {

	if selectedParent == nil {
		// Genesis: this is the root of the tree
		rm.reachabilityDataStore.StageReachabilityData(stagingArea, blockHash,
			model.NewReachabilityData(model.NewReachabilityInterval(0, rootIntervalSize)))
		return nil
	}

	err := rm.addChild(stagingArea, selectedParent, blockHash)
	if err != nil {
		return err
	}

	for _, parent := range mergeSetParents {
		if parent.Equal(selectedParent) {
			continue
		}
		err := rm.insertToFutureCoveringSet(stagingArea, parent, blockHash)
		if err != nil {
			return err
		}
	}

	return nil
}

// addChild allocates childHash an interval out of parentHash's remaining capacity, reindexing
// parentHash's subtree first if there isn't enough room left
func (rm *reachabilityManager) addChild(stagingArea *model.StagingArea, parentHash, childHash *externalapi.DomainHash) error {
	parentData, err := rm.reachabilityDataStore.ReachabilityData(rm.databaseContext, stagingArea, parentHash)
	if err != nil {
		return err
	}

	remaining, err := rm.remainingInterval(stagingArea, parentData)
	if err != nil {
		return err
	}
	allocationSize := defaultReachabilityReindexWindow
	if remaining.Size() < allocationSize {
		if remaining.Size() == 0 {
			err := rm.reindexSubtree(stagingArea, parentHash, parentData.Interval)
			if err != nil {
				return err
			}
			parentData, err = rm.reachabilityDataStore.ReachabilityData(rm.databaseContext, stagingArea, parentHash)
			if err != nil {
				return err
			}
			remaining, err = rm.remainingInterval(stagingArea, parentData)
			if err != nil {
				return err
			}
		}
		allocationSize = remaining.Size()
	}

	childInterval := model.NewReachabilityInterval(remaining.Start, remaining.Start+allocationSize)

	parentData.Children = append(parentData.Children, childHash)
	rm.reachabilityDataStore.StageReachabilityData(stagingArea, parentHash, parentData)

	childData := model.NewReachabilityData(childInterval)
	childData.Parent = parentHash.Clone()
	rm.reachabilityDataStore.StageReachabilityData(stagingArea, childHash, childData)

	return nil
}

// remainingInterval returns the unallocated tail of parentData's interval - the space after the
// last already-allocated child, reserving the interval's own Start point for the parent itself
func (rm *reachabilityManager) remainingInterval(stagingArea *model.StagingArea,
	parentData *model.ReachabilityData) (*model.ReachabilityInterval, error) {

	start := parentData.Interval.Start + 1
	if len(parentData.Children) > 0 {
		lastChild := parentData.Children[len(parentData.Children)-1]
		lastChildData, err := rm.reachabilityDataStore.ReachabilityData(rm.databaseContext, stagingArea, lastChild)
		if err != nil {
			return nil, err
		}
		start = lastChildData.Interval.End
	}
	return model.NewReachabilityInterval(start, parentData.Interval.End), nil
}

// reindexSubtree reassigns newInterval to nodeHash and recursively splits its capacity evenly among
// its existing tree children (plus one empty slot left unassigned, for a caller that's about to
// insert a new child of nodeHash), preserving the DAG structure while making
// room for future growth
func (rm *reachabilityManager) reindexSubtree(stagingArea *model.StagingArea, nodeHash *externalapi.DomainHash,
	newInterval *model.ReachabilityInterval) error {
	return rm.reindexSubtreeReserving(stagingArea, nodeHash, newInterval, 1)
}

func (rm *reachabilityManager) reindexSubtreeReserving(stagingArea *model.StagingArea, nodeHash *externalapi.DomainHash,
	newInterval *model.ReachabilityInterval, reserveChildSlots int) error {

	nodeData, err := rm.reachabilityDataStore.ReachabilityData(rm.databaseContext, stagingArea, nodeHash)
	if err != nil {
		return err
	}

	nodeData.Interval = newInterval
	rm.reachabilityDataStore.StageReachabilityData(stagingArea, nodeHash, nodeData)

	slotCount := len(nodeData.Children) + reserveChildSlots
	if slotCount == 0 {
		return nil
	}

	childrenSpace := model.NewReachabilityInterval(newInterval.Start+1, newInterval.End)
	sizes := make([]uint64, slotCount)
	evenSize := childrenSpace.Size() / uint64(slotCount)
	for i := range sizes {
		sizes[i] = evenSize
	}
	childIntervals := childrenSpace.SplitExact(sizes)

	for i, child := range nodeData.Children {
		err := rm.reindexSubtreeReserving(stagingArea, child, childIntervals[i], 0)
		if err != nil {
			return err
		}
	}
	// the remaining reserveChildSlots intervals (childIntervals[len(nodeData.Children):]) are left
	// unassigned; addChild will claim the next one via remainingInterval

	return nil
}

// insertToFutureCoveringSet records blockHash as being in ancestorHash's future, keeping the set
// small by skipping the insertion when an existing entry already covers blockHash, and dropping
// any existing entries blockHash's own interval now covers
func (rm *reachabilityManager) insertToFutureCoveringSet(stagingArea *model.StagingArea,
	ancestorHash, blockHash *externalapi.DomainHash) error {

	ancestorData, err := rm.reachabilityDataStore.ReachabilityData(rm.databaseContext, stagingArea, ancestorHash)
	if err != nil {
		return err
	}

	blockData, err := rm.reachabilityDataStore.ReachabilityData(rm.databaseContext, stagingArea, blockHash)
	if err != nil {
		return err
	}

	filtered := make(model.FutureCoveringTreeNodeSet, 0, len(ancestorData.FutureCoveringSet)+1)
	for _, existing := range ancestorData.FutureCoveringSet {
		existingData, err := rm.reachabilityDataStore.ReachabilityData(rm.databaseContext, stagingArea, existing)
		if err != nil {
			return err
		}
		if existingData.Interval.Contains(blockData.Interval) {
			// an existing entry already covers blockHash's future; nothing to do
			return nil
		}
		if blockData.Interval.Contains(existingData.Interval) {
			// blockHash's future subsumes this entry; drop it in favor of blockHash
			continue
		}
		filtered = append(filtered, existing)
	}
	filtered = append(filtered, blockHash)

	ancestorData.FutureCoveringSet = filtered
	rm.reachabilityDataStore.StageReachabilityData(stagingArea, ancestorHash, ancestorData)
	return nil
}

// IsReachabilityTreeAncestorOf returns true if blockHashA is an ancestor of blockHashB in the
// reachability tree (the tree formed by selected-parent edges). Returns true if the hashes are equal.
func (rm *reachabilityManager) IsReachabilityTreeAncestorOf(stagingArea *model.StagingArea,
	blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {

	dataA, err := rm.reachabilityDataStore.ReachabilityData(rm.databaseContext, stagingArea, blockHashA)
	if err != nil {
		return false, err
	}
	dataB, err := rm.reachabilityDataStore.ReachabilityData(rm.databaseContext, stagingArea, blockHashB)
	if err != nil {
		return false, err
	}
	return dataA.Interval.Contains(dataB.Interval), nil
}

// IsDAGAncestorOf returns true if blockHashA is a DAG ancestor of blockHashB, considering both
// tree edges and the merge-set edges recorded in future covering sets. Returns true if the hashes
// are equal. The future covering set is scanned linearly, so the complexity is
// O(|futureCoveringSet|) on top of the O(1) tree check; no binary search is done.
func (rm *reachabilityManager) IsDAGAncestorOf(stagingArea *model.StagingArea,
	blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {

	isTreeAncestor, err := rm.IsReachabilityTreeAncestorOf(stagingArea, blockHashA, blockHashB)
	if err != nil {
		return false, err
	}
	if isTreeAncestor {
		return true, nil
	}

	dataA, err := rm.reachabilityDataStore.ReachabilityData(rm.databaseContext, stagingArea, blockHashA)
	if err != nil {
		return false, err
	}
	dataB, err := rm.reachabilityDataStore.ReachabilityData(rm.databaseContext, stagingArea, blockHashB)
	if err != nil {
		return false, err
	}

	for _, covering := range dataA.FutureCoveringSet {
		coveringData, err := rm.reachabilityDataStore.ReachabilityData(rm.databaseContext, stagingArea, covering)
		if err != nil {
			return false, err
		}
		if coveringData.Interval.Contains(dataB.Interval) {
			return true, nil
		}
	}

	return false, nil
}

// UpdateReindexRoot stages selectedTip as the new reindex root hint
func (rm *reachabilityManager) UpdateReindexRoot(stagingArea *model.StagingArea, selectedTip *externalapi.DomainHash) error {
	if selectedTip == nil {
		return errors.New("selectedTip must not be nil")
	}
	rm.reachabilityDataStore.StageReachabilityReindexRoot(stagingArea, selectedTip)
	return nil
}
