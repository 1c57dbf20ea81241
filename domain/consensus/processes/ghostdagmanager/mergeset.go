package ghostdagmanager

import (
	"sort"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
)

// selectedParentAnticone returns the anticone of selectedParent that is reachable through blockParents -
// the candidate set that GHOSTDAG will split into merge-set blues and merge-set reds.
func (gm *ghostdagManager) selectedParentAnticone(stagingArea *model.StagingArea, selectedParent *externalapi.DomainHash,
	blockParents []*externalapi.DomainHash) ([]*externalapi.DomainHash, error) {

	anticoneSetMap := make(map[externalapi.DomainHash]struct{}, gm.k)
	anticoneSlice := make([]*externalapi.DomainHash, 0, gm.k)
	selectedParentPast := make(map[externalapi.DomainHash]struct{})
	queue := []*externalapi.DomainHash{}
	// Queueing all parents (other than the selected parent itself) for processing.
	for _, parent := range blockParents {
		if parent.Equal(selectedParent) {
			continue
		}
		anticoneSetMap[*parent] = struct{}{}
		anticoneSlice = append(anticoneSlice, parent)
		queue = append(queue, parent)
	}

	for len(queue) > 0 {
		var current *externalapi.DomainHash
		current, queue = queue[0], queue[1:]
		// For each parent of the current block we check whether it is in the past of the selected parent. If not,
		// we add it to the resulting anticone-set and queue it for further processing.
		currentParents, err := gm.dagTopologyManager.Parents(stagingArea, current)
		if err != nil {
			return nil, err
		}
		for _, parent := range currentParents {
			if _, ok := anticoneSetMap[*parent]; ok {
				continue
			}

			if _, ok := selectedParentPast[*parent]; ok {
				continue
			}

			isAncestorOfSelectedParent, err := gm.dagTopologyManager.IsAncestorOf(stagingArea, parent, selectedParent)
			if err != nil {
				return nil, err
			}

			if isAncestorOfSelectedParent {
				selectedParentPast[*parent] = struct{}{}
				continue
			}

			anticoneSetMap[*parent] = struct{}{}
			anticoneSlice = append(anticoneSlice, parent)
			queue = append(queue, parent)
		}
	}

	err := gm.sortByBlueWork(stagingArea, anticoneSlice)
	if err != nil {
		return nil, err
	}

	return anticoneSlice, nil
}

// sortByBlueWork sorts the given hashes by GHOSTDAG ordering, ascending
func (gm *ghostdagManager) sortByBlueWork(stagingArea *model.StagingArea, hashes []*externalapi.DomainHash) error {
	ghostdagDatas := make(map[externalapi.DomainHash]*model.BlockGHOSTDAGData, len(hashes))
	for _, hash := range hashes {
		data, err := gm.ghostdagDataStore.Get(gm.databaseContext, stagingArea, hash)
		if err != nil {
			return err
		}
		ghostdagDatas[*hash] = data
	}

	var err error
	sort.Slice(hashes, func(i, j int) bool {
		if err != nil {
			return false
		}
		return gm.Less(hashes[i], ghostdagDatas[*hashes[i]], hashes[j], ghostdagDatas[*hashes[j]])
	})
	return err
}
