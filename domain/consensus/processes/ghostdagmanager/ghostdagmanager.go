// Package ghostdagmanager implements the GHOSTDAG protocol: it colors each
// block's mergeset blue or red under a k-cluster anticone bound, and from
// that coloring derives the block's blue score and cumulative blue work -
// the quantities that decide which tip is the virtual selected parent.
package ghostdagmanager

import (
	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/difficulty"
	"github.com/pkg/errors"
)

type ghostdagManager struct {
	databaseContext model.DBReader

	dagTopologyManager model.DAGTopologyManager
	ghostdagDataStore  model.GHOSTDAGDataStore
	headerStore        model.BlockHeaderStore

	k           model.KType
	genesisHash *externalapi.DomainHash
}

// New instantiates a new GHOSTDAGManager
func New(
	databaseContext model.DBReader,
	dagTopologyManager model.DAGTopologyManager,
	ghostdagDataStore model.GHOSTDAGDataStore,
	headerStore model.BlockHeaderStore,
	k model.KType,
	genesisHash *externalapi.DomainHash) model.GHOSTDAGManager {

	return &ghostdagManager{
		databaseContext:    databaseContext,
		dagTopologyManager: dagTopologyManager,
		ghostdagDataStore:  ghostdagDataStore,
		headerStore:        headerStore,
		k:                  k,
		genesisHash:        genesisHash,
	}
}

// GHOSTDAG runs the GHOSTDAG protocol on blockHash and stages the resulting BlockGHOSTDAGData
func (gm *ghostdagManager) GHOSTDAG(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) error {
	blockParents, err := gm.dagTopologyManager.Parents(stagingArea, blockHash)
	if err != nil {
		return err
	}

	if len(blockParents) == 0 {
		// Genesis, or a block with no known parents
		gm.ghostdagDataStore.Stage(stagingArea, blockHash, model.NewBlockGHOSTDAGData(
			0,
			externalapi.NewBlueWorkType(0),
			nil,
			nil,
			nil,
			make(map[externalapi.DomainHash]model.KType),
		))
		return nil
	}

	selectedParent, err := gm.findSelectedParent(stagingArea, blockParents)
	if err != nil {
		return err
	}

	mergeSetBlues := []*externalapi.DomainHash{selectedParent}
	bluesAnticoneSizes := make(map[externalapi.DomainHash]model.KType)
	bluesAnticoneSizes[*selectedParent] = 0

	candidates, err := gm.selectedParentAnticone(stagingArea, selectedParent, blockParents)
	if err != nil {
		return err
	}

	var mergeSetReds []*externalapi.DomainHash
	for _, blueCandidate := range candidates {
		isBlue, candidateAnticoneSize, candidateBluesAnticoneSizes, err :=
			gm.checkBlueCandidate(stagingArea, blockHash, selectedParent, mergeSetBlues, bluesAnticoneSizes, blueCandidate)
		if err != nil {
			return err
		}

		if isBlue {
			mergeSetBlues = append(mergeSetBlues, blueCandidate)
			bluesAnticoneSizes[*blueCandidate] = candidateAnticoneSize
			for blue, blueAnticoneSize := range candidateBluesAnticoneSizes {
				bluesAnticoneSizes[blue] = blueAnticoneSize + 1
			}

			// node.blues can hold at most k+1 entries (including the selected parent)
			if model.KType(len(mergeSetBlues)) == gm.k+1 {
				// all remaining candidates are necessarily red: collect them and stop
				mergeSetReds = append(mergeSetReds, candidatesAfter(candidates, blueCandidate)...)
				break
			}
		} else {
			mergeSetReds = append(mergeSetReds, blueCandidate)
		}
	}

	selectedParentGHOSTDAGData, err := gm.ghostdagDataStore.Get(gm.databaseContext, stagingArea, selectedParent)
	if err != nil {
		return err
	}

	blueScore := selectedParentGHOSTDAGData.BlueScore + uint64(len(mergeSetBlues))

	blueWork := selectedParentGHOSTDAGData.BlueWork
	for _, blue := range mergeSetBlues {
		blueHeader, err := gm.headerStore.BlockHeader(gm.databaseContext, stagingArea, blue)
		if err != nil {
			return err
		}
		blueWork = blueWork.Add(externalapi.BlueWorkFromBigInt(difficulty.CalcWork(blueHeader.Bits)))
	}

	gm.ghostdagDataStore.Stage(stagingArea, blockHash, model.NewBlockGHOSTDAGData(
		blueScore,
		blueWork,
		selectedParent,
		mergeSetBlues,
		mergeSetReds,
		bluesAnticoneSizes,
	))

	return nil
}

// candidatesAfter returns the elements of candidates strictly after target, in order
func candidatesAfter(candidates []*externalapi.DomainHash, target *externalapi.DomainHash) []*externalapi.DomainHash {
	for i, candidate := range candidates {
		if candidate.Equal(target) {
			return candidates[i+1:]
		}
	}
	return nil
}

// checkBlueCandidate checks whether blueCandidate can be added to the blue set of newBlock without violating
// the k-cluster property, and if so returns its blue anticone size together with the updated blue anticone
// sizes of the chain blocks whose anticone grows by blueCandidate
func (gm *ghostdagManager) checkBlueCandidate(stagingArea *model.StagingArea, newBlock, selectedParent *externalapi.DomainHash,
	mergeSetBlues []*externalapi.DomainHash, bluesAnticoneSizes map[externalapi.DomainHash]model.KType,
	blueCandidate *externalapi.DomainHash) (isBlue bool, candidateAnticoneSize model.KType,
	candidateBluesAnticoneSizes map[externalapi.DomainHash]model.KType, err error) {

	// The maximum length of newBlock's blues can be K+1 because it includes the selected parent
	if model.KType(len(mergeSetBlues)) == gm.k+1 {
		return false, 0, nil, nil
	}

	candidateBluesAnticoneSizes = make(map[externalapi.DomainHash]model.KType)

	// Iterate over all chain blocks from newBlock down to the selected parent, gathering blue anticone sizes
	// introduced by blueCandidate, until a chain block proves to be an ancestor of blueCandidate
	chainBlock := newBlock
	for {
		isAncestorOfCandidate, err := gm.dagTopologyManager.IsAncestorOf(stagingArea, chainBlock, blueCandidate)
		if err != nil {
			return false, 0, nil, err
		}
		// newBlock is always in blueCandidate's future, so there's no point in checking it
		if !chainBlock.Equal(newBlock) && isAncestorOfCandidate {
			break
		}

		var chainBlockBlues []*externalapi.DomainHash
		if chainBlock.Equal(newBlock) {
			chainBlockBlues = mergeSetBlues
		} else {
			chainBlockData, err := gm.ghostdagDataStore.Get(gm.databaseContext, stagingArea, chainBlock)
			if err != nil {
				return false, 0, nil, err
			}
			chainBlockBlues = chainBlockData.MergeSetBlues
		}

		for _, blue := range chainBlockBlues {
			if _, ok := candidateBluesAnticoneSizes[*blue]; ok {
				continue
			}

			isBlueAncestorOfCandidate, err := gm.dagTopologyManager.IsAncestorOf(stagingArea, blue, blueCandidate)
			if err != nil {
				return false, 0, nil, err
			}
			if isBlueAncestorOfCandidate {
				continue
			}

			blueAnticoneSize, err := gm.blueAnticoneSize(stagingArea, blue, selectedParent, bluesAnticoneSizes)
			if err != nil {
				return false, 0, nil, err
			}
			candidateBluesAnticoneSizes[*blue] = blueAnticoneSize
			candidateAnticoneSize++

			if candidateAnticoneSize > gm.k {
				// k-cluster violation: blueCandidate's blue anticone exceeds k
				return false, 0, nil, nil
			}

			if blueAnticoneSize == gm.k {
				// k-cluster violation: a block in blueCandidate's blue anticone already has k blue
				// blocks in its own anticone
				return false, 0, nil, nil
			}

			if blueAnticoneSize > gm.k {
				return false, 0, nil, errors.New("found blue anticone size larger than k")
			}
		}

		if chainBlock.Equal(selectedParent) {
			break
		}
		chainBlockData, err := gm.ghostdagDataStore.Get(gm.databaseContext, stagingArea, chainBlock)
		if err != nil {
			return false, 0, nil, err
		}
		chainBlock = chainBlockData.SelectedParent
	}

	return true, candidateAnticoneSize, candidateBluesAnticoneSizes, nil
}

// blueAnticoneSize returns the blue anticone size of block, as it was recorded when block was colored
// blue, by walking up the selected parent chain until an entry for block is found
func (gm *ghostdagManager) blueAnticoneSize(stagingArea *model.StagingArea, block, selectedParent *externalapi.DomainHash,
	newBlockBluesAnticoneSizes map[externalapi.DomainHash]model.KType) (model.KType, error) {

	if size, ok := newBlockBluesAnticoneSizes[*block]; ok {
		return size, nil
	}

	current := selectedParent
	for {
		currentData, err := gm.ghostdagDataStore.Get(gm.databaseContext, stagingArea, current)
		if err != nil {
			return 0, err
		}
		if size, ok := currentData.BluesAnticoneSizes[*block]; ok {
			return size, nil
		}
		if currentData.SelectedParent == nil {
			return 0, errors.Errorf("block %s is not in the blue set of any ancestor of %s", block, selectedParent)
		}
		current = currentData.SelectedParent
	}
}

// BlockData returns the GHOSTDAG data of blockHash
func (gm *ghostdagManager) BlockData(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (*model.BlockGHOSTDAGData, error) {
	return gm.ghostdagDataStore.Get(gm.databaseContext, stagingArea, blockHash)
}
