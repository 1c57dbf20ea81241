package ghostdagmanager

import (
	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
)

func (gm *ghostdagManager) findSelectedParent(stagingArea *model.StagingArea,
	parentHashes []*externalapi.DomainHash) (*externalapi.DomainHash, error) {

	selectedParent := parentHashes[0]
	for _, hash := range parentHashes[1:] {
		var err error
		selectedParent, err = gm.ChooseSelectedParent(stagingArea, selectedParent, hash)
		if err != nil {
			return nil, err
		}
	}
	return selectedParent, nil
}

// ChooseSelectedParent returns whichever of blockHashA and blockHashB would be chosen as a
// selected parent - the one with the higher blue work, tie-broken by hash
func (gm *ghostdagManager) ChooseSelectedParent(stagingArea *model.StagingArea,
	blockHashA, blockHashB *externalapi.DomainHash) (*externalapi.DomainHash, error) {

	ghostdagDataA, err := gm.ghostdagDataStore.Get(gm.databaseContext, stagingArea, blockHashA)
	if err != nil {
		return nil, err
	}
	ghostdagDataB, err := gm.ghostdagDataStore.Get(gm.databaseContext, stagingArea, blockHashB)
	if err != nil {
		return nil, err
	}

	if gm.Less(blockHashA, ghostdagDataA, blockHashB, ghostdagDataB) {
		return blockHashB, nil
	}
	return blockHashA, nil
}

// Less returns true if blockHashA should be ordered before blockHashB by blue work, tie-broken by hash
func (gm *ghostdagManager) Less(blockHashA *externalapi.DomainHash, ghostdagDataA *model.BlockGHOSTDAGData,
	blockHashB *externalapi.DomainHash, ghostdagDataB *model.BlockGHOSTDAGData) bool {

	switch ghostdagDataA.BlueWork.Cmp(ghostdagDataB.BlueWork.Int) {
	case -1:
		return true
	case 1:
		return false
	case 0:
		return externalapi.Less(blockHashA, blockHashB)
	default:
		panic("big.Int.Cmp is defined to always return -1/1/0 and nothing else")
	}
}
