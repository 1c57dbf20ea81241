package model

import "github.com/kaspanet/kaspad/domain/consensus/model/externalapi"

// BlockGHOSTDAGData represents GHOSTDAG data for some block
type BlockGHOSTDAGData struct {
	BlueScore          uint64
	BlueWork           externalapi.BlueWorkType
	SelectedParent     *externalapi.DomainHash
	MergeSetBlues      []*externalapi.DomainHash
	MergeSetReds       []*externalapi.DomainHash
	BluesAnticoneSizes map[externalapi.DomainHash]KType
}

// KType is the type for the GHOSTDAG K parameter. It's meant to be small, so
// we use uint8
type KType uint8

// NewBlockGHOSTDAGData creates a new instance of BlockGHOSTDAGData
func NewBlockGHOSTDAGData(
	blueScore uint64,
	blueWork externalapi.BlueWorkType,
	selectedParent *externalapi.DomainHash,
	mergeSetBlues []*externalapi.DomainHash,
	mergeSetReds []*externalapi.DomainHash,
	bluesAnticoneSizes map[externalapi.DomainHash]KType) *BlockGHOSTDAGData {

	return &BlockGHOSTDAGData{
		BlueScore:          blueScore,
		BlueWork:           blueWork,
		SelectedParent:     selectedParent,
		MergeSetBlues:      mergeSetBlues,
		MergeSetReds:       mergeSetReds,
		BluesAnticoneSizes: bluesAnticoneSizes,
	}
}

// Clone returns a clone of BlockGHOSTDAGData
func (bgd *BlockGHOSTDAGData) Clone() *BlockGHOSTDAGData {
	if bgd == nil {
		return nil
	}

	bluesAnticoneSizesClone := make(map[externalapi.DomainHash]KType, len(bgd.BluesAnticoneSizes))
	for hash, size := range bgd.BluesAnticoneSizes {
		bluesAnticoneSizesClone[hash] = size
	}

	mergeSetBluesClone := make([]*externalapi.DomainHash, len(bgd.MergeSetBlues))
	for i, hash := range bgd.MergeSetBlues {
		mergeSetBluesClone[i] = hash.Clone()
	}

	mergeSetRedsClone := make([]*externalapi.DomainHash, len(bgd.MergeSetReds))
	for i, hash := range bgd.MergeSetReds {
		mergeSetRedsClone[i] = hash.Clone()
	}

	return &BlockGHOSTDAGData{
		BlueScore:          bgd.BlueScore,
		BlueWork:           bgd.BlueWork.Clone(),
		SelectedParent:     bgd.SelectedParent.Clone(),
		MergeSetBlues:      mergeSetBluesClone,
		MergeSetReds:       mergeSetRedsClone,
		BluesAnticoneSizes: bluesAnticoneSizesClone,
	}
}

// MergeSet returns the merge set of this block, ordered blue-then-red,
// each ordered topologically
func (bgd *BlockGHOSTDAGData) MergeSet() []*externalapi.DomainHash {
	result := make([]*externalapi.DomainHash, 0, len(bgd.MergeSetBlues)+len(bgd.MergeSetReds))
	result = append(result, bgd.MergeSetBlues...)
	result = append(result, bgd.MergeSetReds...)
	return result
}

// IsBlue returns whether a block is blue by this GHOSTDAG data
func (bgd *BlockGHOSTDAGData) IsBlue(blockHash *externalapi.DomainHash) bool {
	for _, blue := range bgd.MergeSetBlues {
		if blue.Equal(blockHash) {
			return true
		}
	}
	return false
}
