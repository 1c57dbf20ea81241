package difficultymanager

import (
	"math"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
)

// blockWindow is up to windowSize blocks in GHOSTDAG blue order, walking back from highHash
// along the selected parent chain and taking each chain block's merge-set blues. It holds fewer
// than windowSize blocks when the chain is shorter, which the caller treats as "not enough
// history yet" rather than padding it out artificially.
type blockWindow struct {
	hashes  []*externalapi.DomainHash
	headers []*externalapi.DomainBlockHeader
}

func (dm *difficultyManager) blockWindow(stagingArea *model.StagingArea, highHash *externalapi.DomainHash,
	windowSize int) (*blockWindow, error) {

	hashes := make([]*externalapi.DomainHash, 0, windowSize)
	headers := make([]*externalapi.DomainBlockHeader, 0, windowSize)

	current := highHash
	for len(hashes) < windowSize {
		currentGHOSTDAGData, err := dm.ghostdagStore.Get(dm.databaseContext, stagingArea, current)
		if err != nil {
			return nil, err
		}

		for _, blue := range currentGHOSTDAGData.MergeSetBlues {
			header, err := dm.headerStore.BlockHeader(dm.databaseContext, stagingArea, blue)
			if err != nil {
				return nil, err
			}
			hashes = append(hashes, blue)
			headers = append(headers, header)
			if len(hashes) == windowSize {
				break
			}
		}

		if currentGHOSTDAGData.SelectedParent == nil {
			break
		}
		current = currentGHOSTDAGData.SelectedParent
	}

	return &blockWindow{hashes: hashes, headers: headers}, nil
}

// minMaxTimestamps returns the smallest and largest timestamp in the window, along with the
// index of the block holding the smallest one
func (w *blockWindow) minMaxTimestamps() (min, max int64, minIndex int) {
	min = math.MaxInt64
	max = 0
	minIndex = 0
	for i, header := range w.headers {
		if header.TimeInMilliseconds < min {
			min = header.TimeInMilliseconds
			minIndex = i
		}
		if header.TimeInMilliseconds > max {
			max = header.TimeInMilliseconds
		}
	}
	return min, max, minIndex
}
