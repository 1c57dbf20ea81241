package difficultymanager

import (
	"math/big"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// EstimateNetworkHashesPerSecond estimates the network's hashrate in the windowSize blocks
// of highHash's window, from the spread of blue work across that window
func (dm *difficultyManager) EstimateNetworkHashesPerSecond(stagingArea *model.StagingArea,
	highHash *externalapi.DomainHash, windowSize int) (uint64, error) {

	window, err := dm.blockWindow(stagingArea, highHash, windowSize)
	if err != nil {
		return 0, err
	}

	if len(window.headers) == 0 {
		return 0, errors.Errorf("cannot estimate network hashrate over an empty block window")
	}

	minTimestamp, maxTimestamp, _ := window.minMaxTimestamps()
	if minTimestamp >= maxTimestamp {
		return 0, errors.Errorf("min window timestamp is equal to or greater than the max window timestamp")
	}

	minWindowBlueWork := window.headers[0].BlueWork.Int
	maxWindowBlueWork := window.headers[0].BlueWork.Int
	for _, header := range window.headers[1:] {
		blueWork := header.BlueWork.Int
		if blueWork.Cmp(minWindowBlueWork) < 0 {
			minWindowBlueWork = blueWork
		}
		if blueWork.Cmp(maxWindowBlueWork) > 0 {
			maxWindowBlueWork = blueWork
		}
	}

	workDone := new(big.Int).Sub(maxWindowBlueWork, minWindowBlueWork)
	elapsedSeconds := (maxTimestamp - minTimestamp) / 1000
	if elapsedSeconds < 1 {
		elapsedSeconds = 1
	}

	hashesPerSecond := new(big.Int).Div(workDone, big.NewInt(elapsedSeconds))
	return hashesPerSecond.Uint64(), nil
}
