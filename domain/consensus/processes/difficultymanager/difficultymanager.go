// Package difficultymanager resolves the proof-of-work target a block must meet, by averaging
// the targets of a trailing window of blue blocks and normalizing by how long that window
// actually took to mine.
package difficultymanager

import (
	"math/big"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/difficulty"
	"github.com/pkg/errors"
)

type difficultyManager struct {
	databaseContext model.DBReader

	ghostdagStore model.GHOSTDAGDataStore
	headerStore   model.BlockHeaderStore

	genesisHash                    *externalapi.DomainHash
	genesisBits                    uint32
	powMax                         *big.Int
	difficultyAdjustmentWindowSize int
	targetTimePerBlock             int64
	disableDifficultyAdjustment    bool
}

// New instantiates a new DifficultyManager
func New(databaseContext model.DBReader,
	ghostdagStore model.GHOSTDAGDataStore,
	headerStore model.BlockHeaderStore,
	genesisHash *externalapi.DomainHash,
	genesisBits uint32,
	powMax *big.Int,
	difficultyAdjustmentWindowSize int,
	targetTimePerBlock int64,
	disableDifficultyAdjustment bool) model.DifficultyManager {

	return &difficultyManager{
		databaseContext:                databaseContext,
		ghostdagStore:                  ghostdagStore,
		headerStore:                    headerStore,
		genesisHash:                    genesisHash,
		genesisBits:                    genesisBits,
		powMax:                         powMax,
		difficultyAdjustmentWindowSize: difficultyAdjustmentWindowSize,
		targetTimePerBlock:             targetTimePerBlock,
		disableDifficultyAdjustment:    disableDifficultyAdjustment,
	}
}

// RequiredDifficulty returns the difficulty bits blockHash's own header must satisfy, derived
// from the windowSize blue blocks preceding blockHash's selected parent
func (dm *difficultyManager) RequiredDifficulty(stagingArea *model.StagingArea,
	blockHash *externalapi.DomainHash) (uint32, error) {

	if dm.disableDifficultyAdjustment {
		return dm.genesisBits, nil
	}

	ghostdagData, err := dm.ghostdagStore.Get(dm.databaseContext, stagingArea, blockHash)
	if err != nil {
		return 0, err
	}

	if ghostdagData.SelectedParent == nil {
		// blockHash is the genesis block
		return dm.genesisBits, nil
	}

	window, err := dm.blockWindow(stagingArea, ghostdagData.SelectedParent, dm.difficultyAdjustmentWindowSize)
	if err != nil {
		return 0, err
	}

	return dm.calculateDifficultyBits(window)
}

// calculateDifficultyBits returns the constant genesis difficulty until a full window is
// available, then normalizes the window's average target by how long the window took to mine
func (dm *difficultyManager) calculateDifficultyBits(window *blockWindow) (uint32, error) {
	if len(window.headers) < dm.difficultyAdjustmentWindowSize {
		return dm.genesisBits, nil
	}

	minTimestamp, maxTimestamp, minIndex := window.minMaxTimestamps()
	if minTimestamp >= maxTimestamp {
		return 0, errors.Errorf("min window timestamp is equal to or greater than the max window timestamp")
	}

	// Drop the min-timestamp block: we want the average target of the window excluding the
	// one data point that anchors the elapsed-time measurement
	headersWithoutMin := make([]*externalapi.DomainBlockHeader, 0, len(window.headers)-1)
	for i, header := range window.headers {
		if i == minIndex {
			continue
		}
		headersWithoutMin = append(headersWithoutMin, header)
	}

	averageTarget := calcAverageTarget(headersWithoutMin)

	elapsedMilliseconds := maxTimestamp - minTimestamp
	if elapsedMilliseconds < 1 {
		elapsedMilliseconds = 1
	}

	newTarget := new(big.Int).Mul(averageTarget, big.NewInt(elapsedMilliseconds))
	newTarget.Div(newTarget, big.NewInt(dm.targetTimePerBlock))
	newTarget.Div(newTarget, big.NewInt(int64(len(headersWithoutMin))))

	if newTarget.Cmp(dm.powMax) > 0 {
		newTarget = dm.powMax
	}

	return difficulty.BigToCompact(newTarget), nil
}

// calcAverageTarget returns the arithmetic mean of the proof-of-work targets implied by the
// given headers' difficulty bits
func calcAverageTarget(headers []*externalapi.DomainBlockHeader) *big.Int {
	averageTarget := big.NewInt(0)
	for _, header := range headers {
		averageTarget.Add(averageTarget, difficulty.CompactToBig(header.Bits))
	}
	return averageTarget.Div(averageTarget, big.NewInt(int64(len(headers))))
}
