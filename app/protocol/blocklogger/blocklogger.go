// Package blocklogger throttles how often newly added blocks get logged, so
// fast IBD doesn't spam a log line per block.
package blocklogger

import (
	"sync"
	"time"

	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/kaspad/infrastructure/logger"
)

var log = logger.RegisterSubSystem("BLLG")

const logEvery = 10 * time.Second

var (
	mtx         sync.Mutex
	blocksSince int
	lastLogTime = time.Now()
)

// LogBlock logs a newly added block, batching consecutive additions that
// arrive faster than logEvery into a single summary line.
func LogBlock(block *externalapi.DomainBlock) {
	mtx.Lock()
	defer mtx.Unlock()

	blocksSince++
	if time.Since(lastLogTime) < logEvery {
		return
	}

	if blocksSince == 1 {
		log.Infof("Processed block %s", consensushashing.BlockHash(block))
	} else {
		log.Infof("Processed %d blocks, including %s", blocksSince, consensushashing.BlockHash(block))
	}

	blocksSince = 0
	lastLogTime = time.Now()
}
