// Package blockprocessor validates incoming blocks and inserts them into the
// DAG: it threads each block through the topology, GHOSTDAG, reachability and
// difficulty managers and commits the result in a single staged transaction.
package blockprocessor

import (
	"runtime"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
)

// blockProcessor processes incoming blocks and updates the DAG accordingly.
// It holds three worker pools: headerPool and bodyPool, sized to the number
// of available CPUs, and virtualPool, of size 1. No processing path in this
// package dispatches work through them; validation and insertion run on the
// caller's goroutine.
type blockProcessor struct {
	databaseContext model.DB

	dagTopologyManager  model.DAGTopologyManager
	reachabilityManager model.ReachabilityManager
	ghostdagManager     model.GHOSTDAGManager
	difficultyManager   model.DifficultyManager

	blockStore          model.BlockStore
	blockHeaderStore    model.BlockHeaderStore
	blockStatusStore    model.BlockStatusStore
	blockRelationStore  model.BlockRelationStore
	consensusStateStore model.ConsensusStateStore
	ghostdagDataStore   model.GHOSTDAGDataStore

	genesisHash     *externalapi.DomainHash
	maxBlockParents int

	headerPool  *workerPool
	bodyPool    *workerPool
	virtualPool *workerPool
}

// New instantiates a new BlockProcessor
func New(
	databaseContext model.DB,
	dagTopologyManager model.DAGTopologyManager,
	reachabilityManager model.ReachabilityManager,
	ghostdagManager model.GHOSTDAGManager,
	difficultyManager model.DifficultyManager,
	blockStore model.BlockStore,
	blockHeaderStore model.BlockHeaderStore,
	blockStatusStore model.BlockStatusStore,
	blockRelationStore model.BlockRelationStore,
	consensusStateStore model.ConsensusStateStore,
	ghostdagDataStore model.GHOSTDAGDataStore,
	genesisHash *externalapi.DomainHash,
	maxBlockParents int,
) model.BlockProcessor {

	numCPU := runtime.NumCPU()
	if numCPU < 1 {
		numCPU = 1
	}

	return &blockProcessor{
		databaseContext:     databaseContext,
		dagTopologyManager:  dagTopologyManager,
		reachabilityManager: reachabilityManager,
		ghostdagManager:     ghostdagManager,
		difficultyManager:   difficultyManager,
		blockStore:          blockStore,
		blockHeaderStore:    blockHeaderStore,
		blockStatusStore:    blockStatusStore,
		blockRelationStore:  blockRelationStore,
		consensusStateStore: consensusStateStore,
		ghostdagDataStore:   ghostdagDataStore,
		genesisHash:         genesisHash,
		maxBlockParents:     maxBlockParents,
		headerPool:          newWorkerPool(numCPU),
		bodyPool:            newWorkerPool(numCPU),
		virtualPool:         newWorkerPool(1),
	}
}
