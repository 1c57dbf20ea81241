package flowcontext

import (
	"sync"
	"time"

	peerpkg "github.com/kaspanet/kaspad/app/protocol/peer"
	"github.com/kaspanet/kaspad/domain"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
)

// OnBlockAddedToDAGHandler is a handler function that's triggered
// when a block is added to the DAG
type OnBlockAddedToDAGHandler func(block *externalapi.DomainBlock, blockInsertionResult *externalapi.BlockInsertionResult) error

// OnTransactionAddedToMempoolHandler is a handler function that's triggered
// when a transaction is added to the mempool
type OnTransactionAddedToMempoolHandler func()

// FlowContext holds state that is relevant to more than one flow or one peer, and allows communication between
// different flows that can be associated to different peers.
type FlowContext struct {
	domain      domain.Domain
	broadcaster Broadcaster

	onBlockAddedToDAGHandler           OnBlockAddedToDAGHandler
	onTransactionAddedToMempoolHandler OnTransactionAddedToMempoolHandler

	transactionsToRebroadcastLock sync.Mutex
	transactionsToRebroadcast     map[externalapi.DomainTransactionID]*externalapi.DomainTransaction
	lastRebroadcastTime           time.Time
	sharedRequestedTransactions   *SharedRequestedTransactions

	sharedRequestedBlocks *SharedRequestedBlocks
	orphans               *orphanBlocksPool

	isInIBD       uint32
	startIBDMutex sync.Mutex
	ibdPeer       *peerpkg.Peer

	peers      map[peerpkg.ID]*peerpkg.Peer
	peersMutex sync.RWMutex
}

// New returns a new instance of FlowContext.
func New(domainInstance domain.Domain, broadcaster Broadcaster) *FlowContext {
	return &FlowContext{
		domain:                      domainInstance,
		broadcaster:                 broadcaster,
		sharedRequestedTransactions: NewSharedRequestedTransactions(),
		sharedRequestedBlocks:       NewSharedRequestedBlocks(),
		orphans:                     newOrphanBlocksPool(defaultMaxOrphans),
		peers:                       make(map[peerpkg.ID]*peerpkg.Peer),
		transactionsToRebroadcast:   make(map[externalapi.DomainTransactionID]*externalapi.DomainTransaction),
	}
}

// Domain returns this context's domain instance
func (f *FlowContext) Domain() domain.Domain {
	return f.domain
}

// SetOnBlockAddedToDAGHandler sets the onBlockAddedToDAG handler
func (f *FlowContext) SetOnBlockAddedToDAGHandler(onBlockAddedToDAGHandler OnBlockAddedToDAGHandler) {
	f.onBlockAddedToDAGHandler = onBlockAddedToDAGHandler
}

// SetOnTransactionAddedToMempoolHandler sets the onTransactionAddedToMempool handler
func (f *FlowContext) SetOnTransactionAddedToMempoolHandler(onTransactionAddedToMempoolHandler OnTransactionAddedToMempoolHandler) {
	f.onTransactionAddedToMempoolHandler = onTransactionAddedToMempoolHandler
}
