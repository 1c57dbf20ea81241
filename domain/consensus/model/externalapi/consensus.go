package externalapi

// Consensus maintains the blockDAG and is the single source of truth for
// whether a block or transaction is valid, and what the current virtual
// state (tips, UTXO set, DAA score) looks like.
type Consensus interface {
	// ValidateAndInsertBlock validates the given block and, if valid, adds it to the DAG
	ValidateAndInsertBlock(block *DomainBlock) (*BlockInsertionResult, error)

	// ValidateAndInsertImportedPruningPoint validates a suggested new pruning point, together
	// with its serialized accompanying UTXO set, and applies it if valid
	ValidateAndInsertImportedPruningPoint(newPruningPoint *DomainBlock) error

	// ValidateTransactionAndPopulateWithConsensusData validates the given transaction against
	// the current virtual UTXO set and populates its inputs' UTXOEntry fields
	ValidateTransactionAndPopulateWithConsensusData(transaction *DomainTransaction) error

	// GetBlock returns the block identified by blockHash, if it's known
	GetBlock(blockHash *DomainHash) (*DomainBlock, error)

	// GetBlockHeader returns the header of the block identified by blockHash, if it's known
	GetBlockHeader(blockHash *DomainHash) (*DomainBlockHeader, error)

	// GetBlockInfo returns a summary of blockHash's status in the DAG
	GetBlockInfo(blockHash *DomainHash) (*BlockInfo, error)

	// GetSyncInfo returns the current sync state of the consensus
	GetSyncInfo() (*SyncInfo, error)

	// GetVirtualSelectedParent returns the block at the tip of the virtual selected parent chain
	GetVirtualSelectedParent() (*DomainBlock, error)

	// GetVirtualDAAScore returns the DAA score of the virtual block
	GetVirtualDAAScore() (uint64, error)

	// GetVirtualUTXOs returns a snapshot of up to maxEntries entries of the virtual's UTXO set,
	// continuing from fromOutpoint when it isn't nil
	GetVirtualUTXOs(fromOutpoint *DomainOutpoint, maxEntries int) ([]*OutpointAndUTXOEntryPair, error)

	// GetTips returns the current set of DAG tips
	GetTips() ([]*DomainHash, error)
}

// OutpointAndUTXOEntryPair is an outpoint paired with its UTXO entry
type OutpointAndUTXOEntryPair struct {
	Outpoint  *DomainOutpoint
	UTXOEntry *UTXOEntry
}
