// Package model defines the data mempool keeps per pending transaction,
// independent of how the mempool itself is organized internally.
package model

import (
	"math"

	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/consensushashing"
)

// UnacceptedDAAScore is used as the recorded blue score of a UTXO entry
// synthesized from an orphan's parent output, which hasn't actually been
// accepted into any block yet.
const UnacceptedDAAScore = math.MaxUint64

// Transaction is implemented by both MempoolTransaction and OrphanTransaction,
// letting shared bookkeeping code (e.g. redeemer traversal) work over either.
type Transaction interface {
	TransactionID() *externalapi.DomainTransactionID
	Transaction() *externalapi.DomainTransaction
}

// IDToTransaction indexes pool transactions by id
type IDToTransaction map[externalapi.DomainTransactionID]*MempoolTransaction

// OutpointToTransaction indexes pool transactions by one of their outpoints
type OutpointToTransaction map[externalapi.DomainOutpoint]*MempoolTransaction

// MempoolTransaction is a transaction that has passed mempool admission and
// is waiting to be included in a block template.
type MempoolTransaction struct {
	transaction              *externalapi.DomainTransaction
	transactionID            *externalapi.DomainTransactionID
	parentTransactionsInPool OutpointToTransaction
	isHighPriority           bool
	addedAtDAAScore          uint64
}

// NewMempoolTransaction creates a new MempoolTransaction
func NewMempoolTransaction(transaction *externalapi.DomainTransaction, parentTransactionsInPool OutpointToTransaction,
	isHighPriority bool, addedAtDAAScore uint64) *MempoolTransaction {

	return &MempoolTransaction{
		transaction:              transaction,
		transactionID:            consensushashing.TransactionID(transaction),
		parentTransactionsInPool: parentTransactionsInPool,
		isHighPriority:           isHighPriority,
		addedAtDAAScore:          addedAtDAAScore,
	}
}

// Transaction returns the underlying transaction
func (mt *MempoolTransaction) Transaction() *externalapi.DomainTransaction {
	return mt.transaction
}

// TransactionID returns the underlying transaction's ID
func (mt *MempoolTransaction) TransactionID() *externalapi.DomainTransactionID {
	return mt.transactionID
}

// ParentTransactionsInPool returns the outpoints (and the transactions backing
// them) this transaction spends that are themselves still in the mempool
func (mt *MempoolTransaction) ParentTransactionsInPool() OutpointToTransaction {
	return mt.parentTransactionsInPool
}

// IsHighPriority returns whether this transaction was submitted as high priority
func (mt *MempoolTransaction) IsHighPriority() bool {
	return mt.isHighPriority
}

// AddedAtDAAScore returns the virtual DAA score at the time this transaction
// was added to the mempool
func (mt *MempoolTransaction) AddedAtDAAScore() uint64 {
	return mt.addedAtDAAScore
}

// Mass returns the transaction's mass, for fee-rate calculations
func (mt *MempoolTransaction) Mass() uint64 {
	return mt.transaction.Mass
}

// Fee returns the transaction's fee, for fee-rate calculations
func (mt *MempoolTransaction) Fee() uint64 {
	return mt.transaction.Fee
}
