package model

import (
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/consensushashing"
)

// OrphanTransaction is a transaction that was submitted to the mempool but
// spends outputs that aren't yet known, either because they belong to a
// transaction still in the mempool's own orphan pool or to a block the
// consensus hasn't seen yet.
type OrphanTransaction struct {
	transaction     *externalapi.DomainTransaction
	transactionID   *externalapi.DomainTransactionID
	isHighPriority  bool
	addedAtDAAScore uint64
}

// NewOrphanTransaction creates a new OrphanTransaction
func NewOrphanTransaction(transaction *externalapi.DomainTransaction, isHighPriority bool,
	addedAtDAAScore uint64) *OrphanTransaction {

	return &OrphanTransaction{
		transaction:     transaction,
		transactionID:   consensushashing.TransactionID(transaction),
		isHighPriority:  isHighPriority,
		addedAtDAAScore: addedAtDAAScore,
	}
}

// Transaction returns the underlying transaction
func (ot *OrphanTransaction) Transaction() *externalapi.DomainTransaction {
	return ot.transaction
}

// TransactionID returns the underlying transaction's ID
func (ot *OrphanTransaction) TransactionID() *externalapi.DomainTransactionID {
	return ot.transactionID
}

// IsHighPriority returns whether this transaction was submitted as high priority
func (ot *OrphanTransaction) IsHighPriority() bool {
	return ot.isHighPriority
}

// AddedAtDAAScore returns the virtual DAA score at the time this transaction
// was added to the orphan pool
func (ot *OrphanTransaction) AddedAtDAAScore() uint64 {
	return ot.addedAtDAAScore
}
