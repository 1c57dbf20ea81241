package mempool

import (
	"sync"

	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/ruleerrors"
	"github.com/kaspanet/kaspad/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

// mempool holds transactions that have been validated but not yet included
// in a block, along with the orphan pool of transactions still waiting on
// parents it hasn't seen.
type mempool struct {
	mu sync.RWMutex

	config    *Config
	consensus externalapi.Consensus

	transactionsPool *transactionsPool
	orphansPool      *orphansPool
	mempoolUTXOSet   *mempoolUTXOSet
}

// New creates a new mempool bound to consensus, governed by config.
func New(consensus externalapi.Consensus, config *Config) *mempool {
	mp := &mempool{
		config:         config,
		consensus:      consensus,
		mempoolUTXOSet: newMempoolUTXOSet(),
	}
	mp.transactionsPool = newTransactionsPool(mp)
	mp.orphansPool = newOrphansPool(mp)
	return mp
}

func (mp *mempool) virtualDAAScore() (uint64, error) {
	return mp.consensus.GetVirtualDAAScore()
}

// validateTransactionInContext populates any of transaction's inputs that
// spend an output still sitting in the mempool itself (rather than in a
// mined block), so consensus-level validation can see the full UTXO set the
// transaction depends on.
//
// this function MUST be called with the mempool mutex locked for reads
func (mp *mempool) validateTransactionInContext(transaction *externalapi.DomainTransaction) error {
	for _, input := range transaction.Inputs {
		if input.UTXOEntry != nil {
			continue
		}
		if entry, ok := mp.mempoolUTXOSet.get(input.PreviousOutpoint); ok {
			input.UTXOEntry = entry
		}
	}
	return nil
}

// ValidateAndInsertTransaction validates transaction against consensus and
// the mempool's own policy, and on success adds it to the set of known
// transactions that have not yet been added to any block. If the
// transaction spends an output the node hasn't seen yet, it is parked in
// the orphan pool when allowOrphan is true, and rejected outright otherwise.
func (mp *mempool) ValidateAndInsertTransaction(transaction *externalapi.DomainTransaction, allowOrphan bool) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if err := mp.orphansPool.expireOrphanTransactions(); err != nil {
		return err
	}
	if err := mp.transactionsPool.expireOldTransactions(); err != nil {
		return err
	}

	if err := mp.validateTransactionInContext(transaction); err != nil {
		return err
	}

	err := mp.consensus.ValidateTransactionAndPopulateWithConsensusData(transaction)
	if err != nil {
		if errors.Is(err, ruleerrors.ErrMissingTxOut) {
			if !allowOrphan {
				return transactionRuleError(RejectBadOrphan, "transaction spends an unknown UTXO and orphans are disallowed")
			}
			return mp.orphansPool.maybeAddOrphan(transaction, false)
		}
		if errors.Is(err, ruleerrors.ErrImmatureSpend) {
			return transactionRuleError(RejectImmatureSpend, "one of the transaction inputs spends an immature UTXO")
		}
		if errors.As(err, &ruleerrors.RuleError{}) {
			return newRuleError(err)
		}
		return err
	}

	parentTransactionsInPool := mp.transactionsPool.getParentTransactionsInPool(transaction)
	mempoolTransaction, err := mp.transactionsPool.addTransaction(transaction, parentTransactionsInPool, false)
	if err != nil {
		return err
	}

	mp.transactionsPool.limitTransactionCount()

	_, err = mp.orphansPool.processOrphansAfterAcceptedTransaction(mempoolTransaction.Transaction())
	return err
}

// RemoveTransaction removes a transaction (identified by transactionID) from
// the mempool. If removeRedeemers is true, all of its in-mempool redeemers
// are removed as well; otherwise they're left in the mempool as is, and only
// orphans spending the removed transaction's outputs have the UTXOEntry of
// those inputs cleared.
func (mp *mempool) RemoveTransaction(transactionID *externalapi.DomainTransactionID, removeRedeemers bool) error {
	mempoolTransaction, ok := mp.transactionsPool.allTransactions[*transactionID]
	if !ok {
		return nil
	}

	if removeRedeemers {
		redeemers := mp.transactionsPool.getRedeemers(mempoolTransaction)
		for _, redeemer := range redeemers {
			err := mp.transactionsPool.removeTransaction(redeemer)
			if err != nil {
				return err
			}
			mp.mempoolUTXOSet.removeTransaction(redeemer)
		}
	}

	err := mp.orphansPool.updateOrphansAfterTransactionRemoved(mempoolTransaction, removeRedeemers)
	if err != nil {
		return err
	}

	err = mp.transactionsPool.removeTransaction(mempoolTransaction)
	if err != nil {
		return err
	}
	mp.mempoolUTXOSet.removeTransaction(mempoolTransaction)

	return nil
}

// HandleNewBlockTransactions removes transactions that were just accepted
// into a block from the mempool, and tries to unorphan any orphan
// transactions that were waiting on them. It returns the subset of those
// newly-unorphaned transactions that got accepted into the mempool as a
// result.
func (mp *mempool) HandleNewBlockTransactions(
	transactions []*externalapi.DomainTransaction) ([]*externalapi.DomainTransaction, error) {

	mp.mu.Lock()
	defer mp.mu.Unlock()

	unorphaned := []*externalapi.DomainTransaction{}
	for _, transaction := range transactions {
		if transaction.IsCoinbase() {
			continue
		}

		transactionID := consensushashing.TransactionID(transaction)
		if _, ok := mp.transactionsPool.allTransactions[*transactionID]; ok {
			err := mp.RemoveTransaction(transactionID, false)
			if err != nil {
				return nil, err
			}
		}

		accepted, err := mp.orphansPool.processOrphansAfterAcceptedTransaction(transaction)
		if err != nil {
			return nil, err
		}
		unorphaned = append(unorphaned, accepted...)
	}

	return unorphaned, nil
}

// BlockCandidateTransactions returns the set of mempool transactions with no
// unconfirmed parents, ordered by descending feerate, suitable for a block
// template builder to greedily pack into a new block.
func (mp *mempool) BlockCandidateTransactions() []*externalapi.DomainTransaction {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	candidates := make([]*externalapi.DomainTransaction, 0, mp.transactionsPool.transactionsOrderedByFeeRate.Len())
	for i := 0; i < mp.transactionsPool.transactionsOrderedByFeeRate.Len(); i++ {
		transaction := mp.transactionsPool.transactionsOrderedByFeeRate.GetByIndex(i)
		if len(transaction.ParentTransactionsInPool()) == 0 {
			candidates = append(candidates, transaction.Transaction())
		}
	}
	return candidates
}

// RemoveTransactions removes each of the given transactions from the
// mempool, along with any of their in-mempool redeemers.
func (mp *mempool) RemoveTransactions(transactions []*externalapi.DomainTransaction) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	for _, transaction := range transactions {
		transactionID := consensushashing.TransactionID(transaction)
		if _, ok := mp.transactionsPool.allTransactions[*transactionID]; !ok {
			continue
		}
		mempoolTransaction := mp.transactionsPool.allTransactions[*transactionID]
		redeemers := mp.transactionsPool.getRedeemers(mempoolTransaction)
		for _, redeemer := range redeemers {
			err := mp.RemoveTransaction(redeemer.TransactionID(), false)
			if err != nil {
				return err
			}
		}
		err := mp.RemoveTransaction(transactionID, false)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetTransaction returns the transaction identified by transactionID, if it
// is currently sitting in the mempool's main pool (orphans are not returned).
func (mp *mempool) GetTransaction(
	transactionID *externalapi.DomainTransactionID) (*externalapi.DomainTransaction, bool) {

	mp.mu.RLock()
	defer mp.mu.RUnlock()

	mempoolTransaction, ok := mp.transactionsPool.allTransactions[*transactionID]
	if !ok {
		return nil, false
	}
	return mempoolTransaction.Transaction(), true
}

// AllTransactions returns every transaction currently sitting in the
// mempool's main pool (orphans are not included).
func (mp *mempool) AllTransactions() []*externalapi.DomainTransaction {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	transactions := make([]*externalapi.DomainTransaction, 0, len(mp.transactionsPool.allTransactions))
	for _, mempoolTransaction := range mp.transactionsPool.allTransactions {
		transactions = append(transactions, mempoolTransaction.Transaction())
	}
	return transactions
}

// TransactionCount returns the number of transactions currently sitting in
// the mempool's main pool (orphans are not counted).
func (mp *mempool) TransactionCount() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.transactionsPool.allTransactions)
}
