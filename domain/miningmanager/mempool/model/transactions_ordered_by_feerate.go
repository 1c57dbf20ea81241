package model

import (
	"math"
	"sort"
)

// feerateAlpha is the exponent applied to a transaction's raw feerate before
// ranking it. Raising to a positive power keeps the feerate order, so the
// exponent does not change the ranking in this sorted slice.
const feerateAlpha = 3

// sompiPerKaspa mirrors util.SompiPerKaspa locally to avoid pulling the util
// package into this low-level ordering type.
const sompiPerKaspa = 100_000_000

// feerateConstantPriorityFee is substituted for the real fee of a
// high-priority transaction when computing its weight, guaranteeing it sorts
// ahead of ordinary transactions regardless of what it actually paid.
const feerateConstantPriorityFee = 1_000 * sompiPerKaspa

// TransactionsOrderedByFeeRate keeps mempool transactions sorted by
// descending feerate weight, so the block template builder can greedily pull
// the most rewarding transactions first.
//
// This is a straightforward sorted slice rather than the weighted-sampling
// tree the algorithm is ultimately based on; transaction counts handled by
// this mempool are small enough that O(n) insertion/removal is not a
// bottleneck.
type TransactionsOrderedByFeeRate struct {
	entries []*feerateEntry
}

type feerateEntry struct {
	transaction *MempoolTransaction
	weight      float64
}

func weightOf(transaction *MempoolTransaction) float64 {
	fee := float64(transaction.Fee())
	if transaction.IsHighPriority() && transaction.Fee() < feerateConstantPriorityFee {
		fee = float64(feerateConstantPriorityFee)
	}
	mass := float64(transaction.Mass())
	if mass == 0 {
		mass = 1
	}
	return math.Pow(fee/mass, feerateAlpha)
}

// NewTransactionsOrderedByFeeRate creates an empty TransactionsOrderedByFeeRate
func NewTransactionsOrderedByFeeRate() *TransactionsOrderedByFeeRate {
	return &TransactionsOrderedByFeeRate{}
}

// Push inserts transaction, keeping entries sorted by descending weight
func (t *TransactionsOrderedByFeeRate) Push(transaction *MempoolTransaction) error {
	entry := &feerateEntry{transaction: transaction, weight: weightOf(transaction)}
	index := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].weight < entry.weight
	})
	t.entries = append(t.entries, nil)
	copy(t.entries[index+1:], t.entries[index:])
	t.entries[index] = entry
	return nil
}

// Remove removes transaction from the ordering. It's a no-op if the
// transaction isn't present.
func (t *TransactionsOrderedByFeeRate) Remove(transaction *MempoolTransaction) error {
	transactionID := transaction.TransactionID()
	for i, entry := range t.entries {
		if *entry.transaction.TransactionID() == *transactionID {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// GetByIndex returns the transaction at the given rank, where index 0 is the
// highest-feerate transaction currently tracked.
func (t *TransactionsOrderedByFeeRate) GetByIndex(index int) *MempoolTransaction {
	if index < 0 || index >= len(t.entries) {
		return nil
	}
	return t.entries[index].transaction
}

// Len returns the number of transactions currently tracked
func (t *TransactionsOrderedByFeeRate) Len() int {
	return len(t.entries)
}
