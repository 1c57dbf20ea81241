package mempool

import (
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/miningmanager/mempool/model"
)

// mempoolUTXOSet tracks the outputs created by transactions that are
// currently sitting in the mempool, so that a chained transaction spending
// one of those outputs can be populated and validated before its parent has
// been accepted into a block.
type mempoolUTXOSet struct {
	poolUnspentOutputs map[externalapi.DomainOutpoint]*externalapi.UTXOEntry
}

func newMempoolUTXOSet() *mempoolUTXOSet {
	return &mempoolUTXOSet{
		poolUnspentOutputs: make(map[externalapi.DomainOutpoint]*externalapi.UTXOEntry),
	}
}

// this function MUST be called with the mempool mutex locked for writes
func (mus *mempoolUTXOSet) addTransaction(transaction *model.MempoolTransaction) {
	tx := transaction.Transaction()
	transactionID := transaction.TransactionID()

	for _, input := range tx.Inputs {
		delete(mus.poolUnspentOutputs, input.PreviousOutpoint)
	}

	for i, output := range tx.Outputs {
		outpoint := externalapi.DomainOutpoint{TransactionID: *transactionID, Index: uint32(i)}
		mus.poolUnspentOutputs[outpoint] = externalapi.NewUTXOEntry(
			output.Value, output.ScriptPublicKey, false, model.UnacceptedDAAScore)
	}
}

// this function MUST be called with the mempool mutex locked for writes
func (mus *mempoolUTXOSet) removeTransaction(transaction *model.MempoolTransaction) {
	tx := transaction.Transaction()
	transactionID := transaction.TransactionID()

	for i := range tx.Outputs {
		outpoint := externalapi.DomainOutpoint{TransactionID: *transactionID, Index: uint32(i)}
		delete(mus.poolUnspentOutputs, outpoint)
	}
}

// this function MUST be called with the mempool mutex locked for reads
func (mus *mempoolUTXOSet) get(outpoint externalapi.DomainOutpoint) (*externalapi.UTXOEntry, bool) {
	entry, ok := mus.poolUnspentOutputs[outpoint]
	return entry, ok
}
