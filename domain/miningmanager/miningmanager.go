package miningmanager

import (
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	miningmodel "github.com/kaspanet/kaspad/domain/miningmanager/model"
)

// MiningManager exposes the mempool and block-template-building surface a
// node needs to accept relayed/RPC-submitted transactions and hand miners
// something to hash.
type MiningManager interface {
	GetBlockTemplate(payAddress miningmodel.DomainAddress, extraData []byte) *externalapi.DomainBlock
	HandleNewBlockTransactions(txs []*externalapi.DomainTransaction) ([]*externalapi.DomainTransaction, error)
	ValidateAndInsertTransaction(transaction *externalapi.DomainTransaction, allowOrphan bool) error
	RemoveTransactions(txs []*externalapi.DomainTransaction) error
	GetTransaction(transactionID *externalapi.DomainTransactionID) (*externalapi.DomainTransaction, bool)
	AllTransactions() []*externalapi.DomainTransaction
	TransactionCount() int
}

// miningManager glues a Mempool and a BlockTemplateBuilder together behind
// the MiningManager surface; the mempool methods are forwarded as-is, and
// GetBlockTemplate is delegated to the block template builder, which reads
// the mempool's candidate transactions itself.
type miningManager struct {
	mempool              miningmodel.Mempool
	blockTemplateBuilder miningmodel.BlockTemplateBuilder
}

func (mm *miningManager) GetBlockTemplate(
	payAddress miningmodel.DomainAddress, extraData []byte) *externalapi.DomainBlock {
	return mm.blockTemplateBuilder.GetBlockTemplate(payAddress, extraData)
}

func (mm *miningManager) HandleNewBlockTransactions(
	txs []*externalapi.DomainTransaction) ([]*externalapi.DomainTransaction, error) {
	return mm.mempool.HandleNewBlockTransactions(txs)
}

func (mm *miningManager) ValidateAndInsertTransaction(transaction *externalapi.DomainTransaction, allowOrphan bool) error {
	return mm.mempool.ValidateAndInsertTransaction(transaction, allowOrphan)
}

func (mm *miningManager) RemoveTransactions(txs []*externalapi.DomainTransaction) error {
	return mm.mempool.RemoveTransactions(txs)
}

func (mm *miningManager) GetTransaction(
	transactionID *externalapi.DomainTransactionID) (*externalapi.DomainTransaction, bool) {
	return mm.mempool.GetTransaction(transactionID)
}

func (mm *miningManager) AllTransactions() []*externalapi.DomainTransaction {
	return mm.mempool.AllTransactions()
}

func (mm *miningManager) TransactionCount() int {
	return mm.mempool.TransactionCount()
}
