package blocktemplatebuilder

import (
	"time"

	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/estimatedsize"
	"github.com/kaspanet/kaspad/domain/consensus/utils/merkle"
	miningmodel "github.com/kaspanet/kaspad/domain/miningmanager/model"
)

// blockTemplateBuilder assembles a candidate block out of the mempool's
// highest-feerate transactions for a miner to hash.
//
// It does not compute the GHOSTDAG-derived header fields from the merge set
// of the block being built: BlueWork is zero, the UTXO commitment is the zero
// hash, BlueScore is the virtual selected parent's plus one, and the
// accepted-id merkle root covers only the template's own transactions. The
// mined block is validated in full, and those fields recomputed
// authoritatively, the moment it's submitted through
// Consensus.ValidateAndInsertBlock.
type blockTemplateBuilder struct {
	consensus externalapi.Consensus
	mempool   miningmodel.Mempool
	config    *Config
}

// New creates a block template builder bound to consensus and mempool.
func New(consensus externalapi.Consensus, mempool miningmodel.Mempool, config *Config) *blockTemplateBuilder {
	return &blockTemplateBuilder{
		consensus: consensus,
		mempool:   mempool,
		config:    config,
	}
}

// GetBlockTemplate greedily packs mempool transactions, highest feerate
// first, into a new block below the configured mass budget, and pays the
// result (subsidy plus collected fees) to payAddress.
func (btb *blockTemplateBuilder) GetBlockTemplate(
	payAddress miningmodel.DomainAddress, extraData []byte) *externalapi.DomainBlock {

	tips, err := btb.consensus.GetTips()
	if err != nil {
		log.Errorf("GetTips: %s", err)
		return nil
	}

	selectedParent, err := btb.consensus.GetVirtualSelectedParent()
	if err != nil {
		log.Errorf("GetVirtualSelectedParent: %s", err)
		return nil
	}

	daaScore, err := btb.consensus.GetVirtualDAAScore()
	if err != nil {
		log.Errorf("GetVirtualDAAScore: %s", err)
		return nil
	}

	candidates := btb.mempool.BlockCandidateTransactions()
	selected, totalFees := btb.selectTransactions(candidates)

	payScriptPublicKey := scriptPublicKeyForAddress(payAddress)
	coinbaseTransaction := buildCoinbaseTransaction(btb.config, daaScore, totalFees, payScriptPublicKey, extraData)

	transactions := make([]*externalapi.DomainTransaction, 0, len(selected)+1)
	transactions = append(transactions, coinbaseTransaction)
	transactions = append(transactions, selected...)

	header := &externalapi.DomainBlockHeader{
		Version:              0,
		ParentHashes:         tips,
		HashMerkleRoot:       merkle.CalculateHashMerkleRoot(transactions),
		AcceptedIDMerkleRoot: merkle.CalculateIDMerkleRoot(transactions),
		UTXOCommitment:       &externalapi.DomainHash{},
		TimeInMilliseconds:   time.Now().UnixMilli(),
		Bits:                 selectedParent.Header.Bits,
		Nonce:                0,
		DAAScore:             daaScore + 1,
		BlueWork:             externalapi.NewBlueWorkType(0),
		BlueScore:            selectedParent.Header.BlueScore + 1,
		PruningPoint:         selectedParent.Header.PruningPoint,
	}

	return &externalapi.DomainBlock{
		Header:       header,
		Transactions: transactions,
	}
}

// selectTransactions walks candidates (already ordered by descending
// feerate) greedily until the configured mass budget is exhausted.
func (btb *blockTemplateBuilder) selectTransactions(
	candidates []*externalapi.DomainTransaction) (selected []*externalapi.DomainTransaction, totalFees uint64) {

	usedMass := uint64(0)
	for _, transaction := range candidates {
		mass := transaction.Mass
		if mass == 0 {
			mass = estimatedsize.TransactionEstimatedSerializedSize(transaction)
		}
		if usedMass+mass > btb.config.MaximumMassPerBlock {
			continue
		}
		usedMass += mass
		totalFees += transaction.Fee
		selected = append(selected, transaction)
	}
	return selected, totalFees
}

// scriptPublicKeyForAddress derives the coinbase's pay-to script from a
// payment address. This pack carries no standard-script builder (no opcode
// table, no ScriptBuilder), so the address's raw hash is used directly as
// the script; a full implementation would wrap it in the P2PKH/P2SH opcode
// sequence the address type calls for.
func scriptPublicKeyForAddress(address miningmodel.DomainAddress) *externalapi.ScriptPublicKey {
	return &externalapi.ScriptPublicKey{
		Script:  address.ScriptAddress(),
		Version: 0,
	}
}
