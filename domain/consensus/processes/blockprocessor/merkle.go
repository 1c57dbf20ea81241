package blockprocessor

import (
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/merkle"
)

// calculateHashMerkleRoot builds the merkle root of a block's transaction hashes.
// A block with no transactions (header-only) gets the zero hash.
func calculateHashMerkleRoot(transactions []*externalapi.DomainTransaction) *externalapi.DomainHash {
	return merkle.CalculateHashMerkleRoot(transactions)
}
