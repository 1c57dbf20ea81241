// Package estimatedsize approximates the wire size of a transaction, cheaply
// enough to use as a mempool admission check without actually serializing it.
package estimatedsize

import "github.com/kaspanet/kaspad/domain/consensus/model/externalapi"

const (
	hashSize         = externalapi.DomainHashSize
	outpointSize     = hashSize + 4              // transaction id + index
	staticInputSize  = outpointSize + 8 + 8 + 1   // outpoint + sequence + signature script length + sig op count
	staticOutputSize = 8 + 2 + 8                  // value + script version + script length
	staticHeaderSize = 2 + 8 + hashSize + 8 + 8    // version + lock time + subnetwork id + gas + payload length
)

// TransactionEstimatedSerializedSize returns an upper bound on the number of
// bytes transaction would occupy on the wire.
func TransactionEstimatedSerializedSize(transaction *externalapi.DomainTransaction) uint64 {
	size := uint64(staticHeaderSize)

	for _, input := range transaction.Inputs {
		size += uint64(staticInputSize) + uint64(len(input.SignatureScript))
	}

	for _, output := range transaction.Outputs {
		size += uint64(staticOutputSize) + uint64(len(output.ScriptPublicKey.Script))
	}

	size += uint64(len(transaction.Payload))

	return size
}
