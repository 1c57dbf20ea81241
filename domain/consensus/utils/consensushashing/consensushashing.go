// Package consensushashing derives the canonical hashes used to identify
// blocks and transactions throughout consensus: double-SHA256 over a
// deterministic encoding of the relevant fields.
package consensushashing

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
)

// HeaderHash returns the hash of the given block header
func HeaderHash(header *externalapi.DomainBlockHeader) *externalapi.DomainHash {
	buf := &bytes.Buffer{}
	writeHeader(buf, header)
	return doubleHash(buf.Bytes())
}

// BlockHash returns the hash of the given block, which is the hash of its header
func BlockHash(block *externalapi.DomainBlock) *externalapi.DomainHash {
	return HeaderHash(block.Header)
}

// TransactionHash returns the hash of the given transaction, including its signature scripts
// and payload. Two otherwise-identical transactions with different witness data hash differently.
func TransactionHash(tx *externalapi.DomainTransaction) *externalapi.DomainHash {
	buf := &bytes.Buffer{}
	writeTransaction(buf, tx, false)
	return doubleHash(buf.Bytes())
}

// TransactionID returns the id of the given transaction: its hash with signature scripts
// zeroed out for non-coinbase transactions, so that malleating a signature doesn't change
// the id other transactions use to reference it as an input.
func TransactionID(tx *externalapi.DomainTransaction) *externalapi.DomainTransactionID {
	buf := &bytes.Buffer{}
	writeTransaction(buf, tx, !tx.IsCoinbase())
	id := externalapi.DomainTransactionID(*doubleHash(buf.Bytes()))
	return &id
}

func doubleHash(data []byte) *externalapi.DomainHash {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	hash := externalapi.DomainHash(second)
	return &hash
}

func writeHeader(buf *bytes.Buffer, header *externalapi.DomainBlockHeader) {
	writeUint32(buf, uint32(header.Version))
	writeUint64(buf, uint64(len(header.ParentHashes)))
	for _, parent := range header.ParentHashes {
		buf.Write(parent.ByteSlice())
	}
	buf.Write(header.HashMerkleRoot.ByteSlice())
	buf.Write(header.AcceptedIDMerkleRoot.ByteSlice())
	buf.Write(header.UTXOCommitment.ByteSlice())
	writeUint64(buf, uint64(header.TimeInMilliseconds))
	writeUint32(buf, header.Bits)
	writeUint64(buf, header.Nonce)
}

func writeTransaction(buf *bytes.Buffer, tx *externalapi.DomainTransaction, excludeSignatureScript bool) {
	writeUint16(buf, tx.Version)
	writeUint64(buf, uint64(len(tx.Inputs)))
	for _, input := range tx.Inputs {
		buf.Write(input.PreviousOutpoint.TransactionID[:])
		writeUint32(buf, input.PreviousOutpoint.Index)
		if excludeSignatureScript {
			writeUint64(buf, 0)
		} else {
			writeUint64(buf, uint64(len(input.SignatureScript)))
			buf.Write(input.SignatureScript)
		}
		writeUint64(buf, input.Sequence)
	}
	writeUint64(buf, uint64(len(tx.Outputs)))
	for _, output := range tx.Outputs {
		writeUint64(buf, output.Value)
		writeUint16(buf, output.ScriptPublicKey.Version)
		writeUint64(buf, uint64(len(output.ScriptPublicKey.Script)))
		buf.Write(output.ScriptPublicKey.Script)
	}
	writeUint64(buf, tx.LockTime)
	buf.Write(tx.SubnetworkID[:])
	writeUint64(buf, tx.Gas)
	writeUint64(buf, uint64(len(tx.Payload)))
	buf.Write(tx.Payload)
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}
