package externalapi

import "encoding/hex"

// DomainTransactionID is the domain representation of a transaction ID
type DomainTransactionID DomainHash

// String returns the transaction ID as a hex string
func (id *DomainTransactionID) String() string {
	return hex.EncodeToString(id[:])
}

// DomainOutpoint is the domain representation of a transaction outpoint
type DomainOutpoint struct {
	TransactionID DomainTransactionID
	Index         uint32
}

// Equal returns whether outpoint equals to other
func (op *DomainOutpoint) Equal(other *DomainOutpoint) bool {
	if op == nil || other == nil {
		return op == other
	}
	return op.TransactionID == other.TransactionID && op.Index == other.Index
}

// ScriptPublicKey represents a kaspa transaction script and its version
type ScriptPublicKey struct {
	Script  []byte
	Version uint16
}

// Clone returns a clone of ScriptPublicKey
func (spk *ScriptPublicKey) Clone() *ScriptPublicKey {
	if spk == nil {
		return nil
	}
	scriptClone := make([]byte, len(spk.Script))
	copy(scriptClone, spk.Script)
	return &ScriptPublicKey{Script: scriptClone, Version: spk.Version}
}

// DomainTransactionOutput represents a kaspa transaction output
type DomainTransactionOutput struct {
	Value           uint64
	ScriptPublicKey *ScriptPublicKey
}

// Clone returns a clone of DomainTransactionOutput
func (out *DomainTransactionOutput) Clone() *DomainTransactionOutput {
	if out == nil {
		return nil
	}
	return &DomainTransactionOutput{Value: out.Value, ScriptPublicKey: out.ScriptPublicKey.Clone()}
}

// DomainTransactionInput represents a kaspa transaction input
type DomainTransactionInput struct {
	PreviousOutpoint DomainOutpoint
	SignatureScript  []byte
	Sequence         uint64
	SigOpCount       byte

	// UTXOEntry is populated lazily, once the transaction's containing UTXO set is known
	UTXOEntry *UTXOEntry
}

// Clone returns a clone of DomainTransactionInput
func (in *DomainTransactionInput) Clone() *DomainTransactionInput {
	if in == nil {
		return nil
	}
	sigScriptClone := make([]byte, len(in.SignatureScript))
	copy(sigScriptClone, in.SignatureScript)
	return &DomainTransactionInput{
		PreviousOutpoint: in.PreviousOutpoint,
		SignatureScript:  sigScriptClone,
		Sequence:         in.Sequence,
		SigOpCount:       in.SigOpCount,
		UTXOEntry:        in.UTXOEntry.Clone(),
	}
}

// DomainTransaction represents a kaspa transaction
type DomainTransaction struct {
	Version      uint16
	Inputs       []*DomainTransactionInput
	Outputs      []*DomainTransactionOutput
	LockTime     uint64
	SubnetworkID DomainSubnetworkID
	Gas          uint64
	Payload      []byte

	Fee  uint64
	Mass uint64

	// id caches the computed transaction id; populated lazily
	id *DomainTransactionID
}

// DomainSubnetworkID represents a subnetwork ID
type DomainSubnetworkID [20]byte

// SubnetworkIDNative is the default/native subnetwork ID
var SubnetworkIDNative = DomainSubnetworkID{}

// Clone returns a clone of DomainTransaction. The clone doesn't preserve the cached id.
func (tx *DomainTransaction) Clone() *DomainTransaction {
	if tx == nil {
		return nil
	}
	inputsClone := make([]*DomainTransactionInput, len(tx.Inputs))
	for i, in := range tx.Inputs {
		inputsClone[i] = in.Clone()
	}
	outputsClone := make([]*DomainTransactionOutput, len(tx.Outputs))
	for i, out := range tx.Outputs {
		outputsClone[i] = out.Clone()
	}
	payloadClone := make([]byte, len(tx.Payload))
	copy(payloadClone, tx.Payload)

	return &DomainTransaction{
		Version:      tx.Version,
		Inputs:       inputsClone,
		Outputs:      outputsClone,
		LockTime:     tx.LockTime,
		SubnetworkID: tx.SubnetworkID,
		Gas:          tx.Gas,
		Payload:      payloadClone,
		Fee:          tx.Fee,
		Mass:         tx.Mass,
	}
}

// IsCoinbase returns whether this transaction is a coinbase transaction
func (tx *DomainTransaction) IsCoinbase() bool {
	return tx.SubnetworkID == SubnetworkIDCoinbase
}

// SubnetworkIDCoinbase is the subnetwork ID reserved for coinbase transactions
var SubnetworkIDCoinbase = DomainSubnetworkID{1}
