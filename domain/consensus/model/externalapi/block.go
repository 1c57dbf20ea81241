package externalapi

// DomainBlockHeader is the domain representation of a block's header
type DomainBlockHeader struct {
	Version              int32
	ParentHashes         []*DomainHash
	HashMerkleRoot       *DomainHash
	AcceptedIDMerkleRoot *DomainHash
	UTXOCommitment       *DomainHash
	TimeInMilliseconds   int64
	Bits                 uint32
	Nonce                uint64
	DAAScore             uint64
	BlueWork             BlueWorkType
	BlueScore            uint64
	PruningPoint         *DomainHash
}

// Clone returns a clone of DomainBlockHeader
func (bh *DomainBlockHeader) Clone() *DomainBlockHeader {
	if bh == nil {
		return nil
	}
	return &DomainBlockHeader{
		Version:              bh.Version,
		ParentHashes:         CloneHashes(bh.ParentHashes),
		HashMerkleRoot:       bh.HashMerkleRoot.Clone(),
		AcceptedIDMerkleRoot: bh.AcceptedIDMerkleRoot.Clone(),
		UTXOCommitment:       bh.UTXOCommitment.Clone(),
		TimeInMilliseconds:   bh.TimeInMilliseconds,
		Bits:                 bh.Bits,
		Nonce:                bh.Nonce,
		DAAScore:             bh.DAAScore,
		BlueWork:             bh.BlueWork.Clone(),
		BlueScore:            bh.BlueScore,
		PruningPoint:         bh.PruningPoint.Clone(),
	}
}

// DirectParents returns the header's direct parent hashes
func (bh *DomainBlockHeader) DirectParents() []*DomainHash {
	return bh.ParentHashes
}

// DomainBlock represents a kaspa block
type DomainBlock struct {
	Header       *DomainBlockHeader
	Transactions []*DomainTransaction
}

// Clone returns a clone of DomainBlock
func (b *DomainBlock) Clone() *DomainBlock {
	if b == nil {
		return nil
	}
	transactionsClone := make([]*DomainTransaction, len(b.Transactions))
	for i, tx := range b.Transactions {
		transactionsClone[i] = tx.Clone()
	}
	return &DomainBlock{
		Header:       b.Header.Clone(),
		Transactions: transactionsClone,
	}
}

// DomainCoinbaseData contains coinbase data that's specific to a miner
type DomainCoinbaseData struct {
	ScriptPublicKey *ScriptPublicKey
	ExtraData       []byte
}

// Clone returns a clone of DomainCoinbaseData
func (cd *DomainCoinbaseData) Clone() *DomainCoinbaseData {
	if cd == nil {
		return nil
	}
	extraDataClone := make([]byte, len(cd.ExtraData))
	copy(extraDataClone, cd.ExtraData)
	return &DomainCoinbaseData{
		ScriptPublicKey: cd.ScriptPublicKey.Clone(),
		ExtraData:       extraDataClone,
	}
}

// BlockInsertionResult is the result of adding a block to consensus
type BlockInsertionResult struct {
	VirtualSelectedParentChainChanges *SelectedParentChainChanges
}

// SelectedParentChainChanges is the set of changes made to the selected parent
// chain after a block was added to the DAG
type SelectedParentChainChanges struct {
	Added   []*DomainHash
	Removed []*DomainHash
}
