package externalapi

// TransactionAcceptanceData holds the acceptance data of a single transaction
// that a block merged into the virtual selected chain
type TransactionAcceptanceData struct {
	Transaction                 *DomainTransaction
	Fee                         uint64
	IsAccepted                  bool
	TransactionInputUTXOEntries []*UTXOEntry
}

// BlockAcceptanceData holds the acceptance data of all transactions
// a single block merged into the virtual selected chain
type BlockAcceptanceData struct {
	BlockHash                  *DomainHash
	TransactionAcceptanceData  []*TransactionAcceptanceData
}

// AcceptanceData holds the acceptance data of an entire mergeset
type AcceptanceData []*BlockAcceptanceData

// Clone returns a clone of AcceptanceData
func (ad AcceptanceData) Clone() AcceptanceData {
	clone := make(AcceptanceData, len(ad))
	for i, blockAcceptanceData := range ad {
		transactionAcceptanceDataClone := make([]*TransactionAcceptanceData, len(blockAcceptanceData.TransactionAcceptanceData))
		for j, tad := range blockAcceptanceData.TransactionAcceptanceData {
			utxoEntriesClone := make([]*UTXOEntry, len(tad.TransactionInputUTXOEntries))
			for k, entry := range tad.TransactionInputUTXOEntries {
				utxoEntriesClone[k] = entry.Clone()
			}
			transactionAcceptanceDataClone[j] = &TransactionAcceptanceData{
				Transaction:                 tad.Transaction.Clone(),
				Fee:                         tad.Fee,
				IsAccepted:                  tad.IsAccepted,
				TransactionInputUTXOEntries: utxoEntriesClone,
			}
		}
		clone[i] = &BlockAcceptanceData{
			BlockHash:                 blockAcceptanceData.BlockHash.Clone(),
			TransactionAcceptanceData: transactionAcceptanceDataClone,
		}
	}
	return clone
}
