package model

import "github.com/kaspanet/kaspad/domain/consensus/model/externalapi"

// Store is the common subset of behavior shared by every consensus
// datastructure store. Since stores keep their pending writes inside a
// StagingArea-owned shard, there's nothing to discard at the store level
// itself; the marker exists so generic store-management code has a
// common type to range over.
type Store interface {
	Name() string
}

// SelectedParentIterator is an iterator over the selected parent chain,
// walking from a given high hash down to the genesis block
type SelectedParentIterator interface {
	Next() bool
	Get() (*externalapi.DomainHash, *BlockGHOSTDAGData, error)
}

// ReadOnlyUTXOSetIterator iterates over a read-only view of a UTXO set
type ReadOnlyUTXOSetIterator interface {
	Next() bool
	Get() (outpoint *externalapi.DomainOutpoint, utxoEntry *externalapi.UTXOEntry, err error)
}

