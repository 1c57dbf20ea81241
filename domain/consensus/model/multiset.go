package model

import "github.com/kaspanet/kaspad/domain/consensus/model/externalapi"

// Multiset is an interface for a representation of an ECMH (elliptic-curve
// multiset hash) over a UTXO set, allowing incremental Add/Remove of UTXO
// entries and yielding a single commitment hash via Hash
type Multiset interface {
	Add(data []byte)
	Remove(data []byte)
	Hash() *externalapi.DomainHash
	Clone() Multiset
	Serialize() []byte
}
