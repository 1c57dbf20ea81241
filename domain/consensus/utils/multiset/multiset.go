// Package multiset wraps github.com/kaspanet/go-secp256k1's elliptic-curve
// multiset hash into the model.Multiset interface used by the UTXO
// commitment machinery.
package multiset

import (
	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
)

type multiset struct {
	ms *secp256k1.MultiSet
}

// New creates a new, empty Multiset
func New() model.Multiset {
	return &multiset{ms: secp256k1.NewMultiset()}
}

// FromBytes reconstructs a Multiset from its serialized point representation
func FromBytes(data []byte) (model.Multiset, error) {
	ms, err := secp256k1.DeserializeMultiset(data)
	if err != nil {
		return nil, err
	}
	return &multiset{ms: ms}, nil
}

func (m *multiset) Add(data []byte) {
	m.ms.Add(data)
}

func (m *multiset) Remove(data []byte) {
	m.ms.Remove(data)
}

func (m *multiset) Hash() *externalapi.DomainHash {
	finalizedHash := m.ms.Finalize()
	hash := externalapi.DomainHash{}
	copy(hash[:], finalizedHash[:])
	return &hash
}

func (m *multiset) Clone() model.Multiset {
	return &multiset{ms: m.ms.Clone()}
}

func (m *multiset) Serialize() []byte {
	return m.ms.Serialize()[:]
}
