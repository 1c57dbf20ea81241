// Package hashset implements a small set of block hashes, used by DAG
// traversals to track visited blocks.
package hashset

import "github.com/kaspanet/kaspad/domain/consensus/model/externalapi"

// HashSet is a set of block hashes
type HashSet struct {
	hashes map[externalapi.DomainHash]struct{}
}

// New creates a new, empty HashSet
func New() *HashSet {
	return &HashSet{hashes: make(map[externalapi.DomainHash]struct{})}
}

// Add adds hash to the set
func (hs *HashSet) Add(hash *externalapi.DomainHash) {
	hs.hashes[*hash] = struct{}{}
}

// Remove removes hash from the set
func (hs *HashSet) Remove(hash *externalapi.DomainHash) {
	delete(hs.hashes, *hash)
}

// Contains returns whether hash is in the set
func (hs *HashSet) Contains(hash *externalapi.DomainHash) bool {
	_, ok := hs.hashes[*hash]
	return ok
}

// Length returns the number of hashes in the set
func (hs *HashSet) Length() int {
	return len(hs.hashes)
}
