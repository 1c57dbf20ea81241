package flowcontext

import (
	"sync"

	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
)

// SharedRequestedBlocks coordinates block requests across peers so that two
// peers relaying the same inv don't both end up being asked for the block.
type SharedRequestedBlocks struct {
	mtx   sync.Mutex
	inner map[externalapi.DomainHash]struct{}
}

// NewSharedRequestedBlocks returns a new, empty SharedRequestedBlocks
func NewSharedRequestedBlocks() *SharedRequestedBlocks {
	return &SharedRequestedBlocks{inner: make(map[externalapi.DomainHash]struct{})}
}

// AddIfNotExists marks hash as requested, returning true if it was already requested
func (s *SharedRequestedBlocks) AddIfNotExists(hash *externalapi.DomainHash) (exists bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, ok := s.inner[*hash]; ok {
		return true
	}
	s.inner[*hash] = struct{}{}
	return false
}

// Remove clears hash's requested marker
func (s *SharedRequestedBlocks) Remove(hash *externalapi.DomainHash) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.inner, *hash)
}

// SharedRequestedTransactions coordinates transaction requests across peers,
// the same way SharedRequestedBlocks does for blocks.
type SharedRequestedTransactions struct {
	mtx   sync.Mutex
	inner map[externalapi.DomainTransactionID]struct{}
}

// NewSharedRequestedTransactions returns a new, empty SharedRequestedTransactions
func NewSharedRequestedTransactions() *SharedRequestedTransactions {
	return &SharedRequestedTransactions{inner: make(map[externalapi.DomainTransactionID]struct{})}
}

// AddIfNotExists marks id as requested, returning true if it was already requested
func (s *SharedRequestedTransactions) AddIfNotExists(id *externalapi.DomainTransactionID) (exists bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if _, ok := s.inner[*id]; ok {
		return true
	}
	s.inner[*id] = struct{}{}
	return false
}

// Remove clears id's requested marker
func (s *SharedRequestedTransactions) Remove(id *externalapi.DomainTransactionID) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.inner, *id)
}
