// Package peer tracks the bookkeeping kaspad keeps per connected network
// peer: its advertised selected tip, and the callbacks flows hang off it to
// drive IBD.
package peer

import (
	"sync"

	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
)

// ID uniquely identifies a connected peer for the lifetime of its connection
type ID string

// Peer holds the per-connection state flows and FlowContext need to reason
// about a single connected node.
type Peer struct {
	id ID

	mtx             sync.RWMutex
	selectedTipHash *externalapi.DomainHash

	startIBDCallback                func()
	requestSelectedTipIfRequiredFunc func()
}

// New returns a new Peer with the given id
func New(id ID) *Peer {
	return &Peer{id: id}
}

// ID returns the peer's id
func (p *Peer) ID() ID {
	return p.id
}

// SelectedTipHash returns the peer's most recently advertised selected tip
func (p *Peer) SelectedTipHash() *externalapi.DomainHash {
	p.mtx.RLock()
	defer p.mtx.RUnlock()
	return p.selectedTipHash
}

// SetSelectedTipHash sets the peer's most recently advertised selected tip
func (p *Peer) SetSelectedTipHash(hash *externalapi.DomainHash) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.selectedTipHash = hash
}

// SetIBDCallbacks wires the callbacks the owning flow uses to actually start
// an IBD session and request a selected tip from this peer over the wire
func (p *Peer) SetIBDCallbacks(startIBD, requestSelectedTipIfRequired func()) {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	p.startIBDCallback = startIBD
	p.requestSelectedTipIfRequiredFunc = requestSelectedTipIfRequired
}

// StartIBD triggers this peer's IBD callback, if one has been wired
func (p *Peer) StartIBD() {
	p.mtx.RLock()
	cb := p.startIBDCallback
	p.mtx.RUnlock()
	if cb != nil {
		cb()
	}
}

// RequestSelectedTipIfRequired triggers this peer's selected-tip-request
// callback, if one has been wired
func (p *Peer) RequestSelectedTipIfRequired() {
	p.mtx.RLock()
	cb := p.requestSelectedTipIfRequiredFunc
	p.mtx.RUnlock()
	if cb != nil {
		cb()
	}
}

// String returns a human readable representation of the peer
func (p *Peer) String() string {
	return string(p.id)
}
