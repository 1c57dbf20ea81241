package model

import "github.com/kaspanet/kaspad/domain/consensus/model/externalapi"

// UTXOCollection represents a set of UTXO entries, keyed by outpoint
type UTXOCollection map[externalapi.DomainOutpoint]*externalapi.UTXOEntry

// UTXODiff represents a diff between two UTXO sets: entries that should be
// added to the base set, and entries that should be removed from it
type UTXODiff struct {
	ToAdd    UTXOCollection
	ToRemove UTXOCollection
}

// NewUTXODiff creates an empty UTXODiff
func NewUTXODiff() *UTXODiff {
	return &UTXODiff{
		ToAdd:    make(UTXOCollection),
		ToRemove: make(UTXOCollection),
	}
}

// Clone returns a clone of UTXODiff
func (d *UTXODiff) Clone() *UTXODiff {
	if d == nil {
		return nil
	}
	clone := &UTXODiff{
		ToAdd:    make(UTXOCollection, len(d.ToAdd)),
		ToRemove: make(UTXOCollection, len(d.ToRemove)),
	}
	for outpoint, entry := range d.ToAdd {
		clone.ToAdd[outpoint] = entry
	}
	for outpoint, entry := range d.ToRemove {
		clone.ToRemove[outpoint] = entry
	}
	return clone
}

// AddEntry marks outpoint/entry as added by this diff
func (d *UTXODiff) AddEntry(outpoint externalapi.DomainOutpoint, entry *externalapi.UTXOEntry) {
	if _, ok := d.ToRemove[outpoint]; ok {
		delete(d.ToRemove, outpoint)
		return
	}
	d.ToAdd[outpoint] = entry
}

// RemoveEntry marks outpoint/entry as removed by this diff
func (d *UTXODiff) RemoveEntry(outpoint externalapi.DomainOutpoint, entry *externalapi.UTXOEntry) {
	if _, ok := d.ToAdd[outpoint]; ok {
		delete(d.ToAdd, outpoint)
		return
	}
	d.ToRemove[outpoint] = entry
}

// WithDiff applies other on top of this diff and returns the result as a
// new diff
func (d *UTXODiff) WithDiff(other *UTXODiff) (*UTXODiff, error) {
	result := d.Clone()
	for outpoint, entry := range other.ToAdd {
		result.AddEntry(outpoint, entry)
	}
	for outpoint, entry := range other.ToRemove {
		result.RemoveEntry(outpoint, entry)
	}
	return result, nil
}

// ConsensusStateChanges describes a change to be applied to the current
// consensus state (the virtual's UTXO set and tips)
type ConsensusStateChanges struct {
	UTXODiff          *UTXODiff
	TipsToAdd         []*externalapi.DomainHash
	TipsToRemove      []*externalapi.DomainHash
	VirtualSelectedParentChainChanges *externalapi.SelectedParentChainChanges
}
