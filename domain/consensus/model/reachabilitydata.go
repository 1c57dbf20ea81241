package model

import "github.com/kaspanet/kaspad/domain/consensus/model/externalapi"

// ReachabilityInterval represents an interval to be used within the
// reachability tree. It is used to order blocks by DAG-ancestry, so that
// queries such as "is A an ancestor of B" can be answered in O(1) amortised.
type ReachabilityInterval struct {
	Start uint64
	End   uint64
}

// NewReachabilityInterval creates a new ReachabilityInterval
func NewReachabilityInterval(start, end uint64) *ReachabilityInterval {
	return &ReachabilityInterval{Start: start, End: end}
}

// Clone returns a clone of ReachabilityInterval
func (ri *ReachabilityInterval) Clone() *ReachabilityInterval {
	if ri == nil {
		return nil
	}
	riClone := *ri
	return &riClone
}

// Size returns the size of this interval. Note that intervals are
// inclusive-exclusive ranges, as in [start, end)
func (ri *ReachabilityInterval) Size() uint64 {
	if ri.End < ri.Start {
		return 0
	}
	return ri.End - ri.Start
}

// Contains returns true if ri contains other
func (ri *ReachabilityInterval) Contains(other *ReachabilityInterval) bool {
	return ri.Start <= other.Start && other.End <= ri.End
}

// SplitFraction splits this interval into two parts such that their
// relative sizes are `fraction`:`1-fraction`
func (ri *ReachabilityInterval) SplitFraction(fraction float64) (*ReachabilityInterval, *ReachabilityInterval) {
	allocationSize := uint64(float64(ri.Size()) * fraction)
	left := NewReachabilityInterval(ri.Start, ri.Start+allocationSize)
	right := NewReachabilityInterval(ri.Start+allocationSize, ri.End)
	return left, right
}

// SplitExact splits this interval into multiple parts, each of the exact
// given sizes. The sum of sizes must equal this interval's size.
func (ri *ReachabilityInterval) SplitExact(sizes []uint64) []*ReachabilityInterval {
	children := make([]*ReachabilityInterval, len(sizes))
	start := ri.Start
	for i, size := range sizes {
		children[i] = NewReachabilityInterval(start, start+size)
		start += size
	}
	return children
}

// ReachabilityData holds the data required to properly query reachability
// between two blocks in the DAG
type ReachabilityData struct {
	Children          []*externalapi.DomainHash
	Parent            *externalapi.DomainHash
	Interval          *ReachabilityInterval
	FutureCoveringSet FutureCoveringTreeNodeSet
}

// FutureCoveringTreeNodeSet represents a set of blocks in the future of a
// reachability tree node, kept in insertion order (not sorted by interval)
type FutureCoveringTreeNodeSet []*externalapi.DomainHash

// NewReachabilityData creates a new instance of ReachabilityData
func NewReachabilityData(interval *ReachabilityInterval) *ReachabilityData {
	return &ReachabilityData{
		Children:          nil,
		Parent:            nil,
		Interval:          interval,
		FutureCoveringSet: nil,
	}
}

// Clone returns a clone of ReachabilityData
func (rd *ReachabilityData) Clone() *ReachabilityData {
	if rd == nil {
		return nil
	}
	return &ReachabilityData{
		Children:          externalapi.CloneHashes(rd.Children),
		Parent:            rd.Parent.Clone(),
		Interval:          rd.Interval.Clone(),
		FutureCoveringSet: externalapi.CloneHashes(rd.FutureCoveringSet),
	}
}
