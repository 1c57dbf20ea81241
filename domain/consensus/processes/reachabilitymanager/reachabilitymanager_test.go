package reachabilitymanager

import (
	"testing"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// fakeReachabilityDataStore is a minimal in-memory model.ReachabilityDataStore used to exercise
// the reachability manager without a real database or StagingArea commit cycle
type fakeReachabilityDataStore struct {
	data map[externalapi.DomainHash]*model.ReachabilityData
}

func newFakeReachabilityDataStore() *fakeReachabilityDataStore {
	return &fakeReachabilityDataStore{data: make(map[externalapi.DomainHash]*model.ReachabilityData)}
}

func (f *fakeReachabilityDataStore) Name() string { return "fake-reachability-data" }

func (f *fakeReachabilityDataStore) StageReachabilityData(_ *model.StagingArea, blockHash *externalapi.DomainHash,
	reachabilityData *model.ReachabilityData) {
	f.data[*blockHash] = reachabilityData
}

func (f *fakeReachabilityDataStore) StageReachabilityReindexRoot(_ *model.StagingArea, _ *externalapi.DomainHash) {}

func (f *fakeReachabilityDataStore) IsStaged(_ *model.StagingArea) bool { return len(f.data) != 0 }

func (f *fakeReachabilityDataStore) ReachabilityData(_ model.DBReader, _ *model.StagingArea,
	blockHash *externalapi.DomainHash) (*model.ReachabilityData, error) {

	data, ok := f.data[*blockHash]
	if !ok {
		return nil, errors.Errorf("no reachability data for %s", blockHash)
	}
	return data, nil
}

func (f *fakeReachabilityDataStore) HasReachabilityData(_ model.DBReader, _ *model.StagingArea,
	blockHash *externalapi.DomainHash) (bool, error) {
	_, ok := f.data[*blockHash]
	return ok, nil
}

func (f *fakeReachabilityDataStore) ReachabilityReindexRoot(_ model.DBReader,
	_ *model.StagingArea) (*externalapi.DomainHash, error) {
	return nil, errors.New("not implemented")
}

func hashFromByte(b byte) *externalapi.DomainHash {
	hash := externalapi.DomainHash{}
	hash[0] = b
	return &hash
}

func TestReachabilityTreeAncestry(t *testing.T) {
	store := newFakeReachabilityDataStore()
	rm := New(nil, store)
	stagingArea := model.NewStagingArea()

	genesis := hashFromByte(1)
	err := rm.AddBlock(stagingArea, genesis, nil, nil)
	if err != nil {
		t.Fatalf("AddBlock genesis: %+v", err)
	}

	blockA := hashFromByte(2)
	err = rm.AddBlock(stagingArea, blockA, genesis, []*externalapi.DomainHash{genesis})
	if err != nil {
		t.Fatalf("AddBlock A: %+v", err)
	}

	blockB := hashFromByte(3)
	err = rm.AddBlock(stagingArea, blockB, blockA, []*externalapi.DomainHash{blockA})
	if err != nil {
		t.Fatalf("AddBlock B: %+v", err)
	}

	isAncestor, err := rm.IsDAGAncestorOf(stagingArea, genesis, blockB)
	if err != nil {
		t.Fatalf("IsDAGAncestorOf: %+v", err)
	}
	if !isAncestor {
		t.Fatalf("expected genesis to be an ancestor of blockB")
	}

	isAncestor, err = rm.IsDAGAncestorOf(stagingArea, blockB, genesis)
	if err != nil {
		t.Fatalf("IsDAGAncestorOf: %+v", err)
	}
	if isAncestor {
		t.Fatalf("did not expect blockB to be an ancestor of genesis")
	}
}

func TestReachabilityFutureCoveringSetForMergeSetParent(t *testing.T) {
	store := newFakeReachabilityDataStore()
	rm := New(nil, store)
	stagingArea := model.NewStagingArea()

	genesis := hashFromByte(1)
	if err := rm.AddBlock(stagingArea, genesis, nil, nil); err != nil {
		t.Fatalf("AddBlock genesis: %+v", err)
	}

	blockA := hashFromByte(2)
	if err := rm.AddBlock(stagingArea, blockA, genesis, []*externalapi.DomainHash{genesis}); err != nil {
		t.Fatalf("AddBlock A: %+v", err)
	}

	blockB := hashFromByte(3)
	if err := rm.AddBlock(stagingArea, blockB, genesis, []*externalapi.DomainHash{genesis}); err != nil {
		t.Fatalf("AddBlock B: %+v", err)
	}

	// blockC's selected parent is A, but it also merges in B - a non-tree DAG edge
	blockC := hashFromByte(4)
	if err := rm.AddBlock(stagingArea, blockC, blockA, []*externalapi.DomainHash{blockA, blockB}); err != nil {
		t.Fatalf("AddBlock C: %+v", err)
	}

	isTreeAncestor, err := rm.IsReachabilityTreeAncestorOf(stagingArea, blockB, blockC)
	if err != nil {
		t.Fatalf("IsReachabilityTreeAncestorOf: %+v", err)
	}
	if isTreeAncestor {
		t.Fatalf("blockB should not be a tree ancestor of blockC")
	}

	isDAGAncestor, err := rm.IsDAGAncestorOf(stagingArea, blockB, blockC)
	if err != nil {
		t.Fatalf("IsDAGAncestorOf: %+v", err)
	}
	if !isDAGAncestor {
		t.Fatalf("expected blockB to be a DAG ancestor of blockC via the merge-set edge")
	}
}
