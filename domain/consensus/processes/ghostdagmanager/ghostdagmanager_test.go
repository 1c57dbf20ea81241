package ghostdagmanager

import (
	"testing"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
)

func hashFromByte(b byte) *externalapi.DomainHash {
	hash := externalapi.DomainHash{}
	hash[0] = b
	return &hash
}

func TestLessPrefersHigherBlueWork(t *testing.T) {
	gm := &ghostdagManager{}

	hashA := hashFromByte(1)
	hashB := hashFromByte(2)
	dataA := &model.BlockGHOSTDAGData{BlueWork: externalapi.NewBlueWorkType(10)}
	dataB := &model.BlockGHOSTDAGData{BlueWork: externalapi.NewBlueWorkType(20)}

	if !gm.Less(hashA, dataA, hashB, dataB) {
		t.Fatalf("expected the lower blue work block to be Less")
	}
	if gm.Less(hashB, dataB, hashA, dataA) {
		t.Fatalf("expected the higher blue work block to not be Less")
	}
}

func TestLessTieBreaksOnHash(t *testing.T) {
	gm := &ghostdagManager{}

	hashLow := hashFromByte(1)
	hashHigh := hashFromByte(2)
	equalWork := externalapi.NewBlueWorkType(10)
	dataLow := &model.BlockGHOSTDAGData{BlueWork: equalWork}
	dataHigh := &model.BlockGHOSTDAGData{BlueWork: equalWork.Clone()}

	if !gm.Less(hashLow, dataLow, hashHigh, dataHigh) {
		t.Fatalf("expected the smaller hash to be Less when blue work ties")
	}
	if gm.Less(hashHigh, dataHigh, hashLow, dataLow) {
		t.Fatalf("expected the bigger hash to not be Less when blue work ties")
	}
}

func TestCandidatesAfter(t *testing.T) {
	a, b, c := hashFromByte(1), hashFromByte(2), hashFromByte(3)
	candidates := []*externalapi.DomainHash{a, b, c}

	after := candidatesAfter(candidates, b)
	if len(after) != 1 || !after[0].Equal(c) {
		t.Fatalf("expected only %s after %s, got %v", c, b, after)
	}

	afterLast := candidatesAfter(candidates, c)
	if len(afterLast) != 0 {
		t.Fatalf("expected nothing after the last candidate, got %v", afterLast)
	}
}
