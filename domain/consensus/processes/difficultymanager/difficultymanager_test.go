package difficultymanager

import (
	"testing"

	"github.com/kaspanet/kaspad/domain/consensus/model"
	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/difficulty"
	"github.com/pkg/errors"
)

type fakeGHOSTDAGDataStore struct {
	data map[externalapi.DomainHash]*model.BlockGHOSTDAGData
}

func newFakeGHOSTDAGDataStore() *fakeGHOSTDAGDataStore {
	return &fakeGHOSTDAGDataStore{data: make(map[externalapi.DomainHash]*model.BlockGHOSTDAGData)}
}

func (f *fakeGHOSTDAGDataStore) Name() string { return "fake-ghostdag-data" }

func (f *fakeGHOSTDAGDataStore) Stage(_ *model.StagingArea, blockHash *externalapi.DomainHash, data *model.BlockGHOSTDAGData) {
	f.data[*blockHash] = data
}

func (f *fakeGHOSTDAGDataStore) IsStaged(_ *model.StagingArea) bool { return len(f.data) != 0 }

func (f *fakeGHOSTDAGDataStore) Get(_ model.DBReader, _ *model.StagingArea,
	blockHash *externalapi.DomainHash) (*model.BlockGHOSTDAGData, error) {

	data, ok := f.data[*blockHash]
	if !ok {
		return nil, errors.Errorf("no GHOSTDAG data for %s", blockHash)
	}
	return data, nil
}

type fakeBlockHeaderStore struct {
	headers map[externalapi.DomainHash]*externalapi.DomainBlockHeader
}

func newFakeBlockHeaderStore() *fakeBlockHeaderStore {
	return &fakeBlockHeaderStore{headers: make(map[externalapi.DomainHash]*externalapi.DomainBlockHeader)}
}

func (f *fakeBlockHeaderStore) Name() string { return "fake-block-header" }

func (f *fakeBlockHeaderStore) Stage(_ *model.StagingArea, blockHash *externalapi.DomainHash,
	header *externalapi.DomainBlockHeader) {
	f.headers[*blockHash] = header
}

func (f *fakeBlockHeaderStore) BlockHeader(_ model.DBReader, _ *model.StagingArea,
	blockHash *externalapi.DomainHash) (*externalapi.DomainBlockHeader, error) {

	header, ok := f.headers[*blockHash]
	if !ok {
		return nil, errors.Errorf("no header for %s", blockHash)
	}
	return header, nil
}

func (f *fakeBlockHeaderStore) HasBlockHeader(_ model.DBReader, _ *model.StagingArea,
	blockHash *externalapi.DomainHash) (bool, error) {
	_, ok := f.headers[*blockHash]
	return ok, nil
}

func (f *fakeBlockHeaderStore) BlockHeaders(_ model.DBReader, _ *model.StagingArea,
	blockHashes []*externalapi.DomainHash) ([]*externalapi.DomainBlockHeader, error) {

	headers := make([]*externalapi.DomainBlockHeader, len(blockHashes))
	for i, hash := range blockHashes {
		header, err := f.BlockHeader(nil, nil, hash)
		if err != nil {
			return nil, err
		}
		headers[i] = header
	}
	return headers, nil
}

func (f *fakeBlockHeaderStore) Delete(_ *model.StagingArea, blockHash *externalapi.DomainHash) {
	delete(f.headers, *blockHash)
}

func (f *fakeBlockHeaderStore) Count(_ *model.StagingArea) uint64 { return uint64(len(f.headers)) }

func hashFromByte(b byte) *externalapi.DomainHash {
	hash := externalapi.DomainHash{}
	hash[0] = b
	return &hash
}

// chainBuilder builds a straight selected-parent chain (no merge-set blues beyond each block
// itself), which is enough to exercise blockWindow's chain walk and the short-window path
type chainBuilder struct {
	ghostdagStore *fakeGHOSTDAGDataStore
	headerStore   *fakeBlockHeaderStore
}

func (cb *chainBuilder) addBlock(hash, selectedParent *externalapi.DomainHash, bits uint32, timestamp int64) {
	var blueScore uint64
	if selectedParent != nil {
		parentData, err := cb.ghostdagStore.Get(nil, nil, selectedParent)
		if err == nil {
			blueScore = parentData.BlueScore + 1
		}
	}
	cb.ghostdagStore.Stage(nil, hash, model.NewBlockGHOSTDAGData(
		blueScore, externalapi.NewBlueWorkType(blueScore), selectedParent,
		[]*externalapi.DomainHash{hash}, nil, make(map[externalapi.DomainHash]model.KType)))
	cb.headerStore.Stage(nil, hash, &externalapi.DomainBlockHeader{
		Bits:               bits,
		TimeInMilliseconds: timestamp,
		BlueWork:           externalapi.NewBlueWorkType(blueScore),
	})
}

func TestRequiredDifficultyStaysConstantBeforeFullWindow(t *testing.T) {
	ghostdagStore := newFakeGHOSTDAGDataStore()
	headerStore := newFakeBlockHeaderStore()
	cb := &chainBuilder{ghostdagStore: ghostdagStore, headerStore: headerStore}

	genesisBits := uint32(0x207fffff)
	genesis := hashFromByte(1)
	cb.addBlock(genesis, nil, genesisBits, 0)

	child := hashFromByte(2)
	cb.addBlock(child, genesis, genesisBits, 1000)

	dm := New(nil, ghostdagStore, headerStore, genesis, genesisBits,
		difficulty.CompactToBig(genesisBits), 10, 1000, false).(*difficultyManager)

	bits, err := dm.RequiredDifficulty(model.NewStagingArea(), child)
	if err != nil {
		t.Fatalf("RequiredDifficulty: %+v", err)
	}
	if bits != genesisBits {
		t.Fatalf("expected genesis bits %x while the window isn't full, got %x", genesisBits, bits)
	}
}

func TestRequiredDifficultyGenesisReturnsGenesisBits(t *testing.T) {
	ghostdagStore := newFakeGHOSTDAGDataStore()
	headerStore := newFakeBlockHeaderStore()
	cb := &chainBuilder{ghostdagStore: ghostdagStore, headerStore: headerStore}

	genesisBits := uint32(0x207fffff)
	genesis := hashFromByte(1)
	cb.addBlock(genesis, nil, genesisBits, 0)

	dm := New(nil, ghostdagStore, headerStore, genesis, genesisBits,
		difficulty.CompactToBig(genesisBits), 10, 1000, false)

	bits, err := dm.RequiredDifficulty(model.NewStagingArea(), genesis)
	if err != nil {
		t.Fatalf("RequiredDifficulty: %+v", err)
	}
	if bits != genesisBits {
		t.Fatalf("expected genesis bits %x, got %x", genesisBits, bits)
	}
}

func TestRequiredDifficultyDisabledReturnsGenesisBits(t *testing.T) {
	ghostdagStore := newFakeGHOSTDAGDataStore()
	headerStore := newFakeBlockHeaderStore()
	cb := &chainBuilder{ghostdagStore: ghostdagStore, headerStore: headerStore}

	genesisBits := uint32(0x207fffff)
	genesis := hashFromByte(1)
	cb.addBlock(genesis, nil, genesisBits, 0)
	child := hashFromByte(2)
	cb.addBlock(child, genesis, 0x1d00ffff, 1000)

	dm := New(nil, ghostdagStore, headerStore, genesis, genesisBits,
		difficulty.CompactToBig(genesisBits), 1, 1000, true)

	bits, err := dm.RequiredDifficulty(model.NewStagingArea(), child)
	if err != nil {
		t.Fatalf("RequiredDifficulty: %+v", err)
	}
	if bits != genesisBits {
		t.Fatalf("expected genesis bits %x with difficulty adjustment disabled, got %x", genesisBits, bits)
	}
}

func TestCalcAverageTarget(t *testing.T) {
	headers := []*externalapi.DomainBlockHeader{
		{Bits: 0x1d00ffff},
		{Bits: 0x1d00ffff},
	}
	average := calcAverageTarget(headers)
	expected := difficulty.CompactToBig(0x1d00ffff)
	if average.Cmp(expected) != 0 {
		t.Fatalf("expected average target %s, got %s", expected, average)
	}
}
