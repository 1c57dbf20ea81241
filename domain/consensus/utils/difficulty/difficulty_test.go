package difficulty

import (
	"math/big"
	"testing"
)

func TestCompactToBigAndBack(t *testing.T) {
	tests := []struct {
		compact uint32
		want    int64
	}{
		{0x01003456, 0},
		{0x01123456, 0x12},
		{0x02008000, 0x80},
		{0x05009234, 0x92340000},
	}

	for _, test := range tests {
		got := CompactToBig(test.compact)
		if got.Cmp(big.NewInt(test.want)) != 0 {
			t.Errorf("CompactToBig(%#08x) = %v, want %v", test.compact, got, test.want)
		}
	}
}

func TestBigToCompactRoundTrip(t *testing.T) {
	values := []int64{0, 0x12, 0x80, 0x92340000}
	for _, value := range values {
		n := big.NewInt(value)
		compact := BigToCompact(n)
		roundTripped := CompactToBig(compact)
		if roundTripped.Cmp(n) != 0 {
			t.Errorf("round trip of %v produced %v", n, roundTripped)
		}
	}
}

func TestCalcWorkMonotonicallyDecreasesWithTarget(t *testing.T) {
	lowDifficultyBits := BigToCompact(big.NewInt(1 << 30))
	highDifficultyBits := BigToCompact(big.NewInt(1 << 10))

	lowDifficultyWork := CalcWork(lowDifficultyBits)
	highDifficultyWork := CalcWork(highDifficultyBits)

	if lowDifficultyWork.Cmp(highDifficultyWork) >= 0 {
		t.Errorf("expected a smaller target to produce more work: %v vs %v", lowDifficultyWork, highDifficultyWork)
	}
}

func TestCalcWorkZeroTarget(t *testing.T) {
	work := CalcWork(0)
	if work.Sign() != 0 {
		t.Errorf("expected zero work for a zero target, got %v", work)
	}
}
