package plot

import "testing"

func TestStepRangeStartsAtFirstStep(t *testing.T) {
	r := stepRange([]float64{0, 4, 10})
	if r.Min != 0 {
		t.Fatalf("min = %v, want 0", r.Min)
	}
	if r.Max <= 10 {
		t.Fatalf("max = %v, want headroom past 10", r.Max)
	}
}

func TestStepRangeSingleStep(t *testing.T) {
	r := stepRange([]float64{3, 3})
	if r.Min != 3 || r.Max <= 3 {
		t.Fatalf("unexpected range [%v, %v]", r.Min, r.Max)
	}
}

func TestPaddedRangeStillPadsBelow(t *testing.T) {
	r := paddedRange([]float64{1, 2})
	if r.Min >= 1 || r.Max <= 2 {
		t.Fatalf("unexpected range [%v, %v]", r.Min, r.Max)
	}
}
