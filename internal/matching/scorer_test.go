package matching

import (
	"testing"

	"lehrmatch/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestCompatibility_NoPresentDimensionsMeansNoSignal(t *testing.T) {
	student := domain.HollandCodes{Realistic: 1.0}

	if _, ok := Compatibility(student, domain.IdealVector{}); ok {
		t.Fatalf("expected no signal for empty ideal vector")
	}
}

func TestCompatibility_IdenticalVectorsScoreHundred(t *testing.T) {
	student := domain.HollandCodes{Realistic: 1.0}
	ideal := domain.IdealVector{Realistic: ptr(1.0)}

	score, ok := Compatibility(student, ideal)
	if !ok {
		t.Fatalf("expected a score")
	}
	if score.Value != 100 {
		t.Fatalf("expected 100, got %d", score.Value)
	}
}

func TestCompatibility_MaximumGapScoresZero(t *testing.T) {
	student := domain.HollandCodes{Realistic: 0.0, Social: 1.0}
	ideal := domain.IdealVector{Realistic: ptr(1.0), Social: ptr(0.0)}

	score, ok := Compatibility(student, ideal)
	if !ok {
		t.Fatalf("expected a score")
	}
	if score.Value != 0 {
		t.Fatalf("expected 0, got %d", score.Value)
	}
}

func TestCompatibility_MeanGapExample(t *testing.T) {
	// gap 0.7 on the only present dimension: score 30.
	student := domain.HollandCodes{Realistic: 0.2}
	ideal := domain.IdealVector{Realistic: ptr(0.9)}

	score, ok := Compatibility(student, ideal)
	if !ok {
		t.Fatalf("expected a score")
	}
	if score.Value != 30 {
		t.Fatalf("expected 30, got %d", score.Value)
	}
}

func TestCompatibility_SymmetricInDifference(t *testing.T) {
	a := domain.HollandCodes{Realistic: 0.8, Investigative: 0.2}
	b := domain.IdealVector{Realistic: ptr(0.3), Investigative: ptr(0.9)}

	forward, ok := Compatibility(a, b)
	if !ok {
		t.Fatalf("expected a score")
	}

	// Swap sides per dimension.
	swappedStudent := domain.HollandCodes{Realistic: 0.3, Investigative: 0.9}
	swappedIdeal := domain.IdealVector{Realistic: ptr(0.8), Investigative: ptr(0.2)}
	backward, ok := Compatibility(swappedStudent, swappedIdeal)
	if !ok {
		t.Fatalf("expected a score")
	}

	if forward.Value != backward.Value {
		t.Fatalf("expected symmetric score, got %d vs %d", forward.Value, backward.Value)
	}
}

func TestCompatibility_AbsentDimensionsExcludedFromMean(t *testing.T) {
	// Only realistic is present; a large mismatch elsewhere must not count.
	student := domain.HollandCodes{Realistic: 1.0, Social: 0.0}
	ideal := domain.IdealVector{Realistic: ptr(1.0)}

	score, ok := Compatibility(student, ideal)
	if !ok {
		t.Fatalf("expected a score")
	}
	if score.Value != 100 {
		t.Fatalf("expected 100, got %d", score.Value)
	}
	if len(score.Breakdown) != 1 {
		t.Fatalf("expected 1 breakdown entry, got %d", len(score.Breakdown))
	}
}

func TestCompatibility_OutOfRangeIdealClamped(t *testing.T) {
	student := domain.HollandCodes{Realistic: 1.0}
	ideal := domain.IdealVector{Realistic: ptr(3.5)}

	score, ok := Compatibility(student, ideal)
	if !ok {
		t.Fatalf("expected a score, clamping must not reject")
	}
	if score.Value != 100 {
		t.Fatalf("expected clamp to 1.0 and score 100, got %d", score.Value)
	}

	negative := domain.IdealVector{Realistic: ptr(-2.0)}
	score, ok = Compatibility(student, negative)
	if !ok {
		t.Fatalf("expected a score")
	}
	if score.Value != 0 {
		t.Fatalf("expected clamp to 0.0 and score 0, got %d", score.Value)
	}
}

func TestCompatibility_BucketsDoNotAffectValue(t *testing.T) {
	cases := []struct {
		value int
		want  Bucket
	}{
		{100, BucketHigh},
		{70, BucketHigh},
		{69, BucketMedium},
		{40, BucketMedium},
		{39, BucketLow},
		{0, BucketLow},
	}
	for _, tc := range cases {
		if got := (Score{Value: tc.value}).Bucket(); got != tc.want {
			t.Fatalf("bucket for %d: expected %s, got %s", tc.value, tc.want, got)
		}
	}
}

func TestSharedDimensions_ThresholdAndOrder(t *testing.T) {
	student := domain.HollandCodes{Realistic: 0.9, Investigative: 0.5, Artistic: 0.39}
	ideal := domain.IdealVector{
		Realistic:     ptr(0.8),
		Investigative: ptr(0.9),
		Artistic:      ptr(1.0), // student below threshold: excluded
		Social:        ptr(0.2), // ideal below threshold: excluded
	}

	score, ok := Compatibility(student, ideal)
	if !ok {
		t.Fatalf("expected a score")
	}
	if len(score.Shared) != 2 {
		t.Fatalf("expected 2 shared dimensions, got %d", len(score.Shared))
	}
	// realistic: 1.7 combined, investigative: 1.4 combined.
	if score.Shared[0].Dimension != domain.DimRealistic || score.Shared[1].Dimension != domain.DimInvestigative {
		t.Fatalf("unexpected shared order: %+v", score.Shared)
	}
}

func TestRank_OrdersByScoreWithNoSignalTail(t *testing.T) {
	student := domain.HollandCodes{Realistic: 1.0}

	listings := []domain.Listing{
		{ID: "unscored-1"},
		{ID: "low", Ideal: domain.IdealVector{Realistic: ptr(0.1)}},
		{ID: "unscored-2"},
		{ID: "high", Ideal: domain.IdealVector{Realistic: ptr(1.0)}},
		{ID: "mid", Ideal: domain.IdealVector{Realistic: ptr(0.5)}},
	}

	ranked := Rank(student, listings)
	gotOrder := make([]string, 0, len(ranked))
	for _, r := range ranked {
		gotOrder = append(gotOrder, r.Listing.ID)
	}

	want := []string{"high", "mid", "low", "unscored-1", "unscored-2"}
	for i, id := range want {
		if gotOrder[i] != id {
			t.Fatalf("expected order %v, got %v", want, gotOrder)
		}
	}
	if ranked[3].Score != nil || ranked[4].Score != nil {
		t.Fatalf("expected unscored listings to carry no score")
	}
}
