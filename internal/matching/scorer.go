// Package matching scores the fit between a student's trait vector and a
// listing's ideal profile and orders feed candidates by that fit.
package matching

import (
	"math"
	"sort"

	"lehrmatch/internal/domain"
)

// Bucket labels a score for display. Boundaries are a presentation concern
// and never influence ranking.
type Bucket string

const (
	BucketHigh   Bucket = "high"
	BucketMedium Bucket = "medium"
	BucketLow    Bucket = "low"
)

// sharedDimensionThreshold marks a dimension as shared when both sides reach it.
const sharedDimensionThreshold = 0.4

// Score is a 0-100 compatibility value with its per-dimension breakdown.
type Score struct {
	Value     int               `json:"value"`
	Breakdown []DimensionGap    `json:"breakdown"`
	Shared    []SharedDimension `json:"shared_dimensions"`
}

// DimensionGap is the absolute difference on one present dimension.
type DimensionGap struct {
	Dimension domain.Dimension `json:"dimension"`
	Student   float64          `json:"student"`
	Ideal     float64          `json:"ideal"`
	Gap       float64          `json:"gap"`
}

// SharedDimension is a dimension where both sides are strong, used for the
// "why this fits you" detail view.
type SharedDimension struct {
	Dimension domain.Dimension `json:"dimension"`
	Student   float64          `json:"student"`
	Ideal     float64          `json:"ideal"`
}

// Bucket returns the display bucket for the score.
func (s Score) Bucket() Bucket {
	switch {
	case s.Value >= 70:
		return BucketHigh
	case s.Value >= 40:
		return BucketMedium
	default:
		return BucketLow
	}
}

// Compatibility computes the fit between a student's RIASEC profile and a
// listing's ideal vector. The second return value is false when the ideal
// vector has no present dimensions: a missing signal, not a score of 0 or
// 100. Out-of-range ideal values are clamped on read, never rejected.
func Compatibility(student domain.HollandCodes, ideal domain.IdealVector) (Score, bool) {
	var (
		breakdown []DimensionGap
		gapSum    float64
	)
	for _, d := range domain.RiasecOrder {
		target, present := ideal.Get(d)
		if !present {
			continue
		}
		own := student.Get(d)
		gap := math.Abs(own - target)
		gapSum += gap
		breakdown = append(breakdown, DimensionGap{Dimension: d, Student: own, Ideal: target, Gap: gap})
	}
	if len(breakdown) == 0 {
		return Score{}, false
	}

	meanGap := gapSum / float64(len(breakdown))
	value := int(math.Round((1 - meanGap) * 100))
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Gap < breakdown[j].Gap
	})

	return Score{
		Value:     value,
		Breakdown: breakdown,
		Shared:    sharedDimensions(student, ideal),
	}, true
}

// sharedDimensions returns the dimensions where both student and ideal reach
// the threshold, strongest combined first.
func sharedDimensions(student domain.HollandCodes, ideal domain.IdealVector) []SharedDimension {
	var shared []SharedDimension
	for _, d := range domain.RiasecOrder {
		target, present := ideal.Get(d)
		if !present {
			continue
		}
		own := student.Get(d)
		if own >= sharedDimensionThreshold && target >= sharedDimensionThreshold {
			shared = append(shared, SharedDimension{Dimension: d, Student: own, Ideal: target})
		}
	}
	sort.SliceStable(shared, func(i, j int) bool {
		return shared[i].Student+shared[i].Ideal > shared[j].Student+shared[j].Ideal
	})
	return shared
}

// RankedListing pairs a listing with its score for feed output. Score is nil
// when the listing carries no compatibility signal.
type RankedListing struct {
	Listing domain.Listing `json:"listing"`
	Score   *Score         `json:"score,omitempty"`
}

// Rank scores every candidate against the student profile and orders the
// result by score descending. Candidates without a signal sort after all
// scored ones and keep their relative insertion order.
func Rank(student domain.HollandCodes, candidates []domain.Listing) []RankedListing {
	ranked := make([]RankedListing, 0, len(candidates))
	for _, listing := range candidates {
		score, ok := Compatibility(student, listing.Ideal)
		entry := RankedListing{Listing: listing}
		if ok {
			s := score
			entry.Score = &s
		}
		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Score, ranked[j].Score
		switch {
		case a == nil && b == nil:
			return false
		case b == nil:
			return true
		case a == nil:
			return false
		default:
			return a.Value > b.Value
		}
	})
	return ranked
}
