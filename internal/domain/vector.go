package domain

import (
	"sort"
	"time"
)

// Dimension identifies one axis of the personality model: the six RIASEC
// interest codes plus the supplementary work values.
type Dimension string

const (
	DimRealistic     Dimension = "realistic"
	DimInvestigative Dimension = "investigative"
	DimArtistic      Dimension = "artistic"
	DimSocial        Dimension = "social"
	DimEnterprising  Dimension = "enterprising"
	DimConventional  Dimension = "conventional"

	DimTeamwork         Dimension = "teamwork"
	DimIndependence     Dimension = "independence"
	DimCreativity       Dimension = "creativity"
	DimStability        Dimension = "stability"
	DimVariety          Dimension = "variety"
	DimHelpingOthers    Dimension = "helping_others"
	DimPhysicalActivity Dimension = "physical_activity"
	DimTechnology       Dimension = "technology"
)

// RiasecOrder is the canonical dimension order used to break ties when
// ranking codes. It must never be reordered: ranking determinism depends on it.
var RiasecOrder = []Dimension{
	DimRealistic,
	DimInvestigative,
	DimArtistic,
	DimSocial,
	DimEnterprising,
	DimConventional,
}

// WorkValueOrder lists the work-value dimensions in their canonical order.
var WorkValueOrder = []Dimension{
	DimTeamwork,
	DimIndependence,
	DimCreativity,
	DimStability,
	DimVariety,
	DimHelpingOthers,
	DimPhysicalActivity,
	DimTechnology,
}

// IsRiasec reports whether d is one of the six Holland codes.
func (d Dimension) IsRiasec() bool {
	switch d {
	case DimRealistic, DimInvestigative, DimArtistic, DimSocial, DimEnterprising, DimConventional:
		return true
	}
	return false
}

// CodeLetter returns the single-letter Holland code for a RIASEC dimension.
func (d Dimension) CodeLetter() string {
	switch d {
	case DimRealistic:
		return "R"
	case DimInvestigative:
		return "I"
	case DimArtistic:
		return "A"
	case DimSocial:
		return "S"
	case DimEnterprising:
		return "E"
	case DimConventional:
		return "C"
	}
	return ""
}

// HollandCodes holds the six RIASEC interest scores, each in [0, 1].
type HollandCodes struct {
	Realistic     float64 `json:"realistic"`
	Investigative float64 `json:"investigative"`
	Artistic      float64 `json:"artistic"`
	Social        float64 `json:"social"`
	Enterprising  float64 `json:"enterprising"`
	Conventional  float64 `json:"conventional"`
}

// Get returns the score for a RIASEC dimension, 0 for anything else.
func (h HollandCodes) Get(d Dimension) float64 {
	switch d {
	case DimRealistic:
		return h.Realistic
	case DimInvestigative:
		return h.Investigative
	case DimArtistic:
		return h.Artistic
	case DimSocial:
		return h.Social
	case DimEnterprising:
		return h.Enterprising
	case DimConventional:
		return h.Conventional
	}
	return 0
}

// AsVector returns the scores in canonical RIASEC order.
func (h HollandCodes) AsVector() []float64 {
	out := make([]float64, 0, len(RiasecOrder))
	for _, d := range RiasecOrder {
		out = append(out, h.Get(d))
	}
	return out
}

// RankedDimensions returns all six dimensions sorted by score descending.
// Ties keep the canonical R<I<A<S<E<C order so the result is deterministic.
func (h HollandCodes) RankedDimensions() []Dimension {
	ranked := make([]Dimension, len(RiasecOrder))
	copy(ranked, RiasecOrder)
	sort.SliceStable(ranked, func(i, j int) bool {
		return h.Get(ranked[i]) > h.Get(ranked[j])
	})
	return ranked
}

// TopThreeCodes returns the three strongest Holland code letters.
func (h HollandCodes) TopThreeCodes() []string {
	ranked := h.RankedDimensions()
	codes := make([]string, 0, 3)
	for _, d := range ranked[:3] {
		codes = append(codes, d.CodeLetter())
	}
	return codes
}

// DominantType returns the single strongest Holland code letter.
func (h HollandCodes) DominantType() string {
	return h.RankedDimensions()[0].CodeLetter()
}

// WorkValues holds the eight supplementary work-value scores, each in [0, 1].
type WorkValues struct {
	Teamwork         float64 `json:"teamwork"`
	Independence     float64 `json:"independence"`
	Creativity       float64 `json:"creativity"`
	Stability        float64 `json:"stability"`
	Variety          float64 `json:"variety"`
	HelpingOthers    float64 `json:"helping_others"`
	PhysicalActivity float64 `json:"physical_activity"`
	Technology       float64 `json:"technology"`
}

// Get returns the score for a work-value dimension, 0 for anything else.
func (w WorkValues) Get(d Dimension) float64 {
	switch d {
	case DimTeamwork:
		return w.Teamwork
	case DimIndependence:
		return w.Independence
	case DimCreativity:
		return w.Creativity
	case DimStability:
		return w.Stability
	case DimVariety:
		return w.Variety
	case DimHelpingOthers:
		return w.HelpingOthers
	case DimPhysicalActivity:
		return w.PhysicalActivity
	case DimTechnology:
		return w.Technology
	}
	return 0
}

// AsVector returns the scores in canonical work-value order.
func (w WorkValues) AsVector() []float64 {
	out := make([]float64, 0, len(WorkValueOrder))
	for _, d := range WorkValueOrder {
		out = append(out, w.Get(d))
	}
	return out
}

// TraitVector is the persisted personality profile of a student. It is
// recomputed in full on every quiz completion; Version increases monotonically
// so matching logic can detect staleness.
type TraitVector struct {
	Holland    HollandCodes `json:"holland_codes"`
	WorkValues WorkValues   `json:"work_values"`
	Version    int          `json:"version"`
	ComputedAt time.Time    `json:"computed_at"`
}

// AsVector concatenates RIASEC and work-value scores (14 values) in canonical
// order, the layout used for the pgvector column.
func (t TraitVector) AsVector() []float64 {
	return append(t.Holland.AsVector(), t.WorkValues.AsVector()...)
}

// IdealVector is an opportunity's target RIASEC profile. Each dimension is
// optional: nil means the dimension carries no signal and is excluded from
// scoring, which is not the same as a zero.
type IdealVector struct {
	Realistic     *float64 `json:"realistic,omitempty"`
	Investigative *float64 `json:"investigative,omitempty"`
	Artistic      *float64 `json:"artistic,omitempty"`
	Social        *float64 `json:"social,omitempty"`
	Enterprising  *float64 `json:"enterprising,omitempty"`
	Conventional  *float64 `json:"conventional,omitempty"`
}

// Get returns the target value for a dimension and whether it is present.
// Present values are clamped to [0, 1]: the scorer is a ranking heuristic,
// not a validator, and must never fail on out-of-range data.
func (v IdealVector) Get(d Dimension) (float64, bool) {
	var p *float64
	switch d {
	case DimRealistic:
		p = v.Realistic
	case DimInvestigative:
		p = v.Investigative
	case DimArtistic:
		p = v.Artistic
	case DimSocial:
		p = v.Social
	case DimEnterprising:
		p = v.Enterprising
	case DimConventional:
		p = v.Conventional
	}
	if p == nil {
		return 0, false
	}
	return clamp01(*p), true
}

// PresentDimensions returns the RIASEC dimensions that carry a value, in
// canonical order.
func (v IdealVector) PresentDimensions() []Dimension {
	var present []Dimension
	for _, d := range RiasecOrder {
		if _, ok := v.Get(d); ok {
			present = append(present, d)
		}
	}
	return present
}

// IsEmpty reports whether no dimension is present at all.
func (v IdealVector) IsEmpty() bool {
	return len(v.PresentDimensions()) == 0
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
