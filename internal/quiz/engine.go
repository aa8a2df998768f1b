package quiz

import (
	"time"

	"lehrmatch/internal/domain"
)

// normalizationFloor keeps the per-group scale away from zero when a group
// received no weighted contributions.
const normalizationFloor = 0.001

// Engine converts a batch of quiz answers into a normalized trait vector.
// It is pure: tolerant of partial input, deterministic, no shared state.
type Engine struct {
	catalog *Catalog
}

// NewEngine builds an engine over a content catalog.
func NewEngine(catalog *Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Result is the scoring output. UnknownIDs lists answers that referenced
// content missing from the catalog; they are skipped, never an error, and the
// caller decides whether to log them.
type Result struct {
	Holland    domain.HollandCodes
	WorkValues domain.WorkValues
	UnknownIDs []string
}

// accumulator collects weighted raw scores for one dimension group. Folding
// returns a fresh value at each step so scoring stays safe to retry or run in
// parallel.
type accumulator struct {
	raw map[domain.Dimension]float64
}

func newAccumulator() accumulator {
	return accumulator{raw: map[domain.Dimension]float64{}}
}

func (a accumulator) add(d domain.Dimension, weight float64) accumulator {
	next := accumulator{raw: make(map[domain.Dimension]float64, len(a.raw)+1)}
	for k, v := range a.raw {
		next.raw[k] = v
	}
	next.raw[d] += weight
	return next
}

// scale is max(maxObserved, floor); dividing by it pins the dominant
// dimension near 1.0 regardless of how many items were selected.
func (a accumulator) scale() float64 {
	maxRaw := 0.0
	for _, v := range a.raw {
		if v > maxRaw {
			maxRaw = v
		}
	}
	if maxRaw < normalizationFloor {
		return normalizationFloor
	}
	return maxRaw
}

func (a accumulator) normalized(d domain.Dimension) float64 {
	v := a.raw[d] / a.scale()
	if v > 1 {
		v = 1
	}
	return v
}

// Score folds the answer batch into a trait vector. RIASEC and work-value
// contributions accumulate independently and are normalized independently:
// the two groups are different semantic scales and must not dilute each other.
func (e *Engine) Score(answers []domain.QuizAnswer) Result {
	riasec := newAccumulator()
	workValues := newAccumulator()
	var unknown []string

	for _, answer := range answers {
		scores, ok := e.lookupScores(answer)
		if !ok {
			unknown = append(unknown, answer.QuestionID)
			continue
		}
		phaseWeight := answer.Phase.Weight()
		for _, c := range scores.Contributions() {
			if c.Dimension.IsRiasec() {
				riasec = riasec.add(c.Dimension, c.Weight*phaseWeight)
			} else {
				workValues = workValues.add(c.Dimension, c.Weight*phaseWeight)
			}
		}
	}

	return Result{
		Holland: domain.HollandCodes{
			Realistic:     riasec.normalized(domain.DimRealistic),
			Investigative: riasec.normalized(domain.DimInvestigative),
			Artistic:      riasec.normalized(domain.DimArtistic),
			Social:        riasec.normalized(domain.DimSocial),
			Enterprising:  riasec.normalized(domain.DimEnterprising),
			Conventional:  riasec.normalized(domain.DimConventional),
		},
		WorkValues: domain.WorkValues{
			Teamwork:         workValues.normalized(domain.DimTeamwork),
			Independence:     workValues.normalized(domain.DimIndependence),
			Creativity:       workValues.normalized(domain.DimCreativity),
			Stability:        workValues.normalized(domain.DimStability),
			Variety:          workValues.normalized(domain.DimVariety),
			HelpingOthers:    workValues.normalized(domain.DimHelpingOthers),
			PhysicalActivity: workValues.normalized(domain.DimPhysicalActivity),
			Technology:       workValues.normalized(domain.DimTechnology),
		},
		UnknownIDs: unknown,
	}
}

// TraitVector wraps a result into the persistable profile shape.
func (r Result) TraitVector(version int, computedAt time.Time) domain.TraitVector {
	return domain.TraitVector{
		Holland:    r.Holland,
		WorkValues: r.WorkValues,
		Version:    version,
		ComputedAt: computedAt,
	}
}

func (e *Engine) lookupScores(answer domain.QuizAnswer) (domain.DimensionScores, bool) {
	switch answer.Phase {
	case domain.PhaseMorning, domain.PhaseAfternoon:
		tile, ok := e.catalog.TileByID(answer.QuestionID)
		if !ok {
			return domain.DimensionScores{}, false
		}
		return tile.Scores, true
	case domain.PhaseScenarios:
		q, ok := e.catalog.QuestionByID(answer.QuestionID)
		if !ok {
			return domain.DimensionScores{}, false
		}
		if answer.OptionIndex < 0 || answer.OptionIndex >= len(q.Options) {
			return domain.DimensionScores{}, false
		}
		return q.Options[answer.OptionIndex].Scores, true
	}
	return domain.DimensionScores{}, false
}
