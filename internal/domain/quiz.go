package domain

import "time"

// QuizPhase identifies one of the three quiz phases.
type QuizPhase string

const (
	PhaseMorning   QuizPhase = "morning"
	PhaseAfternoon QuizPhase = "afternoon"
	PhaseScenarios QuizPhase = "scenarios"
)

// Weight returns the fixed phase weight. The three weights sum to 1.0.
func (p QuizPhase) Weight() float64 {
	switch p {
	case PhaseMorning:
		return 0.3
	case PhaseAfternoon:
		return 0.3
	case PhaseScenarios:
		return 0.4
	}
	return 0
}

// DimensionScores maps quiz content to the dimensions it scores. One field per
// dimension keeps the dimension set a structural guarantee; zero means the
// item does not contribute to that dimension.
type DimensionScores struct {
	Realistic     float64
	Investigative float64
	Artistic      float64
	Social        float64
	Enterprising  float64
	Conventional  float64

	Teamwork         float64
	Independence     float64
	Creativity       float64
	Stability        float64
	Variety          float64
	HelpingOthers    float64
	PhysicalActivity float64
	Technology       float64
}

// Contribution is a single dimension-weight pair from a quiz item.
type Contribution struct {
	Dimension Dimension
	Weight    float64
}

// Contributions returns the non-zero dimension weights in canonical order.
func (s DimensionScores) Contributions() []Contribution {
	get := func(d Dimension) float64 {
		switch d {
		case DimRealistic:
			return s.Realistic
		case DimInvestigative:
			return s.Investigative
		case DimArtistic:
			return s.Artistic
		case DimSocial:
			return s.Social
		case DimEnterprising:
			return s.Enterprising
		case DimConventional:
			return s.Conventional
		case DimTeamwork:
			return s.Teamwork
		case DimIndependence:
			return s.Independence
		case DimCreativity:
			return s.Creativity
		case DimStability:
			return s.Stability
		case DimVariety:
			return s.Variety
		case DimHelpingOthers:
			return s.HelpingOthers
		case DimPhysicalActivity:
			return s.PhysicalActivity
		case DimTechnology:
			return s.Technology
		}
		return 0
	}

	var out []Contribution
	for _, d := range append(append([]Dimension{}, RiasecOrder...), WorkValueOrder...) {
		if w := get(d); w != 0 {
			out = append(out, Contribution{Dimension: d, Weight: w})
		}
	}
	return out
}

// QuizAnswer is one raw response within a quiz session. For grid phases it is
// a tile selection (OptionIndex unused); for the scenario phase OptionIndex
// picks one of the question's options. Answers are immutable and are owned by
// the session; only the resulting trait vector is persisted.
type QuizAnswer struct {
	QuestionID  string    `json:"question_id"`
	Phase       QuizPhase `json:"phase"`
	OptionIndex int       `json:"option_index"`
	AnsweredAt  time.Time `json:"answered_at"`
}
