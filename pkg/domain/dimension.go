package domain

// Dimension is one axis along which an answer is judged. The taxonomy is
// closed: evaluations carrying any other value are rejected before a write
// is attempted.
type Dimension string

const (
	DimensionAccuracy           Dimension = "Accuracy/Correctness"
	DimensionRelevance          Dimension = "Relevance"
	DimensionCompleteness       Dimension = "Completeness"
	DimensionReasoning          Dimension = "Reasoning"
	DimensionHallucination      Dimension = "Hallucination"
	DimensionVerbose            Dimension = "Verbose"
	DimensionAdditionalComments Dimension = "Additional Comments"
)

// dimensions holds the taxonomy in canonical order. Missing-dimension
// queries and list responses preserve this order.
var dimensions = []Dimension{
	DimensionAccuracy,
	DimensionRelevance,
	DimensionCompleteness,
	DimensionReasoning,
	DimensionHallucination,
	DimensionVerbose,
	DimensionAdditionalComments,
}

// Dimensions returns the fixed taxonomy in canonical order.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensions))
	copy(out, dimensions)
	return out
}

// ParseDimension validates a raw dimension value against the taxonomy.
func ParseDimension(value string) (Dimension, bool) {
	for _, d := range dimensions {
		if string(d) == value {
			return d, true
		}
	}
	return "", false
}

// MissingDimensions returns the taxonomy members not present in recorded,
// in canonical order.
func MissingDimensions(recorded []Dimension) []Dimension {
	seen := make(map[Dimension]bool, len(recorded))
	for _, d := range recorded {
		seen[d] = true
	}
	missing := make([]Dimension, 0, len(dimensions))
	for _, d := range dimensions {
		if !seen[d] {
			missing = append(missing, d)
		}
	}
	return missing
}

// Score bounds for an evaluation.
const (
	MinScore = 0
	MaxScore = 10
)

// ValidScore reports whether a score lies inside the allowed range.
func ValidScore(score float64) bool {
	return score >= MinScore && score <= MaxScore
}
