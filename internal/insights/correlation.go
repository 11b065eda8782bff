package insights

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Correlation strength bands. |r| below BandWeak produces no insight at
// all; the remaining bands label the qualitative strength in the sentence.
const (
	BandWeak     = 0.1
	BandModerate = 0.3
	BandStrong   = 0.6
)

// CorrelationResult holds a Pearson coefficient with its significance
type CorrelationResult struct {
	R          float64 `json:"r"`
	PValue     float64 `json:"p_value"`
	SampleSize int     `json:"sample_size"`
}

// Strength classifies |r| into a qualitative band.
func (c CorrelationResult) Strength() string {
	abs := math.Abs(c.R)
	switch {
	case abs < BandWeak:
		return "negligible"
	case abs < BandModerate:
		return "weak"
	case abs < BandStrong:
		return "moderate"
	default:
		return "strong"
	}
}

// Direction reports the sign of the relationship.
func (c CorrelationResult) Direction() string {
	if c.R < 0 {
		return "negative"
	}
	return "positive"
}

// PearsonCorrelation computes Pearson's r over paired samples together with
// a two-tailed p-value from the Student-t transform. ok is false when fewer
// than three pairs exist or either series has zero variance.
func PearsonCorrelation(x, y []float64) (CorrelationResult, bool) {
	n := len(x)
	if n != len(y) || n < 3 {
		return CorrelationResult{}, false
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return CorrelationResult{}, false
	}
	// Clamp for floating point drift before the t transform
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}

	return CorrelationResult{
		R:          r,
		PValue:     correlationPValue(r, n),
		SampleSize: n,
	}, true
}

// correlationPValue computes the exact two-tailed p-value for a correlation
// coefficient via Student's t-distribution.
func correlationPValue(r float64, sampleSize int) float64 {
	if sampleSize < 3 {
		return 1.0
	}
	if math.Abs(r) >= 1 {
		return 0.0
	}

	df := float64(sampleSize - 2)
	t := r * math.Sqrt(df/(1-r*r))
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * (1 - tDist.CDF(math.Abs(t)))
}
