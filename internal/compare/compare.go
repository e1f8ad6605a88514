// Package compare labels a provider's price or throughput relative to the
// other providers of the same model.
package compare

import (
	"math"
	"slices"

	"github.com/inference-directory/infdir/internal/models"
)

// Bucket is the relative position of a value within its peer group.
type Bucket string

const (
	Low     Bucket = "LOW"
	Medium  Bucket = "MEDIUM"
	High    Bucket = "HIGH"
	Neutral Bucket = "NEUTRAL"
)

func (b Bucket) String() string { return string(b) }

// Direction says which end of a field is desirable.
type Direction int

const (
	// LowerIsBetter is used for costs.
	LowerIsBetter Direction = iota
	// HigherIsBetter is used for performance figures such as throughput.
	HigherIsBetter
)

const (
	// MinPeers is the smallest peer group that carries a signal.
	MinPeers = 4

	lowDeviationRatio    = 0.05
	wideSpreadRatio      = 5.0
	defaultLowThreshold  = 0.9
	defaultHighThreshold = 1.1
)

// Thresholds are ratios to the median that split LOW, MEDIUM and HIGH.
type Thresholds struct {
	Low  float64
	High float64
}

// DefaultThresholds are used unless the peer group is widely spread.
var DefaultThresholds = Thresholds{Low: defaultLowThreshold, High: defaultHighThreshold}

// ValidPeers drops missing, zero and negative values.
func ValidPeers(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// HasLowDeviation reports whether every value lies within 5% of the median.
func HasLowDeviation(values []float64) bool {
	if len(values) < MinPeers {
		return false
	}
	median := models.Median(values)
	for _, v := range values {
		if math.Abs(v-median) >= median*lowDeviationRatio {
			return false
		}
	}
	return true
}

// HasWideDistribution reports whether the largest value is more than five
// times the smallest.
func HasWideDistribution(values []float64) bool {
	if len(values) < MinPeers {
		return false
	}
	lo, hi := slices.Min(values), slices.Max(values)
	return hi/lo > wideSpreadRatio
}

// AdaptiveThresholds widens the split points to the first and third
// quartiles for widely spread groups. Quartiles are picked by index
// floor(n/4) and floor(3n/4) without interpolation.
func AdaptiveThresholds(values []float64) Thresholds {
	if len(values) < MinPeers || !HasWideDistribution(values) {
		return DefaultThresholds
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	median := models.Median(sorted)
	q1 := sorted[len(sorted)/4]
	q3 := sorted[len(sorted)*3/4]
	return Thresholds{Low: q1 / median, High: q3 / median}
}

// Classify buckets value against peers. Peers are filtered to positive
// values first; an absent value or fewer than four valid peers yields
// Neutral, and a homogeneous group yields Medium for any value.
func Classify(value models.Optional[float64], peers []float64, dir Direction) Bucket {
	v, ok := value.Get()
	if !ok {
		return Neutral
	}
	valid := ValidPeers(peers)
	if len(valid) < MinPeers {
		return Neutral
	}
	if HasLowDeviation(valid) {
		return Medium
	}

	median := models.Median(valid)
	th := AdaptiveThresholds(valid)

	if dir == HigherIsBetter {
		switch {
		case v > median*th.High:
			return High
		case v > median*th.Low:
			return Medium
		default:
			return Low
		}
	}

	switch {
	case v < median*th.Low:
		return Low
	case v < median*th.High:
		return Medium
	default:
		return High
	}
}
