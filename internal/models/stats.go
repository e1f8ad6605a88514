package models

import (
	"slices"
)

// PeerValues collects the present values of f across offerings, in order.
func PeerValues(offerings []Offering, f Field) []float64 {
	values := make([]float64, 0, len(offerings))
	for _, o := range offerings {
		if v, ok := o.Metric(f).Get(); ok {
			values = append(values, v)
		}
	}
	return values
}

// Median returns the median of values, averaging the two middle elements for
// an even count. It returns 0 for an empty slice; callers filter first.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
