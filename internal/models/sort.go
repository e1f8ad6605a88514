package models

import (
	"math"
	"slices"
	"strings"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortKey is a column an offering table can be ordered by.
type SortKey string

const (
	SortNone       SortKey = ""
	SortName       SortKey = "name"
	SortInput      SortKey = "input"
	SortOutput     SortKey = "output"
	SortContext    SortKey = "context"
	SortThroughput SortKey = "throughput"
)

// ParseSortKey accepts the column names used on the command line.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortName, SortInput, SortOutput, SortContext, SortThroughput:
		return k, true
	default:
		return SortNone, false
	}
}

// SortOfferings returns a sorted copy of offerings.
//
// Costs sort cheapest first on SortAsc and missing costs go last. Context and
// throughput sort largest first on SortAsc, so "ascending" always walks from
// the best quote to the worst; missing values count as -1.
func SortOfferings(offerings []Offering, key SortKey, dir SortDirection) []Offering {
	out := slices.Clone(offerings)
	if key == SortNone {
		return out
	}

	value := func(o Offering) float64 {
		var f Field
		switch key {
		case SortInput:
			f = FieldInput
		case SortOutput:
			f = FieldOutput
		case SortContext:
			f = FieldContext
		case SortThroughput:
			f = FieldThroughput
		}
		m := o.Metric(f)
		if !m.Valid {
			if key == SortInput || key == SortOutput {
				return math.MaxFloat64
			}
			return -1
		}
		return m.Value
	}

	slices.SortStableFunc(out, func(a, b Offering) int {
		var c int
		switch key {
		case SortName:
			c = strings.Compare(strings.ToLower(a.Provider), strings.ToLower(b.Provider))
		case SortInput, SortOutput:
			c = cmpFloat(value(a), value(b))
		default:
			c = cmpFloat(value(b), value(a))
		}
		if dir == SortDesc {
			c = -c
		}
		return c
	})
	return out
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
