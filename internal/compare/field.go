package compare

import "github.com/inference-directory/infdir/internal/models"

// FieldDirection returns the desirable direction for an offering column.
func FieldDirection(f models.Field) Direction {
	switch f {
	case models.FieldInput, models.FieldOutput, models.FieldLatency:
		return LowerIsBetter
	default:
		return HigherIsBetter
	}
}

// ClassifyField buckets the f column of offering against the same column
// of peers. Each column forms its own peer group.
func ClassifyField(offering models.Offering, peers []models.Offering, f models.Field) Bucket {
	return Classify(offering.Metric(f), models.PeerValues(peers, f), FieldDirection(f))
}

// Row holds the buckets shown next to one offering.
type Row struct {
	Offering   models.Offering
	Input      Bucket
	Output     Bucket
	Throughput Bucket
}

// ClassifyRecord buckets input cost, output cost and throughput for every
// offering of r, in offering order.
func ClassifyRecord(r models.Record) []Row {
	rows := make([]Row, 0, len(r.Offerings))
	for _, o := range r.Offerings {
		rows = append(rows, Row{
			Offering:   o,
			Input:      ClassifyField(o, r.Offerings, models.FieldInput),
			Output:     ClassifyField(o, r.Offerings, models.FieldOutput),
			Throughput: ClassifyField(o, r.Offerings, models.FieldThroughput),
		})
	}
	return rows
}

// Goodness is the user-facing reading of a bucket.
type Goodness string

const (
	Good Goodness = "good"
	Fair Goodness = "fair"
	Poor Goodness = "poor"
	None Goodness = ""
)

// GoodnessOf maps a bucket to good/fair/poor given the field direction.
func GoodnessOf(b Bucket, dir Direction) Goodness {
	switch b {
	case Medium:
		return Fair
	case Low:
		if dir == HigherIsBetter {
			return Poor
		}
		return Good
	case High:
		if dir == HigherIsBetter {
			return Good
		}
		return Poor
	default:
		return None
	}
}
