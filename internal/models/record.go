// Package models holds the dataset types: a Record per AI model and the
// Offerings that quote its price and performance at each provider.
package models

import "strings"

// Field names a numeric column of an Offering.
type Field string

const (
	FieldContext    Field = "context"
	FieldMaxOutput  Field = "max_output"
	FieldInput      Field = "input"
	FieldOutput     Field = "output"
	FieldLatency    Field = "latency"
	FieldThroughput Field = "throughput"
)

// Fields lists every numeric Offering column.
var Fields = []Field{FieldContext, FieldMaxOutput, FieldInput, FieldOutput, FieldLatency, FieldThroughput}

// Offering is one provider's quote for a model.
type Offering struct {
	Provider   string            `json:"name"`
	Context    Optional[int64]   `json:"context"`
	MaxOutput  Optional[int64]   `json:"max_output"`
	Input      Optional[float64] `json:"input"`
	Output     Optional[float64] `json:"output"`
	Latency    Optional[float64] `json:"latency"`
	Throughput Optional[float64] `json:"throughput"`
}

// ProviderKey is the case-insensitive identity of the offering's provider.
func (o Offering) ProviderKey() string {
	return strings.ToLower(strings.TrimSpace(o.Provider))
}

// Metric returns the named column as a float Optional.
func (o Offering) Metric(f Field) Optional[float64] {
	switch f {
	case FieldContext:
		return o.Context.Float()
	case FieldMaxOutput:
		return o.MaxOutput.Float()
	case FieldInput:
		return o.Input
	case FieldOutput:
		return o.Output
	case FieldLatency:
		return o.Latency
	case FieldThroughput:
		return o.Throughput
	default:
		return Optional[float64]{}
	}
}

// Record is one model entry of the dataset. Records are never modified after
// they are fetched.
type Record struct {
	Name         string     `json:"name"`
	HFID         string     `json:"hf_id,omitempty"`
	OpenRouterID string     `json:"open_router_id,omitempty"`
	Author       string     `json:"author,omitempty"`
	Offerings    []Offering `json:"providers"`

	// Precomputed by the dataset publisher. Display only: peer statistics
	// are always recomputed from Offerings.
	MedianInputCost  Optional[float64] `json:"median_input_cost"`
	MedianOutputCost Optional[float64] `json:"median_output_cost"`
	LowInputCost     Optional[float64] `json:"low_input_cost"`
	LowOutputCost    Optional[float64] `json:"low_output_cost"`
	HighInputCost    Optional[float64] `json:"high_input_cost"`
	HighOutputCost   Optional[float64] `json:"high_output_cost"`

	IsOpenWeights bool `json:"is_open_weights"`
}

// Slug is the identifier used to address the record from the outside: the
// OpenRouter id when there is one, the name otherwise.
func (r Record) Slug() string {
	if r.OpenRouterID != "" {
		return r.OpenRouterID
	}
	return r.Name
}

// Offering returns the first offering whose provider matches name, ignoring case.
func (r Record) Offering(name string) (Offering, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, o := range r.Offerings {
		if o.ProviderKey() == key {
			return o, true
		}
	}
	return Offering{}, false
}

// ProviderNames returns the offering provider names in list order.
func (r Record) ProviderNames() []string {
	names := make([]string, 0, len(r.Offerings))
	for _, o := range r.Offerings {
		names = append(names, o.Provider)
	}
	return names
}

// PeerValues collects the present values of f across the record's offerings.
func (r Record) PeerValues(f Field) []float64 {
	return PeerValues(r.Offerings, f)
}

// Median computes a fresh median of f over the record's offerings.
func (r Record) Median(f Field) Optional[float64] {
	values := r.PeerValues(f)
	if len(values) == 0 {
		return Optional[float64]{}
	}
	return Some(Median(values))
}

func (r Record) MedianContext() Optional[float64]    { return r.Median(FieldContext) }
func (r Record) MedianThroughput() Optional[float64] { return r.Median(FieldThroughput) }

// Figures are the headline numbers shown for a record, either for a single
// provider's offering or summarised over all offerings.
type Figures struct {
	// Provider is empty when the figures summarise every offering.
	Provider   string            `json:"provider,omitempty"`
	Input      Optional[float64] `json:"input"`
	Output     Optional[float64] `json:"output"`
	Context    Optional[float64] `json:"context"`
	Throughput Optional[float64] `json:"throughput"`
}

// ParseField resolves a column name, accepting the dashed form of max_output.
func ParseField(s string) (Field, bool) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, f := range Fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}
