package compare

import (
	"testing"

	"github.com/inference-directory/infdir/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyInsufficientData(t *testing.T) {
	peers := []float64{1, 2, 3}
	for _, dir := range []Direction{LowerIsBetter, HigherIsBetter} {
		assert.Equal(t, Neutral, Classify(models.Some(1.0), peers, dir))
		assert.Equal(t, Neutral, Classify(models.Some(100.0), peers, dir))
	}

	// absent, zero and negative peers do not count towards the minimum
	assert.Equal(t, Neutral, Classify(models.Some(1.0), []float64{1, 2, 3, 0, -4}, LowerIsBetter))

	four := []float64{1, 2, 3, 4}
	assert.Equal(t, Neutral, Classify(models.None[float64](), four, LowerIsBetter))
	assert.Equal(t, Neutral, Classify(models.Some(0.0), four, LowerIsBetter))
	assert.Equal(t, Neutral, Classify(models.Some(-1.0), four, HigherIsBetter))
}

func TestClassifyHomogeneousGroup(t *testing.T) {
	peers := []float64{100, 101, 102, 103}
	require.True(t, HasLowDeviation(peers))
	for _, v := range peers {
		assert.Equal(t, Medium, Classify(models.Some(v), peers, LowerIsBetter))
		assert.Equal(t, Medium, Classify(models.Some(v), peers, HigherIsBetter))
	}
}

func TestClassifyEndToEndCost(t *testing.T) {
	r := models.Record{
		Name: "Model X",
		Offerings: []models.Offering{
			{Provider: "Acme", Input: models.Some(0.01)},
			{Provider: "Acme", Input: models.Some(0.01)},
			{Provider: "Beta", Input: models.Some(0.05)},
			{Provider: "Gamma", Input: models.Some(0.02)},
		},
	}
	peers := r.PeerValues(models.FieldInput)
	assert.InDelta(t, 0.015, models.Median(peers), 1e-12)
	assert.False(t, HasLowDeviation(peers))
	assert.False(t, HasWideDistribution(peers), "max/min is exactly 5")

	assert.Equal(t, Low, Classify(models.Some(0.01), peers, LowerIsBetter))
	assert.Equal(t, High, Classify(models.Some(0.05), peers, LowerIsBetter))

	rows := ClassifyRecord(r)
	require.Len(t, rows, 4)
	assert.Equal(t, Low, rows[0].Input)
	assert.Equal(t, High, rows[2].Input)
	assert.Equal(t, Neutral, rows[0].Output, "no output prices at all")
	assert.Equal(t, Neutral, rows[0].Throughput)
}

func TestClassifyFixedThresholds(t *testing.T) {
	peers := []float64{10, 10, 12, 14}
	// median 11, ratios 0.9 / 1.1 -> 9.9 / 12.1
	assert.Equal(t, DefaultThresholds, AdaptiveThresholds(peers))

	assert.Equal(t, Low, Classify(models.Some(9.8), peers, LowerIsBetter))
	assert.Equal(t, Medium, Classify(models.Some(11.0), peers, LowerIsBetter))
	assert.Equal(t, High, Classify(models.Some(12.5), peers, LowerIsBetter))

	assert.Equal(t, High, Classify(models.Some(12.2), peers, HigherIsBetter))
	assert.Equal(t, Medium, Classify(models.Some(11.0), peers, HigherIsBetter))
	assert.Equal(t, Low, Classify(models.Some(9.5), peers, HigherIsBetter))
}

func TestAdaptiveThresholdsWideDistribution(t *testing.T) {
	peers := []float64{1, 2, 4, 8, 20}
	require.True(t, HasWideDistribution(peers))

	th := AdaptiveThresholds(peers)
	// median 4, q1 = sorted[1] = 2, q3 = sorted[3] = 8
	assert.InDelta(t, 0.5, th.Low, 1e-12)
	assert.InDelta(t, 2.0, th.High, 1e-12)

	assert.Equal(t, Low, Classify(models.Some(1.5), peers, LowerIsBetter))
	assert.Equal(t, Medium, Classify(models.Some(4.0), peers, LowerIsBetter))
	assert.Equal(t, High, Classify(models.Some(8.0), peers, LowerIsBetter))

	assert.Equal(t, High, Classify(models.Some(20.0), peers, HigherIsBetter))
	assert.Equal(t, Medium, Classify(models.Some(4.0), peers, HigherIsBetter))
	assert.Equal(t, Low, Classify(models.Some(2.0), peers, HigherIsBetter))
}

func TestClassifyMonotonic(t *testing.T) {
	peers := []float64{0.2, 0.5, 0.9, 1.4, 3.1, 6.0}
	rank := map[Bucket]int{Low: 0, Medium: 1, High: 2}

	prevCost, prevPerf := -1, -1
	for v := 0.05; v < 8; v += 0.05 {
		cost := rank[Classify(models.Some(v), peers, LowerIsBetter)]
		perf := rank[Classify(models.Some(v), peers, HigherIsBetter)]
		assert.GreaterOrEqual(t, cost, prevCost, "cost bucket must not drop as value grows (v=%v)", v)
		assert.GreaterOrEqual(t, perf, prevPerf, "performance bucket must not drop as value grows (v=%v)", v)
		prevCost, prevPerf = cost, perf
	}
}

func TestGoodnessOf(t *testing.T) {
	assert.Equal(t, Good, GoodnessOf(Low, LowerIsBetter))
	assert.Equal(t, Poor, GoodnessOf(High, LowerIsBetter))
	assert.Equal(t, Good, GoodnessOf(High, HigherIsBetter))
	assert.Equal(t, Poor, GoodnessOf(Low, HigherIsBetter))
	assert.Equal(t, Fair, GoodnessOf(Medium, HigherIsBetter))
	assert.Equal(t, None, GoodnessOf(Neutral, LowerIsBetter))
}

func TestFieldDirection(t *testing.T) {
	assert.Equal(t, LowerIsBetter, FieldDirection(models.FieldInput))
	assert.Equal(t, LowerIsBetter, FieldDirection(models.FieldOutput))
	assert.Equal(t, HigherIsBetter, FieldDirection(models.FieldThroughput))
	assert.Equal(t, HigherIsBetter, FieldDirection(models.FieldContext))
}
