package styles

import (
	"strings"
	"testing"

	"github.com/inference-directory/infdir/internal/compare"
	"github.com/stretchr/testify/assert"
)

func TestBlend(t *testing.T) {
	assert.Equal(t, "#000000", Blend("#000000", "#ffffff", 0))
	assert.Equal(t, "#ffffff", Blend("#000000", "#ffffff", 1))

	mid := Blend("#ff0000", "#0000ff", 0.5)
	assert.NotEqual(t, "#ff0000", mid)
	assert.NotEqual(t, "#0000ff", mid)

	assert.Equal(t, "nope", Blend("nope", "#ffffff", 0.5))
}

func TestGoodnessIcon(t *testing.T) {
	assert.Equal(t, GoodIcon, GoodnessIcon(compare.Good))
	assert.Equal(t, FairIcon, GoodnessIcon(compare.Fair))
	assert.Equal(t, PoorIcon, GoodnessIcon(compare.Poor))
	assert.Empty(t, GoodnessIcon(compare.None))
}

func TestBadge(t *testing.T) {
	assert.True(t, strings.Contains(Badge("$0.5", compare.Low, compare.LowerIsBetter), GoodIcon))
	assert.True(t, strings.Contains(Badge("12.0", compare.Low, compare.HigherIsBetter), PoorIcon))
	neutral := Badge("$1", compare.Neutral, compare.LowerIsBetter)
	assert.Contains(t, neutral, "$1")
	assert.NotContains(t, neutral, FairIcon)
}
