package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/inference-directory/infdir/internal/models"
)

// NotAvailable is shown for a missing figure.
const NotAvailable = "N/A"

// Price renders a per-million-token price with up to six decimals and no
// trailing zeros, e.g. $0.15 or $3.
func Price(p models.Optional[float64]) string {
	if !p.Valid {
		return NotAvailable
	}
	s := strconv.FormatFloat(p.Value, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return "$" + s
}

// ContextWindow renders a token count as 128K or 512. Zero means unknown.
func ContextWindow(tokens models.Optional[float64]) string {
	if !tokens.Present() {
		return NotAvailable
	}
	if tokens.Value >= 1000 {
		return fmt.Sprintf("%dK", int64(math.Round(tokens.Value/1000)))
	}
	return strconv.FormatInt(int64(math.Round(tokens.Value)), 10)
}

// Throughput renders tokens per second as 1.2K or 85.3. Zero means unknown.
func Throughput(tps models.Optional[float64]) string {
	if !tps.Present() {
		return NotAvailable
	}
	if tps.Value >= 1000 {
		return fmt.Sprintf("%.1fK", tps.Value/1000)
	}
	return fmt.Sprintf("%.1f", tps.Value)
}

// Latency renders seconds to first token.
func Latency(seconds models.Optional[float64]) string {
	if !seconds.Present() {
		return NotAvailable
	}
	return fmt.Sprintf("%.2fs", seconds.Value)
}
