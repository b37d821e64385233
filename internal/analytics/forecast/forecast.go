package forecast

import (
	"time"

	"github.com/orderpulse/backend/internal/analytics/periods"
	"github.com/orderpulse/backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Model is an ordinary-least-squares linear fit of a value series against
// its index. With fewer than two points the fit degrades to a flat
// continuation of the last known value.
type Model struct {
	Slope     float64
	Intercept float64
	n         int
}

// Fit computes the linear trend of the given series.
func Fit(series []float64) Model {
	n := len(series)
	if n < 2 {
		m := Model{n: n}
		if n == 1 {
			m.Intercept = series[0]
		}
		return m
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return Model{Intercept: series[n-1], n: n}
	}
	slope := (fn*sumXY - sumX*sumY) / denom
	return Model{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / fn,
		n:         n,
	}
}

// At projects the fitted value at index i, clamped to zero. Historical
// indexes run 0..n-1, so the first future period is index n.
func (m Model) At(i int) float64 {
	v := m.Intercept + m.Slope*float64(i)
	if v < 0 {
		return 0
	}
	return v
}

// Project extends the series by n future values starting right after the
// historical range.
func (m Model) Project(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, m.At(m.n+i))
	}
	return out
}

// Point is one projected period of a value series.
type Point struct {
	Key   string
	Value decimal.Decimal
}

// ProjectPeriods fits the series and emits n future points whose keys
// continue directly from the period anchored at lastAnchor.
func ProjectPeriods(series []float64, lastAnchor time.Time, g enums.Granularity, n int) []Point {
	if n <= 0 {
		return nil
	}
	model := Fit(series)
	values := model.Project(n)
	out := make([]Point, 0, n)
	anchor := lastAnchor
	for _, v := range values {
		anchor = periods.Next(anchor, g)
		out = append(out, Point{
			Key:   periods.Key(anchor, g),
			Value: decimal.NewFromFloat(v).Round(2),
		})
	}
	return out
}

// ProjectUnits is ProjectPeriods for integer unit counts, rounding each
// projected value to the nearest whole unit and flooring at zero.
func ProjectUnits(series []float64, lastAnchor time.Time, g enums.Granularity, n int) []UnitPoint {
	if n <= 0 {
		return nil
	}
	model := Fit(series)
	values := model.Project(n)
	out := make([]UnitPoint, 0, n)
	anchor := lastAnchor
	for _, v := range values {
		anchor = periods.Next(anchor, g)
		units := int(decimal.NewFromFloat(v).Round(0).IntPart())
		if units < 0 {
			units = 0
		}
		out = append(out, UnitPoint{Key: periods.Key(anchor, g), Units: units})
	}
	return out
}

// UnitPoint is one projected period of a whole-unit demand series.
type UnitPoint struct {
	Key   string
	Units int
}
