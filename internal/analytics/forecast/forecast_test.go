package forecast

import (
	"testing"
	"time"

	"github.com/orderpulse/backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLinearSeries(t *testing.T) {
	m := Fit([]float64{100, 150, 200})
	assert.InDelta(t, 50, m.Slope, 1e-9)
	assert.InDelta(t, 100, m.Intercept, 1e-9)

	projected := m.Project(2)
	require.Len(t, projected, 2)
	assert.InDelta(t, 250, projected[0], 1e-9)
	assert.InDelta(t, 300, projected[1], 1e-9)
}

func TestFitFlatContinuation(t *testing.T) {
	m := Fit([]float64{420})
	projected := m.Project(3)
	require.Len(t, projected, 3)
	for _, v := range projected {
		assert.InDelta(t, 420, v, 1e-9)
	}

	m = Fit(nil)
	for _, v := range m.Project(2) {
		assert.Zero(t, v)
	}
}

func TestProjectionNeverNegative(t *testing.T) {
	// steep downward trend crosses zero within the horizon
	m := Fit([]float64{100, 40})
	projected := m.Project(4)
	require.Len(t, projected, 4)
	for i, v := range projected {
		assert.GreaterOrEqual(t, v, 0.0, "period %d", i)
	}
	assert.Zero(t, projected[2])
}

func TestProjectPeriodsContinuesKeys(t *testing.T) {
	lastAnchor := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC) // Monday, 2026-W11
	points := ProjectPeriods([]float64{100, 150, 200}, lastAnchor, enums.GranularityWeek, 2)
	require.Len(t, points, 2)
	assert.Equal(t, "2026-W12", points[0].Key)
	assert.Equal(t, "2026-W13", points[1].Key)
	assert.Equal(t, "250", points[0].Value.String())
	assert.Equal(t, "300", points[1].Value.String())
}

func TestProjectUnitsRoundsAndFloors(t *testing.T) {
	lastAnchor := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	points := ProjectUnits([]float64{10, 7, 4}, lastAnchor, enums.GranularityMonth, 3)
	require.Len(t, points, 3)
	assert.Equal(t, "2026-04", points[0].Key)
	assert.Equal(t, 1, points[0].Units)
	assert.Equal(t, 0, points[1].Units, "demand cannot go negative")
	assert.Equal(t, 0, points[2].Units)
}

func TestProjectZeroHorizon(t *testing.T) {
	assert.Nil(t, Fit([]float64{1, 2}).Project(0))
	assert.Nil(t, ProjectPeriods([]float64{1, 2}, time.Now(), enums.GranularityWeek, 0))
}
