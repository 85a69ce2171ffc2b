package planner

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// planningNow is the fixed reference instant all planner tests run against.
var planningNow = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(dec(t, want)), "expected %s, got %s", want, got)
}

// scenarioContext builds the reference context used across the planner
// tests: article A1 with a two-phase route, staged WIP at the second
// phase, a lot size of 80 and a reorder point of 10.
func scenarioContext(t *testing.T) *Context {
	t.Helper()
	return &Context{
		Stock: map[ArticleID]decimal.Decimal{
			"A1": dec(t, "20"),
		},
		Routes: map[ArticleID][]RouteStep{
			"A1": {
				{Phase: 10, Center: "C1", SetupMinutes: dec(t, "30"), HourlyRate: dec(t, "60")},
				{Phase: 20, Center: "C2", SetupMinutes: dec(t, "15"), HourlyRate: dec(t, "30")},
			},
		},
		Lots: map[ArticleID]LotPolicy{
			"A1": {LotSize: dec(t, "80"), ReorderPoint: dec(t, "10"), RawMaterial: "STEEL-S235"},
		},
		Capacity: map[WorkCenterID]CapacityRecord{
			"C1": {HoursPerDay: dec(t, "8"), Shifts: 1},
			"C2": {HoursPerDay: dec(t, "8"), Shifts: 2},
		},
		WIP: map[ArticleID]map[int]decimal.Decimal{
			"A1": {20: dec(t, "40")},
		},
	}
}

// scenarioDemands returns the two demand lines of the reference scenario:
// 100 units due in 5 days and 50 units due in 20 days.
func scenarioDemands(t *testing.T) []DemandLine {
	t.Helper()
	return []DemandLine{
		{Article: "A1", Quantity: dec(t, "100"), DueDate: planningNow.Add(5 * 24 * time.Hour), OrderRef: "SO-1001"},
		{Article: "A1", Quantity: dec(t, "50"), DueDate: planningNow.Add(20 * 24 * time.Hour), OrderRef: "SO-1002"},
	}
}
