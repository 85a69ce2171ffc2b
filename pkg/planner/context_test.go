package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildContext_LookupStructures(t *testing.T) {
	ds := Dataset{
		Stock: []Record{
			{"article": "A1", "stock": "20"},
			{"article": "A2", "stock": 35.5},
			{"article": "", "stock": "99"}, // blank article is skipped
		},
		Routings: []Record{
			// Deliberately out of phase order; the builder must sort.
			{"article": "A1", "phase": "20", "center": "C2", "setup_minutes": "15", "hourly_rate": "30"},
			{"article": "A1", "phase": "10", "center": "C1", "setup_minutes": "30", "hourly_rate": "60"},
		},
		LotPolicies: []Record{
			{"article": "A1", "lot_size": "80", "reorder_point": "10", "raw_material": "STEEL-S235"},
		},
		Capacities: []Record{
			{"center": "C1", "hours_per_day": "16", "shifts": "2"},
		},
		WIP: []Record{
			{"article": "A1", "phase": "20", "quantity": "25"},
			{"article": "A1", "phase": "20", "quantity": "15"}, // summed per phase
		},
	}

	pctx := buildContext(ds, zap.NewNop())

	requireDecimal(t, "20", pctx.Stock["A1"])
	requireDecimal(t, "35.5", pctx.Stock["A2"])
	assert.Len(t, pctx.Stock, 2)

	route := pctx.Routes["A1"]
	require.Len(t, route, 2)
	assert.Equal(t, 10, route[0].Phase)
	assert.Equal(t, WorkCenterID("C1"), route[0].Center)
	assert.Equal(t, 20, route[1].Phase)
	requireDecimal(t, "15", route[1].SetupMinutes)
	requireDecimal(t, "30", route[1].HourlyRate)

	lot := pctx.Lots["A1"]
	requireDecimal(t, "80", lot.LotSize)
	requireDecimal(t, "10", lot.ReorderPoint)
	assert.Equal(t, "STEEL-S235", lot.RawMaterial)

	cap := pctx.Capacity["C1"]
	requireDecimal(t, "16", cap.HoursPerDay)
	assert.Equal(t, 2, cap.Shifts)

	requireDecimal(t, "40", pctx.WIP["A1"][20])
}

func TestBuildContext_Empty(t *testing.T) {
	pctx := buildContext(Dataset{}, zap.NewNop())

	assert.Empty(t, pctx.Stock)
	assert.Empty(t, pctx.Routes)
	assert.Empty(t, pctx.Lots)
	assert.Empty(t, pctx.Capacity)
	assert.Empty(t, pctx.WIP)
}

func TestBuildContext_DefaultsMissingFields(t *testing.T) {
	ds := Dataset{
		Stock: []Record{
			{"article": "A1"},                     // no stock field
			{"article": "A2", "stock": "n/a"},     // unparseable
			{"article": "A3", "stock": nil},       // explicit nil
			{"article": "A4", "stock": " 12.5 "},  // padded string
		},
		Capacities: []Record{
			// Zero and missing capacity figures fall back to 8 h / 1 shift.
			{"center": "C1", "hours_per_day": "0", "shifts": "0"},
			{"center": "C2"},
		},
		Routings: []Record{
			{"article": "A1"}, // everything defaulted
		},
	}

	pctx := buildContext(ds, zap.NewNop())

	requireDecimal(t, "0", pctx.Stock["A1"])
	requireDecimal(t, "0", pctx.Stock["A2"])
	requireDecimal(t, "0", pctx.Stock["A3"])
	requireDecimal(t, "12.5", pctx.Stock["A4"])

	for _, center := range []WorkCenterID{"C1", "C2"} {
		cap := pctx.Capacity[center]
		requireDecimal(t, "8", cap.HoursPerDay)
		assert.Equal(t, 1, cap.Shifts)
	}

	route := pctx.Routes["A1"]
	require.Len(t, route, 1)
	assert.Equal(t, 0, route[0].Phase)
	assert.Equal(t, WorkCenterID(""), route[0].Center)
	requireDecimal(t, "0", route[0].SetupMinutes)
	requireDecimal(t, "0", route[0].HourlyRate)
}

func TestRecordTime_Layouts(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name  string
		value any
		want  time.Time
	}{
		{name: "rfc3339", value: "2025-06-07T08:00:00Z", want: time.Date(2025, 6, 7, 8, 0, 0, 0, time.UTC)},
		{name: "bare_datetime", value: "2025-06-07T08:00:00", want: time.Date(2025, 6, 7, 8, 0, 0, 0, time.UTC)},
		{name: "date_only", value: "2025-06-07", want: time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)},
		{name: "time_value", value: time.Date(2025, 6, 7, 8, 0, 0, 0, time.UTC), want: time.Date(2025, 6, 7, 8, 0, 0, 0, time.UTC)},
		{name: "garbage", value: "soon", want: time.Time{}},
		{name: "missing", value: nil, want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recordTime(Record{"due_date": tt.value}, "due_date", logger)
			assert.True(t, got.Equal(tt.want), "expected %v, got %v", tt.want, got)
		})
	}
}
