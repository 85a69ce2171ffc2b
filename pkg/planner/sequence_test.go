package planner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSequenceOrders_UrgentFirstThenDeadline(t *testing.T) {
	orders := []PlannedOrder{
		{OrderNumber: "N-20", Status: StatusNormal, DaysRemaining: 20},
		{OrderNumber: "U-5", Status: StatusUrgent, DaysRemaining: 5},
		{OrderNumber: "N-10", Status: StatusNormal, DaysRemaining: 10},
		{OrderNumber: "U-2", Status: StatusUrgent, DaysRemaining: 2},
	}

	sequenced := sequenceOrders(orders)

	want := []string{"U-2", "U-5", "N-10", "N-20"}
	for i, number := range want {
		assert.Equal(t, number, sequenced[i].OrderNumber)
		assert.Equal(t, i+1, sequenced[i].Sequence)
	}
}

func TestSequenceOrders_StableOnTies(t *testing.T) {
	// Equal urgency and equal days-remaining must keep input order.
	orders := []PlannedOrder{
		{OrderNumber: "first", Status: StatusUrgent, DaysRemaining: 3},
		{OrderNumber: "second", Status: StatusUrgent, DaysRemaining: 3},
		{OrderNumber: "third", Status: StatusUrgent, DaysRemaining: 3},
	}

	sequenced := sequenceOrders(orders)

	assert.Equal(t, "first", sequenced[0].OrderNumber)
	assert.Equal(t, "second", sequenced[1].OrderNumber)
	assert.Equal(t, "third", sequenced[2].OrderNumber)
}

func TestSequenceOrders_FlaggedOrdersSortWithUrgentBlock(t *testing.T) {
	orders := []PlannedOrder{
		{OrderNumber: "normal", Status: StatusNormal, DaysRemaining: 1},
		{OrderNumber: "unrouted", Status: StatusRouteError, DaysRemaining: 0},
		{OrderNumber: "failed", Status: StatusFailed, DaysRemaining: 0},
	}

	sequenced := sequenceOrders(orders)

	assert.Equal(t, "unrouted", sequenced[0].OrderNumber)
	assert.Equal(t, "failed", sequenced[1].OrderNumber)
	assert.Equal(t, "normal", sequenced[2].OrderNumber)
}

func TestSequenceOrders_Empty(t *testing.T) {
	assert.Empty(t, sequenceOrders(nil))
}

func TestComposeKPIs(t *testing.T) {
	orders := []PlannedOrder{
		{Status: StatusUrgent},
		{Status: StatusUrgent},
		{Status: StatusNormal},
		{Status: StatusRouteError},
	}
	saturation := []SaturationRow{
		{SaturationPct: dec(t, "125"), Bottleneck: true},
		{SaturationPct: dec(t, "50")},
		{SaturationPct: dec(t, "25")},
	}
	load := map[WorkCenterID]decimal.Decimal{
		"C1": dec(t, "300.04"),
		"C2": dec(t, "120"),
		"C3": dec(t, "60"),
	}

	kpis := composeKPIs(orders, saturation, load)

	assert.Equal(t, 2, kpis.UrgentOrders)
	assert.Equal(t, 4, kpis.TotalOrders)
	assert.Equal(t, 1, kpis.BottleneckCount)
	assert.Equal(t, 3, kpis.ActiveCenters)
	requireDecimal(t, "66.7", kpis.AvgSaturationPct)
	requireDecimal(t, "480", kpis.TotalLoadHours)
}

func TestComposeKPIs_Empty(t *testing.T) {
	kpis := composeKPIs(nil, nil, nil)

	assert.Zero(t, kpis.UrgentOrders)
	assert.Zero(t, kpis.TotalOrders)
	assert.Zero(t, kpis.BottleneckCount)
	assert.Zero(t, kpis.ActiveCenters)
	requireDecimal(t, "0", kpis.AvgSaturationPct)
	requireDecimal(t, "0", kpis.TotalLoadHours)
}
