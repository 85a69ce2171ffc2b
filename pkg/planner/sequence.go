package planner

import (
	"sort"

	"github.com/shopspring/decimal"
)

// sequenceOrders stable-sorts the merged order list into its final
// dispatch order and assigns the 1-based sequence index. Anything that
// needs attention (urgent, unrouted, failed) goes ahead of normal work;
// within a group the tightest deadline comes first. Stability preserves
// the relative order of ties, which keeps runs deterministic.
func sequenceOrders(orders []PlannedOrder) []PlannedOrder {
	sort.SliceStable(orders, func(i, j int) bool {
		ri, rj := sequenceRank(orders[i].Status), sequenceRank(orders[j].Status)
		if ri != rj {
			return ri < rj
		}
		return orders[i].DaysRemaining < orders[j].DaysRemaining
	})
	for i := range orders {
		orders[i].Sequence = i + 1
	}
	return orders
}

func sequenceRank(s OrderStatus) int {
	if s == StatusNormal {
		return 1
	}
	return 0
}

// composeKPIs computes the headline figures from the sequenced orders, the
// saturation report, and the raw per-center load.
func composeKPIs(orders []PlannedOrder, saturation []SaturationRow, load map[WorkCenterID]decimal.Decimal) KPISummary {
	kpis := KPISummary{TotalOrders: len(orders), ActiveCenters: len(load)}

	for _, o := range orders {
		if o.Status == StatusUrgent {
			kpis.UrgentOrders++
		}
	}

	total := decimal.Zero
	for _, row := range saturation {
		total = total.Add(row.SaturationPct)
		if row.Bottleneck {
			kpis.BottleneckCount++
		}
	}
	kpis.AvgSaturationPct = decimal.Zero
	if len(saturation) > 0 {
		kpis.AvgSaturationPct = total.Div(decimal.NewFromInt(int64(len(saturation)))).Round(1)
	}

	hours := decimal.Zero
	for _, h := range load {
		hours = hours.Add(h)
	}
	kpis.TotalLoadHours = hours.Round(1)

	return kpis
}
