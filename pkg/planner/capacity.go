package planner

import (
	"sort"

	"github.com/shopspring/decimal"
)

var (
	oneHundred         = decimal.NewFromInt(100)
	defaultHoursPerDay = decimal.NewFromInt(8)
)

// analyzeSaturation combines the accumulated per-center load with the
// capacity records to produce one saturation row per loaded center. A
// center without a capacity record runs at 8 hours/day on a single shift;
// the extra-shift flag adds one shift everywhere.
func analyzeSaturation(load map[WorkCenterID]decimal.Decimal, capacity map[WorkCenterID]CapacityRecord, p Params) []SaturationRow {
	rows := make([]SaturationRow, 0, len(load))
	horizon := decimal.NewFromInt(int64(p.HorizonDays))

	for center, required := range load {
		cap, ok := capacity[center]
		if !ok {
			cap = CapacityRecord{HoursPerDay: defaultHoursPerDay, Shifts: 1}
		}
		shifts := cap.Shifts
		if p.ExtraShift {
			shifts++
		}
		available := cap.HoursPerDay.Mul(decimal.NewFromInt(int64(shifts))).Mul(horizon)

		// Zero availability reports zero saturation, never a division error.
		pct := decimal.Zero
		if available.IsPositive() {
			pct = required.Div(available).Mul(oneHundred).Round(1)
		}

		rows = append(rows, SaturationRow{
			Center:         center,
			RequiredHours:  required.Round(1),
			AvailableHours: available.Round(1),
			SaturationPct:  pct,
			Bottleneck:     pct.GreaterThan(oneHundred),
		})
	}

	// Most saturated first; center id breaks ties so the report is stable
	// across runs despite map iteration.
	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].SaturationPct.Cmp(rows[j].SaturationPct); c != 0 {
			return c > 0
		}
		return rows[i].Center < rows[j].Center
	})

	return rows
}

// bottleneckRows filters the saturation report down to overloaded centers,
// preserving the report order.
func bottleneckRows(rows []SaturationRow) []SaturationRow {
	var out []SaturationRow
	for _, r := range rows {
		if r.Bottleneck {
			out = append(out, r)
		}
	}
	return out
}
