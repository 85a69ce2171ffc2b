package planner

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// urgentThreshold is the days-remaining bound below which an order is urgent.
const urgentThreshold = 7

var sixty = decimal.NewFromInt(60)

// planArticle computes the planned orders and per-center load contribution
// for a single article. The function is pure: it reads only its arguments
// and the shared read-only context, so it produces identical results
// whether run standalone, sequentially, or inside the worker pool.
func planArticle(article ArticleID, demands []DemandLine, pctx *Context, now time.Time) articleResult {
	empty := articleResult{load: map[WorkCenterID]decimal.Decimal{}}

	// 1. Aggregate demand for the article.
	totalDemand := decimal.Zero
	for _, d := range demands {
		totalDemand = totalDemand.Add(d.Quantity)
	}
	if !totalDemand.IsPositive() {
		return empty
	}

	// 2. The tightest deadline governs the whole aggregated batch.
	dueDate := earliestDueDate(demands, now)

	stock := pctx.Stock[article]
	route := pctx.Routes[article]
	wipByPhase := pctx.WIP[article]
	lot := pctx.Lots[article]

	// 3. Net finished-goods requirement against stock and reorder point.
	// When projected stock stays at or above the reorder point no launch is
	// needed; otherwise the launch covers the uncovered demand. A projected
	// level below the reorder point but above zero therefore yields no
	// requirement (replenishment back up to the reorder point is not
	// planned here).
	projected := stock.Sub(totalDemand)
	requirement := decimal.Zero
	if projected.LessThan(lot.ReorderPoint) {
		requirement = maxZero(totalDemand.Sub(stock))
	}
	if !requirement.IsPositive() {
		return empty
	}

	if len(route) == 0 {
		return unroutedResult(article, requirement, dueDate)
	}

	// 4. Backward pass: walk the route last phase to first, consuming WIP
	// staged at each phase. The carried need can only shrink on the way up.
	carried := requirement
	for i := len(route) - 1; i >= 0; i-- {
		carried = maxZero(carried.Sub(wipByPhase[route[i].Phase]))
	}

	// 5. carried is now the head-phase launch requirement.
	if !carried.IsPositive() {
		// In-process inventory already covers the demand.
		return empty
	}

	// 6. Lot rounding at the head phase only.
	launchQty := carried
	if lot.LotSize.IsPositive() {
		launchQty = carried.Div(lot.LotSize).Ceil().Mul(lot.LotSize)
	}

	// 7. Forward pass: the launch quantity flows unchanged through every
	// phase (no yield loss modeled); one order per phase.
	daysRemaining := daysUntil(dueDate, now)
	status := StatusNormal
	if daysRemaining < urgentThreshold {
		status = StatusUrgent
	}

	orders := make([]PlannedOrder, 0, len(route))
	load := make(map[WorkCenterID]decimal.Decimal, len(route))
	for _, step := range route {
		execMinutes := decimal.Zero
		if step.HourlyRate.IsPositive() {
			execMinutes = launchQty.Div(step.HourlyRate).Mul(sixty)
		}
		loadHours := step.SetupMinutes.Add(execMinutes).Div(sixty).Round(2)

		orders = append(orders, PlannedOrder{
			OrderNumber:   fmt.Sprintf("OF-SIM-%s-%d", article, step.Phase),
			Article:       article,
			Center:        step.Center,
			Phase:         step.Phase,
			Quantity:      launchQty,
			DueDate:       dueDate,
			Status:        status,
			DaysRemaining: daysRemaining,
			LoadHours:     loadHours,
			RawMaterial:   lot.RawMaterial,
		})
		if step.Center != "" {
			load[step.Center] = load[step.Center].Add(loadHours)
		}
	}

	return articleResult{orders: orders, load: load}
}

// unroutedResult emits the fallback order for an article with no routing
// data: full requirement on the synthetic center, zero load, flagged for
// manual planner attention. The batch keeps progressing.
func unroutedResult(article ArticleID, requirement decimal.Decimal, dueDate time.Time) articleResult {
	return articleResult{
		orders: []PlannedOrder{{
			OrderNumber: fmt.Sprintf("OF-ERR-%s", article),
			Article:     article,
			Center:      UnroutedCenter,
			Quantity:    requirement,
			DueDate:     dueDate,
			Status:      StatusRouteError,
			LoadHours:   decimal.Zero,
		}},
		load: map[WorkCenterID]decimal.Decimal{},
	}
}

// failedResult emits the flagged order surfacing a per-article computation
// failure without aborting the sibling computations.
func failedResult(article ArticleID) articleResult {
	return articleResult{
		orders: []PlannedOrder{{
			OrderNumber: fmt.Sprintf("OF-ERR-%s", article),
			Article:     article,
			Center:      FailedCenter,
			Quantity:    decimal.Zero,
			Status:      StatusFailed,
			LoadHours:   decimal.Zero,
		}},
		load: map[WorkCenterID]decimal.Decimal{},
	}
}

// earliestDueDate picks the minimum non-zero due date, defaulting to
// now+30d when no demand line carries one.
func earliestDueDate(demands []DemandLine, now time.Time) time.Time {
	var earliest time.Time
	for _, d := range demands {
		if d.DueDate.IsZero() {
			continue
		}
		if earliest.IsZero() || d.DueDate.Before(earliest) {
			earliest = d.DueDate
		}
	}
	if earliest.IsZero() {
		return now.Add(30 * 24 * time.Hour)
	}
	return earliest
}

// daysUntil returns whole days between now and due, truncated toward zero.
func daysUntil(due, now time.Time) int {
	return int(due.Sub(now).Hours() / 24)
}

func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
