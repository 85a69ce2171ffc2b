package planner

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// buildContext converts the raw record sequences into the read-only lookup
// structures the per-article planner works against. Any missing or
// unparseable field defaults to zero; an absent article or center is treated
// as zero downstream, never as an error.
func buildContext(ds Dataset, logger *zap.Logger) *Context {
	pctx := &Context{
		Stock:    make(map[ArticleID]decimal.Decimal, len(ds.Stock)),
		Routes:   make(map[ArticleID][]RouteStep),
		Lots:     make(map[ArticleID]LotPolicy, len(ds.LotPolicies)),
		Capacity: make(map[WorkCenterID]CapacityRecord, len(ds.Capacities)),
		WIP:      make(map[ArticleID]map[int]decimal.Decimal),
	}

	for _, rec := range ds.Stock {
		art := ArticleID(recordString(rec, "article"))
		if art == "" {
			continue
		}
		pctx.Stock[art] = recordDecimal(rec, "stock", logger)
	}

	for _, rec := range ds.Routings {
		art := ArticleID(recordString(rec, "article"))
		if art == "" {
			continue
		}
		pctx.Routes[art] = append(pctx.Routes[art], RouteStep{
			Phase:        recordInt(rec, "phase", logger),
			Center:       WorkCenterID(recordString(rec, "center")),
			SetupMinutes: recordDecimal(rec, "setup_minutes", logger),
			HourlyRate:   recordDecimal(rec, "hourly_rate", logger),
		})
	}
	// Ascending phase order is the canonical form; the backward pass derives
	// its reversed view from this at plan time.
	for art := range pctx.Routes {
		steps := pctx.Routes[art]
		sort.SliceStable(steps, func(i, j int) bool { return steps[i].Phase < steps[j].Phase })
	}

	for _, rec := range ds.LotPolicies {
		art := ArticleID(recordString(rec, "article"))
		if art == "" {
			continue
		}
		pctx.Lots[art] = LotPolicy{
			LotSize:      recordDecimal(rec, "lot_size", logger),
			ReorderPoint: recordDecimal(rec, "reorder_point", logger),
			RawMaterial:  recordString(rec, "raw_material"),
		}
	}

	for _, rec := range ds.Capacities {
		center := WorkCenterID(recordString(rec, "center"))
		if center == "" {
			continue
		}
		shifts := recordInt(rec, "shifts", logger)
		if shifts <= 0 {
			shifts = 1
		}
		hours := recordDecimal(rec, "hours_per_day", logger)
		if hours.IsZero() {
			hours = defaultHoursPerDay
		}
		pctx.Capacity[center] = CapacityRecord{HoursPerDay: hours, Shifts: shifts}
	}

	for _, rec := range ds.WIP {
		art := ArticleID(recordString(rec, "article"))
		if art == "" {
			continue
		}
		phase := recordInt(rec, "phase", logger)
		qty := recordDecimal(rec, "quantity", logger)
		if pctx.WIP[art] == nil {
			pctx.WIP[art] = make(map[int]decimal.Decimal)
		}
		pctx.WIP[art][phase] = pctx.WIP[art][phase].Add(qty)
	}

	logger.Info("planning context prepared",
		zap.Int("stock_articles", len(pctx.Stock)),
		zap.Int("routed_articles", len(pctx.Routes)),
		zap.Int("lot_policies", len(pctx.Lots)),
		zap.Int("capacity_centers", len(pctx.Capacity)),
		zap.Int("wip_articles", len(pctx.WIP)),
	)

	return pctx
}

// recordString returns the field as a trimmed string, "" when absent.
func recordString(rec Record, key string) string {
	v, ok := rec[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case ArticleID:
		return string(s)
	case WorkCenterID:
		return string(s)
	default:
		return ""
	}
}

// recordDecimal coerces the field to a decimal, defaulting to zero.
func recordDecimal(rec Record, key string, logger *zap.Logger) decimal.Decimal {
	v, ok := rec[key]
	if !ok || v == nil {
		return decimal.Zero
	}
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case float64:
		return decimal.NewFromFloat(n)
	case float32:
		return decimal.NewFromFloat32(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			logger.Debug("unparseable numeric field defaulted to zero",
				zap.String("field", key), zap.String("value", s))
			return decimal.Zero
		}
		return d
	default:
		logger.Debug("unsupported numeric field type defaulted to zero",
			zap.String("field", key))
		return decimal.Zero
	}
}

// recordInt coerces the field to an int, defaulting to zero.
func recordInt(rec Record, key string, logger *zap.Logger) int {
	v, ok := rec[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case decimal.Decimal:
		return int(n.IntPart())
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil {
				logger.Debug("unparseable integer field defaulted to zero",
					zap.String("field", key), zap.String("value", s))
				return 0
			}
			return int(f)
		}
		return i
	default:
		return 0
	}
}

// recordTime coerces the field to a time, returning the zero time when the
// row carries no usable date. ISO layouts cover what the ingestion
// collaborators emit.
func recordTime(rec Record, key string, logger *zap.Logger) time.Time {
	v, ok := rec[key]
	if !ok || v == nil {
		return time.Time{}
	}
	switch d := v.(type) {
	case time.Time:
		return d
	case *time.Time:
		if d == nil {
			return time.Time{}
		}
		return *d
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return time.Time{}
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
		// Collaborators sometimes emit a bare UTC marker without an offset.
		s = strings.TrimSuffix(s, "Z")
		for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
		logger.Debug("unparseable date field defaulted",
			zap.String("field", key), zap.String("value", s))
		return time.Time{}
	default:
		return time.Time{}
	}
}
