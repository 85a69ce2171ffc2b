package planner

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EngineConfig holds configuration for the planning engine.
type EngineConfig struct {
	// MaxWorkers bounds the worker pool for the per-article fan-out.
	MaxWorkers int
	// Logger receives progress and defaulted-field diagnostics.
	Logger *zap.Logger
}

// Engine runs what-if production planning simulations. One engine can serve
// any number of requests; every request builds its own immutable context
// from the dataset snapshot it is given.
type Engine struct {
	config EngineConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewEngine creates a planning engine with default configuration.
func NewEngine() *Engine {
	return NewEngineWithConfig(EngineConfig{})
}

// NewEngineWithConfig creates a planning engine with custom configuration.
func NewEngineWithConfig(config EngineConfig) *Engine {
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = 4
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{config: config, logger: logger, now: time.Now}
}

// Simulate computes one production plan from the dataset snapshot and the
// request parameters. A dataset without demand is not an error: it yields
// the well-defined empty result. The run is not cancellable mid-flight;
// timeout handling belongs to the calling service layer.
func (e *Engine) Simulate(ctx context.Context, ds Dataset, params Params) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	params = params.withDefaults()
	started := e.now()

	pctx := buildContext(ds, e.logger)
	jobs := e.groupDemands(ds.Demands, params.DemandFactor)
	if len(jobs) == 0 {
		e.logger.Info("no demand in dataset, returning empty result")
		return e.emptyResult(started), nil
	}

	e.logger.Info("planning batch",
		zap.Int("articles", len(jobs)),
		zap.Float64("demand_factor", params.DemandFactor),
		zap.Bool("extra_shift", params.ExtraShift),
		zap.Int("horizon_days", params.HorizonDays),
	)

	now := e.now()
	exec := chooseExecutor(e.config.MaxWorkers, len(jobs))
	results := runBatch(exec, jobs, pctx, now, e.logger)

	// Merge: list concatenation for orders, sum-by-key for center load.
	// Cross-article order is irrelevant here, the sequencer establishes the
	// global order afterwards.
	var orders []PlannedOrder
	load := make(map[WorkCenterID]decimal.Decimal)
	for _, res := range results {
		orders = append(orders, res.orders...)
		for center, hours := range res.load {
			load[center] = load[center].Add(hours)
		}
	}

	saturation := analyzeSaturation(load, pctx.Capacity, params)
	orders = sequenceOrders(orders)

	result := &Result{
		RunID:       uuid.New(),
		Orders:      orders,
		Saturation:  saturation,
		Bottlenecks: bottleneckRows(saturation),
		KPIs:        composeKPIs(orders, saturation, load),
		Elapsed:     e.now().Sub(started),
	}

	e.logger.Info("planning complete",
		zap.String("run_id", result.RunID.String()),
		zap.Int("orders", len(result.Orders)),
		zap.Int("bottlenecks", result.KPIs.BottleneckCount),
		zap.Duration("elapsed", result.Elapsed),
	)

	return result, nil
}

// groupDemands buckets the demand records per article, applying the demand
// scale factor. Jobs come out sorted by article id so batch composition is
// deterministic regardless of record order.
func (e *Engine) groupDemands(records []Record, factor float64) []articleJob {
	scale := decimal.NewFromFloat(factor)
	byArticle := make(map[ArticleID][]DemandLine)

	for _, rec := range records {
		article := ArticleID(recordString(rec, "article"))
		if article == "" {
			continue
		}
		byArticle[article] = append(byArticle[article], DemandLine{
			Article:  article,
			Quantity: recordDecimal(rec, "quantity", e.logger).Mul(scale),
			DueDate:  recordTime(rec, "due_date", e.logger),
			OrderRef: recordString(rec, "order_ref"),
		})
	}

	articles := make([]ArticleID, 0, len(byArticle))
	for article := range byArticle {
		articles = append(articles, article)
	}
	sort.Slice(articles, func(i, j int) bool { return articles[i] < articles[j] })

	jobs := make([]articleJob, 0, len(articles))
	for _, article := range articles {
		jobs = append(jobs, articleJob{article: article, demands: byArticle[article]})
	}
	return jobs
}

func (e *Engine) emptyResult(started time.Time) *Result {
	return &Result{
		RunID:       uuid.New(),
		Orders:      []PlannedOrder{},
		Saturation:  []SaturationRow{},
		Bottlenecks: []SaturationRow{},
		KPIs: KPISummary{
			AvgSaturationPct: decimal.Zero,
			TotalLoadHours:   decimal.Zero,
		},
		Elapsed: e.now().Sub(started),
	}
}
