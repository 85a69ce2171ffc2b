package planner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ArticleID represents a unique article (finished good) identifier
type ArticleID string

// WorkCenterID represents a unique work center identifier
type WorkCenterID string

// UnroutedCenter is the synthetic center assigned to orders for articles
// that have no routing data.
const UnroutedCenter WorkCenterID = "UNROUTED"

// FailedCenter is the synthetic center assigned to orders emitted when a
// single article's computation fails mid-batch.
const FailedCenter WorkCenterID = "ERROR"

// Record is one loosely typed tabular row handed over by an ingestion
// collaborator. Field names are already normalized; values may be strings,
// numbers, or time values. Missing or unparseable fields default to zero.
type Record map[string]any

// Dataset groups the record sequences a simulation request operates on.
type Dataset struct {
	Demands     []Record
	Stock       []Record
	Routings    []Record
	LotPolicies []Record
	Capacities  []Record
	WIP         []Record
}

// Params is the externally tunable configuration of one simulation request.
type Params struct {
	// DemandFactor scales every demand quantity (what-if). Defaults to 1.0.
	DemandFactor float64
	// ExtraShift adds one shift to every work center.
	ExtraShift bool
	// HorizonDays is the planning horizon for capacity. Defaults to 30.
	HorizonDays int
}

// withDefaults fills in the documented defaults for zero-valued parameters.
func (p Params) withDefaults() Params {
	if p.DemandFactor <= 0 {
		p.DemandFactor = 1.0
	}
	if p.HorizonDays <= 0 {
		p.HorizonDays = 30
	}
	return p
}

// DemandLine represents one demand row for an article, quantity already
// scaled by the request's demand factor.
type DemandLine struct {
	Article  ArticleID
	Quantity decimal.Decimal
	// DueDate is zero when the source row carried no usable date; the
	// planner defaults it to now+30d.
	DueDate  time.Time
	OrderRef string
}

// RouteStep is a single routing operation of an article.
type RouteStep struct {
	Phase        int
	Center       WorkCenterID
	SetupMinutes decimal.Decimal
	// HourlyRate is units per hour. A rate of 0 yields zero execution time,
	// a documented limitation rather than an error.
	HourlyRate decimal.Decimal
}

// LotPolicy holds the lot-sizing policy of an article.
type LotPolicy struct {
	// LotSize 0 means no rounding at the head phase.
	LotSize      decimal.Decimal
	ReorderPoint decimal.Decimal
	RawMaterial  string
}

// CapacityRecord holds the daily capacity of a work center.
type CapacityRecord struct {
	HoursPerDay decimal.Decimal
	Shifts      int
}

// Context holds the O(1) lookup structures one simulation plans against.
// It is built once per request and is read-only for its whole lifetime.
type Context struct {
	Stock    map[ArticleID]decimal.Decimal
	Routes   map[ArticleID][]RouteStep // ascending by phase
	Lots     map[ArticleID]LotPolicy
	Capacity map[WorkCenterID]CapacityRecord
	WIP      map[ArticleID]map[int]decimal.Decimal
}

// OrderStatus classifies a planned order for sequencing.
type OrderStatus int

const (
	StatusNormal OrderStatus = iota
	StatusUrgent
	StatusRouteError
	StatusFailed
)

func (s OrderStatus) String() string {
	switch s {
	case StatusNormal:
		return "NORMAL"
	case StatusUrgent:
		return "URGENT"
	case StatusRouteError:
		return "ROUTE_ERROR"
	case StatusFailed:
		return "FAILED"
	default:
		return "Unknown"
	}
}

// PlannedOrder represents one planned production order at one routing phase.
// Orders are immutable once created; the sequence index is assigned last.
type PlannedOrder struct {
	OrderNumber   string
	Article       ArticleID
	Center        WorkCenterID
	Phase         int
	Quantity      decimal.Decimal
	DueDate       time.Time
	Status        OrderStatus
	DaysRemaining int
	LoadHours     decimal.Decimal
	RawMaterial   string
	Sequence      int
}

// SaturationRow reports one work center's load against its capacity.
type SaturationRow struct {
	Center         WorkCenterID
	RequiredHours  decimal.Decimal
	AvailableHours decimal.Decimal
	SaturationPct  decimal.Decimal
	Bottleneck     bool
}

// KPISummary aggregates the headline figures of one simulation.
type KPISummary struct {
	UrgentOrders     int
	TotalOrders      int
	AvgSaturationPct decimal.Decimal
	BottleneckCount  int
	TotalLoadHours   decimal.Decimal
	ActiveCenters    int
}

// Result is the complete output of one simulation request.
type Result struct {
	RunID       uuid.UUID
	Orders      []PlannedOrder
	Saturation  []SaturationRow
	Bottlenecks []SaturationRow
	KPIs        KPISummary
	Elapsed     time.Duration
}

// articleJob is one unit of work for the executors: a single article with
// its grouped demand lines.
type articleJob struct {
	article ArticleID
	demands []DemandLine
}

// articleResult is the planner output for one article.
type articleResult struct {
	orders []PlannedOrder
	load   map[WorkCenterID]decimal.Decimal
}
