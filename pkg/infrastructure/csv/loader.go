package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/planfab/planfab/pkg/planner"
)

// Loader reads exported planning datasets from a directory of CSV files.
// Each file is a header row of normalized field names followed by data
// rows; a missing file simply yields an empty record sequence, matching
// the engine's tolerance for absent data.
type Loader struct{}

// NewLoader creates a new CSV dataset loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Dataset file names expected inside a scenario directory.
const (
	DemandsFile     = "demands.csv"
	StockFile       = "stock.csv"
	RoutingsFile    = "routings.csv"
	LotPoliciesFile = "lot_policies.csv"
	CapacitiesFile  = "capacities.csv"
	WIPFile         = "wip.csv"
)

// LoadDataset loads all record sequences found under dir.
func (l *Loader) LoadDataset(dir string) (planner.Dataset, error) {
	var ds planner.Dataset
	var err error

	if ds.Demands, err = l.loadRecords(filepath.Join(dir, DemandsFile)); err != nil {
		return planner.Dataset{}, err
	}
	if ds.Stock, err = l.loadRecords(filepath.Join(dir, StockFile)); err != nil {
		return planner.Dataset{}, err
	}
	if ds.Routings, err = l.loadRecords(filepath.Join(dir, RoutingsFile)); err != nil {
		return planner.Dataset{}, err
	}
	if ds.LotPolicies, err = l.loadRecords(filepath.Join(dir, LotPoliciesFile)); err != nil {
		return planner.Dataset{}, err
	}
	if ds.Capacities, err = l.loadRecords(filepath.Join(dir, CapacitiesFile)); err != nil {
		return planner.Dataset{}, err
	}
	if ds.WIP, err = l.loadRecords(filepath.Join(dir, WIPFile)); err != nil {
		return planner.Dataset{}, err
	}

	return ds, nil
}

// loadRecords reads one CSV file into loosely typed records keyed by the
// header row. Values stay strings; the engine's context builder performs
// the tolerant numeric coercion.
func (l *Loader) loadRecords(filename string) ([]planner.Record, error) {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	records := make([]planner.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(planner.Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}

	return records, nil
}
