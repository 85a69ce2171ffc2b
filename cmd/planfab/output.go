package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/planfab/planfab/pkg/planner"
)

// maxListedOrders caps the sequence table in text output; the full list is
// always available via -format json.
const maxListedOrders = 25

// generateOutput renders the simulation result in the requested format.
func generateOutput(result *planner.Result, format string) error {
	switch format {
	case "text":
		return generateTextOutput(result)
	case "json":
		return generateJSONOutput(result)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// generateTextOutput prints a planner-facing report to stdout.
func generateTextOutput(result *planner.Result) error {
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("                 PRODUCTION PLAN SIMULATION")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("Run: %s  (%.0f ms)\n\n", result.RunID, float64(result.Elapsed.Microseconds())/1000)

	k := result.KPIs
	fmt.Println("SUMMARY")
	fmt.Printf("  Planned Orders:   %d (%d urgent)\n", k.TotalOrders, k.UrgentOrders)
	fmt.Printf("  Total Load:       %s h across %d centers\n", k.TotalLoadHours, k.ActiveCenters)
	fmt.Printf("  Avg Saturation:   %s%%\n", k.AvgSaturationPct)
	fmt.Printf("  Bottlenecks:      %d\n\n", k.BottleneckCount)

	if len(result.Saturation) > 0 {
		fmt.Println("CENTER SATURATION")
		fmt.Println("────────────────────────────────────────────────────────────────")
		for _, row := range result.Saturation {
			marker := "  "
			if row.Bottleneck {
				marker = "!!"
			}
			fmt.Printf("%s %-14s required %8s h  available %8s h  %6s%%\n",
				marker, row.Center, row.RequiredHours, row.AvailableHours, row.SaturationPct)
		}
		fmt.Println()
	}

	if len(result.Orders) > 0 {
		fmt.Println("DISPATCH SEQUENCE")
		fmt.Println("────────────────────────────────────────────────────────────────")
		for _, order := range result.Orders {
			if order.Sequence > maxListedOrders {
				fmt.Printf("... %d more orders\n", len(result.Orders)-maxListedOrders)
				break
			}
			fmt.Printf("%3d. %-20s %-12s phase %-4d qty %8s  %-11s %4d d  %6s h\n",
				order.Sequence, order.OrderNumber, order.Center, order.Phase,
				order.Quantity, order.Status, order.DaysRemaining, order.LoadHours)
		}
	}

	return nil
}

// generateJSONOutput dumps the full result to stdout.
func generateJSONOutput(result *planner.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
