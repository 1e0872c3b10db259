package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/yashagw/craneplan/internal/catalog"
	"github.com/yashagw/craneplan/internal/plan"
)

var (
	catalogPath string
	sqlitePath  string
	planPath    string
	format      string

	cfg = plan.DefaultConfig()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "craneplan",
		Short: "Cost-based query planner for table/index/partition metadata",
	}
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	explainCmd := &cobra.Command{
		Use:   "explain",
		Short: "Plan a logical query and print the chosen physical plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain()
		},
	}
	explainCmd.Flags().StringVar(&catalogPath, "catalog", "", "path to a catalog JSON file")
	explainCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "path to a SQLite database to introspect instead of a catalog file")
	explainCmd.Flags().StringVar(&planPath, "plan", "", "path to a logical plan JSON file")
	explainCmd.Flags().StringVar(&format, "format", "table", "output format: table or json")
	explainCmd.Flags().Float64Var(&cfg.ScanUnitCost, "scan-unit-cost", cfg.ScanUnitCost, "cost of examining one row sequentially")
	explainCmd.Flags().Float64Var(&cfg.IndexRowCost, "index-row-cost", cfg.IndexRowCost, "cost of examining one row through an index")
	explainCmd.Flags().Float64Var(&cfg.IndexOnlyFactor, "index-only-factor", cfg.IndexOnlyFactor, "cost discount for index-only scans")
	explainCmd.Flags().Float64Var(&cfg.SortUnitCost, "sort-unit-cost", cfg.SortUnitCost, "scale of the rows*log2(rows) sort term")
	explainCmd.Flags().Float64Var(&cfg.ScanOverhead, "scan-overhead", cfg.ScanOverhead, "flat startup cost of a full table scan")
	explainCmd.Flags().Float64Var(&cfg.RangeSelectivity, "range-selectivity", cfg.RangeSelectivity, "assumed selectivity of a range predicate")

	rootCmd.AddCommand(explainCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "craneplan: %v\n", err)
		os.Exit(1)
	}
}

func runExplain() error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	if planPath == "" {
		return errors.New("--plan is required")
	}
	data, err := os.ReadFile(planPath)
	if err != nil {
		return errors.Wrapf(err, "reading plan file %s", planPath)
	}
	node, err := plan.UnmarshalNode(data)
	if err != nil {
		return err
	}

	physical, err := plan.NewPlanner(cat, cfg).Plan(node)
	if err != nil {
		return err
	}
	report := plan.Explain(physical)

	switch format {
	case "json":
		encoded, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
	case "table":
		renderTable(os.Stdout, report)
	default:
		return errors.Newf("unknown format %q", format)
	}
	return nil
}

func loadCatalog() (*catalog.Catalog, error) {
	switch {
	case sqlitePath != "" && catalogPath != "":
		return nil, errors.New("--catalog and --sqlite are mutually exclusive")
	case sqlitePath != "":
		return catalog.LoadSQLite(sqlitePath)
	case catalogPath != "":
		return catalog.LoadFile(catalogPath)
	default:
		return nil, errors.New("one of --catalog or --sqlite is required")
	}
}

func renderTable(w io.Writer, report *plan.ExplainReport) {
	table := tablewriter.NewWriter(w)
	table.Header("Operation", "Table", "Access", "Index", "Partitions", "Rows", "Sort", "Cost")
	appendRows(table, report.Root, 0)
	table.Render()
	fmt.Fprintf(w, "total cost: %.2f\n", report.TotalCost)
}

func appendRows(table *tablewriter.Table, node *plan.ExplainNode, depth int) {
	table.Append([]string{
		strings.Repeat("  ", depth) + node.Operation,
		node.Table,
		node.Access,
		node.Index,
		node.Partitions,
		strconv.Itoa(node.EstimatedRows),
		node.SortStatus,
		strconv.FormatFloat(node.Cost, 'f', 2, 64),
	})
	for _, child := range node.Children {
		appendRows(table, child, depth+1)
	}
}
