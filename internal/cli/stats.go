package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mlortz/sankey/pkg/dataset"
	"github.com/mlortz/sankey/pkg/sankey"
)

// newStatsCmd creates the stats command for summarizing a flow dataset.
// It aggregates the observations and prints per-label totals for both
// sides, ordered by descending cumulative weight.
func newStatsCmd() *cobra.Command {
	var delimiter string
	var noHeader bool

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Summarize the aggregated flows of a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			csvOpts := dataset.DefaultCSVOptions()
			if delimiter != "" {
				csvOpts.Delimiter = rune(delimiter[0])
			}
			if noHeader {
				csvOpts.HasHeader = false
			}
			return runStats(cmd.Context(), args[0], csvOpts)
		},
	}

	cmd.Flags().StringVar(&delimiter, "delimiter", ",", "CSV field delimiter")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "treat the first CSV row as data")

	return cmd
}

// runStats loads the dataset and prints the aggregation summary.
func runStats(ctx context.Context, input string, csvOpts dataset.CSVOptions) error {
	logger := loggerFromContext(ctx)
	logger.Debugf("Loading %s", input)

	records, err := dataset.LoadCSV(input, csvOpts)
	if err != nil {
		return err
	}

	leftTotals := sideTotals(records, sankey.SideLeft)
	rightTotals := sideTotals(records, sankey.SideRight)
	pairs := distinctPairs(records)

	fmt.Println(StyleTitle.Render("Dataset"))
	printKeyValue("records", fmt.Sprintf("%d", len(records)))
	printKeyValue("flows", fmt.Sprintf("%d", pairs))
	printKeyValue("left labels", fmt.Sprintf("%d", len(leftTotals)))
	printKeyValue("right labels", fmt.Sprintf("%d", len(rightTotals)))
	printKeyValue("left total", formatWeight(sumTotals(leftTotals)))
	printKeyValue("right total", formatWeight(sumTotals(rightTotals)))

	fmt.Println()
	fmt.Println(StyleTitle.Render("Left"))
	printSideTotals(records, sankey.SideLeft, leftTotals)

	fmt.Println()
	fmt.Println(StyleTitle.Render("Right"))
	printSideTotals(records, sankey.SideRight, rightTotals)

	fmt.Println()
	fmt.Println(StyleTitle.Render("Flows"))
	printPairTotals(records)

	return nil
}

// pairFlow is one aggregated (left, right) flow.
type pairFlow struct {
	left, right string
	sum         float64
}

// pairTotals sums the left-side weights per (left, right) pair,
// ordered by descending sum with ties kept in first-occurrence order.
func pairTotals(records []sankey.Record) []pairFlow {
	type pair struct{ left, right string }
	sums := make(map[pair]float64)
	var order []pair
	for _, rec := range records {
		p := pair{rec.Left, rec.Right}
		if _, ok := sums[p]; !ok {
			order = append(order, p)
		}
		sums[p] += rec.LeftWeight
	}

	flows := make([]pairFlow, len(order))
	for i, p := range order {
		flows[i] = pairFlow{left: p.left, right: p.right, sum: sums[p]}
	}
	sort.SliceStable(flows, func(i, j int) bool {
		return flows[i].sum > flows[j].sum
	})
	return flows
}

// printPairTotals prints the aggregated flows, largest first.
func printPairTotals(records []sankey.Record) {
	for _, f := range pairTotals(records) {
		fmt.Printf("  %s %s %s %s\n",
			StyleValue.Render(fmt.Sprintf("%-14s", f.left)),
			StyleDim.Render("→"),
			StyleValue.Render(fmt.Sprintf("%-14s", f.right)),
			StyleNumber.Render(fmt.Sprintf("%10s", formatWeight(f.sum))))
	}
}

// sideTotals sums the weights of one side per label.
func sideTotals(records []sankey.Record, s sankey.Side) map[string]float64 {
	totals := make(map[string]float64)
	for _, rec := range records {
		if s == sankey.SideLeft {
			totals[rec.Left] += rec.LeftWeight
		} else {
			totals[rec.Right] += rec.RightWeight
		}
	}
	return totals
}

// distinctPairs counts the unique (left, right) combinations.
func distinctPairs(records []sankey.Record) int {
	type pair struct{ left, right string }
	seen := make(map[pair]bool)
	for _, rec := range records {
		seen[pair{rec.Left, rec.Right}] = true
	}
	return len(seen)
}

// sumTotals sums all per-label totals of one side.
func sumTotals(totals map[string]float64) float64 {
	var sum float64
	for _, v := range totals {
		sum += v
	}
	return sum
}

// printSideTotals prints one side's labels by descending cumulative
// weight, each with its total and share of the side.
func printSideTotals(records []sankey.Record, s sankey.Side, totals map[string]float64) {
	sideTotal := sumTotals(totals)
	for _, label := range sankey.LabelsByWeight(records, s) {
		share := 0.0
		if sideTotal > 0 {
			share = totals[label] / sideTotal
		}
		fmt.Printf("  %s %s %s\n",
			StyleValue.Render(fmt.Sprintf("%-20s", label)),
			StyleNumber.Render(fmt.Sprintf("%12s", formatWeight(totals[label]))),
			StyleDim.Render(fmt.Sprintf("%5.1f%%", share*100)))
	}
}

// formatWeight formats a weight without trailing zeros.
func formatWeight(v float64) string {
	return fmt.Sprintf("%g", v)
}
