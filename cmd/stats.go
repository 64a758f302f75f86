package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/AnyUserName/stylo-cli/internal/present"
	"github.com/AnyUserName/stylo-cli/internal/report"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_report>",
	Short: "Display statistics for a batch compress report",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func readReport(path string) (*report.Report, string, error) {
	path, err := reportPathFor(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read report: %w", err)
	}
	var r report.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, "", fmt.Errorf("parse report: %w", err)
	}
	return &r, path, nil
}

func runStats(_ *cobra.Command, args []string) error {
	r, _, err := readReport(args[0])
	if err != nil {
		return err
	}
	printStats(r)
	return nil
}

func printStats(r *report.Report) {
	fmt.Println()
	fmt.Printf("  Report version:   %d\n", r.Version)
	fmt.Printf("  Generated:        %s\n", r.GeneratedAt)
	fmt.Printf("  Format:           %s @ quality %d\n", r.Format, r.Quality)
	if r.RunInfo != nil {
		fmt.Printf("  Workers:          %d\n", r.RunInfo.Workers)
		fmt.Printf("  Encoders:         %s\n", r.RunInfo.Encoders)
	}
	fmt.Println()

	s := r.Stats
	fmt.Printf("  Total files:      %d\n", s.TotalFiles)
	fmt.Printf("  Written:          %d\n", s.Written)
	fmt.Printf("  Input size:       %s\n", present.FormatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", present.FormatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		fmt.Printf("  Compression:      %d%% saved\n", s.SavedPercent)
	}
	fmt.Println()

	// Per source type breakdown.
	type typeStat struct {
		count int
		in    int64
		out   int64
	}
	byType := map[string]typeStat{}
	for _, e := range r.Files {
		if e.Output == nil {
			continue
		}
		ts := byType[e.Source.MIME]
		ts.count++
		ts.in += e.Source.Size
		ts.out += e.Output.Size
		byType[e.Source.MIME] = ts
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)
	if len(types) > 0 {
		fmt.Println("  Source types:")
		for _, t := range types {
			ts := byType[t]
			fmt.Printf("    %-12s %4d files  %8s → %8s  (−%d%%)\n",
				t, ts.count, present.FormatBytes(ts.in), present.FormatBytes(ts.out),
				present.SavedPercent(ts.in, ts.out))
		}
		fmt.Println()
	}

	// Saving distribution in 25% buckets.
	buckets := [4]int{}
	for _, e := range r.Files {
		if e.Output == nil {
			continue
		}
		b := min(max(e.SavedPercent, 0)/25, 3)
		buckets[b]++
	}
	fmt.Println("  Savings:")
	for i, n := range buckets {
		fmt.Printf("    %3d-%3d%%  %4d files\n", i*25, i*25+25, n)
	}

	var warnings []string
	for key, e := range r.Files {
		if e.Skipped {
			warnings = append(warnings, fmt.Sprintf("%q was not smaller after re-encode", key))
		}
		if e.Error != "" {
			warnings = append(warnings, fmt.Sprintf("%q failed: %s", key, e.Error))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
