package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AnyUserName/stylo-cli/internal/asset"
	"github.com/AnyUserName/stylo-cli/internal/encoder"
	"github.com/AnyUserName/stylo-cli/internal/engine"
	"github.com/AnyUserName/stylo-cli/internal/pipeline"
	"github.com/AnyUserName/stylo-cli/internal/present"
	"github.com/AnyUserName/stylo-cli/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const reportName = "stylo.report.json"

var (
	compressOutDir    string
	compressFormat    string
	compressQuality   int
	compressWorkers   int
	compressNoRegress bool
	compressReport    string
)

var compressCmd = &cobra.Command{
	Use:   "compress <file_or_dir>",
	Short: "Re-encode an image, or every image under a directory",
	Long: `Re-encodes images locally at the chosen quality and format.

A single file is written as optimized-<name>.<ext>. A directory is
processed in parallel, its layout mirrored under --out, and a JSON
report (stylo.report.json) is written next to the outputs.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompress,
}

func init() {
	compressCmd.Flags().StringVarP(&compressOutDir, "out", "o", "", "output directory (default: config image.out_dir)")
	compressCmd.Flags().StringVarP(&compressFormat, "format", "f", "", "output format: jpeg, png, webp, avif")
	compressCmd.Flags().IntVarP(&compressQuality, "quality", "q", 0, "quality 1-100 (0 = config default)")
	compressCmd.Flags().IntVarP(&compressWorkers, "workers", "w", 0, "parallel workers for directories (0 = config default)")
	compressCmd.Flags().BoolVar(&compressNoRegress, "no-regress-size", true, "skip outputs that are not smaller than the source")
	compressCmd.Flags().StringVar(&compressReport, "report", "", "report path for directories (default: <out>/"+reportName+")")
	rootCmd.AddCommand(compressCmd)
}

func imageSettings() (format string, quality int, outDir string) {
	format, quality, outDir = cfg.Image.Format, cfg.Image.Quality, cfg.Image.OutDir
	if compressFormat != "" {
		format = compressFormat
	}
	if compressQuality > 0 {
		quality = compressQuality
	}
	if compressOutDir != "" {
		outDir = compressOutDir
	}
	format, _ = encoder.Canonical(format)
	return format, encoder.ClampQuality(quality), outDir
}

func runCompress(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("stat %s: %w", args[0], err)
	}
	if info.IsDir() {
		return runCompressDir(cmd, args[0])
	}
	return runCompressFile(cmd, args[0])
}

func runCompressFile(cmd *cobra.Command, path string) error {
	format, quality, outDir := imageSettings()
	eng := newEngine()

	src, err := asset.IngestFile(path, nil)
	if err != nil {
		return err
	}
	out, err := eng.Encode(cmd.Context(), src.Data, engine.Options{Quality: quality, Format: format})
	if err != nil {
		return err
	}
	stats := present.NewStats(src.Size, int64(len(out)))
	if compressNoRegress && stats.Compressed >= stats.Original {
		fmt.Printf("  %s is already smaller than a %s re-encode at quality %d (%s); nothing written\n",
			src.Name, format, quality, present.FormatBytes(stats.Original))
		return nil
	}

	dst, err := present.Save(outDir, present.DownloadName(src.Name, eng.Extension(format)), out)
	if err != nil {
		return err
	}
	logVerbose("wrote %s", dst)
	fmt.Printf("  %s → %s\n", src.Name, dst)
	fmt.Printf("  %s\n", stats.Summary())
	return nil
}

func runCompressDir(cmd *cobra.Command, inputDir string) error {
	start := time.Now()
	format, quality, outDir := imageSettings()

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	if !cmd.Flags().Changed("out") && cfg.Image.OutDir == "." {
		outDir = filepath.Join(inputDir, "optimized")
	}
	absOutput, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	workers := cfg.Image.Workers
	if compressWorkers > 0 {
		workers = compressWorkers
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("format:  %s (quality=%d, workers=%d)", format, quality, workers)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:      absInput,
		OutputDir:     absOutput,
		Format:        format,
		Quality:       quality,
		Workers:       workers,
		NoRegressSize: compressNoRegress,
		Logger:        logger.Named("pipeline"),
	}, newEngine())

	r, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	reportPath := compressReport
	if reportPath == "" {
		reportPath = filepath.Join(absOutput, reportName)
	}
	if err := report.WriteJSON(r, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Debug("report written", zap.String("path", reportPath))

	printCompressReport(r, reportPath, time.Since(start))
	return nil
}

func printCompressReport(r *report.Report, reportPath string, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║              stylo compress complete             ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	s := r.Stats
	fmt.Printf("  Files:       %d (%d written)\n", s.TotalFiles, s.Written)
	fmt.Printf("  Input size:  %s\n", present.FormatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", present.FormatBytes(s.TotalOutputBytes))
	fmt.Printf("  Saved:       %d%%\n", s.SavedPercent)
	if s.SkippedRegress > 0 {
		fmt.Printf("  Skipped:     %d files (not smaller than the original)\n", s.SkippedRegress)
	}
	if s.Failed > 0 {
		fmt.Printf("  Failed:      %d files\n", s.Failed)
	}
	fmt.Printf("  Format:      %s @ %d\n", r.Format, r.Quality)
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if r.RunInfo != nil {
		fmt.Printf("  Workers:     %d\n", r.RunInfo.Workers)
	}
	fmt.Println()

	// Top 10 heaviest sources.
	type fileSize struct {
		key        string
		inputSize  int64
		outputSize int64
	}
	var items []fileSize
	for key, e := range r.Files {
		if e.Output != nil {
			items = append(items, fileSize{key, e.Source.Size, e.Output.Size})
		}
	}
	if len(items) > 0 {
		sort.Slice(items, func(i, j int) bool {
			return items[i].inputSize > items[j].inputSize
		})
		n := min(len(items), 10)
		fmt.Printf("  Top %d heaviest (original → optimized):\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %8s → %8s  (−%d%%)\n",
				truncKey(it.key, 40),
				present.FormatBytes(it.inputSize),
				present.FormatBytes(it.outputSize),
				present.SavedPercent(it.inputSize, it.outputSize),
			)
		}
		fmt.Println()
	}

	if failed := failedFiles(r); len(failed) > 0 {
		fmt.Println("  Failures:")
		for _, f := range failed {
			fmt.Printf("    %s\n", f)
		}
		fmt.Println()
	}

	fmt.Printf("  Report:      %s\n", reportPath)
	fmt.Println()
}

func failedFiles(r *report.Report) []string {
	var out []string
	for key, e := range r.Files {
		if e.Error != "" {
			out = append(out, fmt.Sprintf("%s: %s", key, e.Error))
		}
	}
	sort.Strings(out)
	return out
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}

func reportPathFor(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return filepath.Join(path, reportName), nil
	}
	if !strings.HasSuffix(path, ".json") {
		return "", fmt.Errorf("%s is not a JSON report", path)
	}
	return path, nil
}
