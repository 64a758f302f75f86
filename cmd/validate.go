package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/stylo-cli/internal/hasher"
	"github.com/AnyUserName/stylo-cli/internal/report"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <out_dir_or_report>",
	Short: "Validate a compress report and check the written files",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	r, path, err := readReport(args[0])
	if err != nil {
		return err
	}

	baseDir := r.OutputDir
	if baseDir == "" {
		baseDir = filepath.Dir(path)
	}
	errs := validateReport(r, baseDir)

	if len(errs) == 0 {
		fmt.Println("  ✓ Report is valid")
		fmt.Printf("  ✓ %d files, %d written, all outputs present\n", r.Stats.TotalFiles, r.Stats.Written)
		return nil
	}

	fmt.Printf("  ✗ Report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateReport(r *report.Report, baseDir string) []string {
	var errs []string

	if r.Version != report.SupportedReportVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}

	seenPaths := map[string]string{}
	for key, e := range r.Files {
		if e.Source.Size <= 0 && e.Error == "" {
			errs = append(errs, fmt.Sprintf("file %q: invalid source size %d", key, e.Source.Size))
		}
		if e.Output == nil {
			continue
		}
		o := e.Output
		if o.Format == "" {
			errs = append(errs, fmt.Sprintf("file %q: empty output format", key))
		}
		if o.Path == "" {
			errs = append(errs, fmt.Sprintf("file %q: missing output path", key))
			continue
		}
		if prev, dup := seenPaths[o.Path]; dup {
			errs = append(errs, fmt.Sprintf("file %q: output %q also written by %q", key, o.Path, prev))
		}
		seenPaths[o.Path] = key

		size, hash, err := fingerprintFile(filepath.Join(baseDir, o.Path), len(o.Hash))
		if err != nil {
			errs = append(errs, fmt.Sprintf("file %q: output not found: %s", key, o.Path))
			continue
		}
		if size != o.Size {
			errs = append(errs, fmt.Sprintf("file %q: size mismatch: report=%d, disk=%d", key, o.Size, size))
		}
		if o.Hash != "" && hash != o.Hash {
			errs = append(errs, fmt.Sprintf("file %q: hash mismatch for %s", key, o.Path))
		}
	}

	// Stats must agree with the entries.
	want := *r
	want.ComputeStats()
	if want.Stats != r.Stats {
		errs = append(errs, fmt.Sprintf("stats mismatch: report=%+v, recomputed=%+v", r.Stats, want.Stats))
	}

	return errs
}

func fingerprintFile(path string, hexLen int) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return 0, "", err
	}
	hash, err := hasher.FingerprintReader(f, hexLen)
	return info.Size(), hash, err
}
