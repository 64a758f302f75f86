package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/AnyUserName/stylo-cli/internal/present"
)

// New creates an empty report.
func New(format string, quality int, outDir string) *Report {
	return &Report{
		Version:     SupportedReportVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Format:      format,
		Quality:     quality,
		OutputDir:   outDir,
		Files:       make(map[string]Entry),
	}
}

// ComputeStats recalculates aggregate statistics from entries. Input
// bytes count only files that produced an output, so the overall saving
// compares like with like.
func (r *Report) ComputeStats() {
	var s Stats
	s.TotalFiles = len(r.Files)
	for _, e := range r.Files {
		switch {
		case e.Error != "":
			s.Failed++
		case e.Skipped:
			s.SkippedRegress++
		case e.Output != nil:
			s.Written++
			s.TotalInputBytes += e.Source.Size
			s.TotalOutputBytes += e.Output.Size
		}
	}
	s.SavedPercent = present.SavedPercent(s.TotalInputBytes, s.TotalOutputBytes)
	r.Stats = s
}

// WriteJSON serializes the report to path.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
