package report

// Report is the JSON summary of a batch compress run.
type Report struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Format      string           `json:"format"`
	Quality     int              `json:"quality"`
	OutputDir   string           `json:"output_dir"`
	RunInfo     *RunInfo         `json:"run_info,omitempty"`
	Files       map[string]Entry `json:"files"`
	Stats       Stats            `json:"stats"`
}

// RunInfo captures run parameters for diagnostics.
type RunInfo struct {
	Workers       int    `json:"workers"`
	Encoders      string `json:"encoders"`
	NoRegressSize bool   `json:"no_regress_size,omitempty"`
}

// Entry is one source file and what became of it.
type Entry struct {
	Source       SourceInfo  `json:"source"`
	Output       *OutputInfo `json:"output,omitempty"`
	SavedPercent int         `json:"saved_percent"`
	Skipped      bool        `json:"skipped,omitempty"` // output was not smaller than the source
	Error        string      `json:"error,omitempty"`
}

// SourceInfo holds metadata about the input file.
type SourceInfo struct {
	Path   string `json:"path"`
	MIME   string `json:"mime"`
	Size   int64  `json:"size"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// OutputInfo describes the written file.
type OutputInfo struct {
	Path   string `json:"path"` // relative to output_dir
	Format string `json:"format"`
	Size   int64  `json:"size"`
	Hash   string `json:"hash"` // first 16 hex chars of xxhash64
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalFiles       int   `json:"total_files"`
	Written          int   `json:"written"`
	Failed           int   `json:"failed"`
	SkippedRegress   int   `json:"skipped_regress,omitempty"`
	SavedPercent     int   `json:"saved_percent"`
}

// SupportedReportVersion is the current schema version.
const SupportedReportVersion = 1
