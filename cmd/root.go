package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"github.com/AnyUserName/stylo-cli/internal/config"
	"github.com/AnyUserName/stylo-cli/internal/engine"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version    = "0.1.0"
	verbose    bool
	configFile string

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "stylo",
	Short: "Developer utility toolkit: image compression plus text and code tools",
	Long: `stylo bundles small single-purpose tools behind one binary.

Images are re-encoded locally (compress, resize, strip-exif). Text tools
read their input from arguments, --file, --paste or stdin and print the
result. "stylo serve" exposes everything over a local HTTP API with a
live compress session per WebSocket.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
}

// Execute runs the root command. The returned error has already been
// reported on stderr.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", apperr.UserMessage(err))
		logger.Debug("command failed", zap.Error(err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: stylo.yaml in ., ./configs or ~/.config/stylo)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"stylo %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

func setup(*cobra.Command, []string) error {
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg = c

	l, err := newLogger(c.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger = l
	return nil
}

func newLogger(lc config.LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if !lc.JSON {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	zc.DisableStacktrace = true
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func newEngine() *engine.Engine {
	return engine.New(logger.Named("engine"))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	logger.Sugar().Debugf(format, args...)
}
