package cmd

import (
	"github.com/AnyUserName/stylo-cli/internal/blobstore"
	"github.com/AnyUserName/stylo-cli/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the toolkit over a local HTTP API",
	Long: `Starts the local HTTP API:

  GET  /api/tools[?category=&q=]   tool catalog, category then search
  POST /api/text/:tool              run a text tool ({"input", "options"})
  POST /api/image/compress          multipart "file", quality, format
  POST /api/image/resize            multipart "file", width, height, preset
  POST /api/image/strip-exif        multipart "file"
  POST /api/image/qr                text, size, bg, fg, level
  POST /api/image/svg-to-png        multipart "file", width
  POST /api/image/favicon           multipart "file", answers a zip
  GET  /ws/compress                 live compress session
  GET  /blob/:id                    display URLs minted by live sessions

Stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		store := blobstore.New()
		srv := server.New(server.Options{
			Addr:            addr,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
			ReadTimeout:     cfg.Server.ReadTimeout,
			Quality:         &cfg.Image.Quality,
			Format:          cfg.Image.Format,
			Debounce:        cfg.Image.Debounce,
			Logger:          logger.Named("server"),
			Engine:          newEngine(),
			Store:           store,
			Tools:           registry,
		})
		err := srv.Run(cmd.Context())
		created, released := store.Counters()
		logger.Debug("display urls", zap.Int64("created", created), zap.Int64("released", released), zap.Int("live", store.Live()))
		return err
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default: config server.addr)")
	rootCmd.AddCommand(serveCmd)
}
