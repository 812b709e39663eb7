package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimsight/claimsight/internal/metrics"
	"github.com/claimsight/claimsight/internal/pipeline"
	"github.com/claimsight/claimsight/internal/server"
	"github.com/claimsight/claimsight/internal/store"
)

var (
	serveHost     string
	servePort     int
	ocrProvider   string
	ocrModel      string
	askDelay      time.Duration
	noCache       bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the claim extraction HTTP service",
	Long: `Serve starts the HTTP API:
- POST /extract accepts a claim document upload and returns the
  extracted record with a document id
- POST /ask answers the medication question about a stored document
- GET /health and GET /health/storage report liveness and store stats

Example:
  claimsight serve
  claimsight serve --port 9000 --ocr-provider gemini
  CLAIMSIGHT_OCR_PROVIDER=openai OPENAI_API_KEY=sk-... claimsight serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	serveCmd.Flags().StringVar(&ocrProvider, "ocr-provider", "", "vision OCR provider (gemini, openai; empty for demo fallback)")
	serveCmd.Flags().StringVar(&ocrModel, "ocr-model", "", "vision model name")
	serveCmd.Flags().DurationVar(&askDelay, "ask-delay", -1, "fixed /ask processing delay (overrides config)")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the OCR result cache")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if ocrProvider != "" {
		cfg.OCR.Provider = ocrProvider
	}
	if ocrModel != "" {
		cfg.OCR.Model = ocrModel
	}
	if askDelay >= 0 {
		cfg.Server.AskDelay = askDelay
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	// Re-resolve the API key in case the provider came from a flag.
	switch cfg.OCR.Provider {
	case "gemini":
		if cfg.OCR.APIKey == "" {
			cfg.OCR.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	case "openai":
		if cfg.OCR.APIKey == "" {
			cfg.OCR.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	logger := newLogger(cfg.Log)

	m := metrics.New()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	p.WithMetrics(m)

	srv := server.New(cfg, p, store.New(), m, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
		if err := srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	}
}
