package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/contestreplay/replay-api/api"
	"github.com/contestreplay/replay-api/api/types"
	"github.com/contestreplay/replay-api/api/version"
	"github.com/contestreplay/replay-api/internal/database"
	"github.com/contestreplay/replay-api/internal/metrics"
	"github.com/contestreplay/replay-api/internal/models"
	"github.com/contestreplay/replay-api/internal/services/contests"
	"github.com/contestreplay/replay-api/internal/services/snippets"
	"github.com/contestreplay/replay-api/internal/services/timeline"
	"github.com/contestreplay/replay-api/pkg/config"
	"github.com/contestreplay/replay-api/pkg/ffmpeg"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Contest Replay API server with the configured settings.

The server indexes the contest folders under the configured root and
serves contest browsing, audio playback, and snippet export endpoints.

Example:
  replay-api serve
  replay-api serve --port 9090
  replay-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Use config values if flags not provided
	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	deps, db, err := buildDependencies(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Expose build info on the public version endpoint
	version.Version = Version
	version.GitCommit = GitCommit

	server := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort))
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	fmt.Printf("Starting Contest Replay API server on %s:%d\n", serverHost, serverPort)

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	fmt.Printf("Server is ready to handle requests at %s:%d\n", serverHost, serverPort)

	// Wait for interrupt signal or server error
	select {
	case <-stop:
		fmt.Println("\nShutting down server...")
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		fmt.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return err
	}

	fmt.Println("Server gracefully stopped")
	return nil
}

// buildDependencies wires the service graph from configuration
func buildDependencies(cfg *config.Config) (*types.Dependencies, *database.DB, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.AutoMigrate(&models.Export{}); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	ffmpegClient := ffmpeg.New(cfg.Processing.FFmpegPath, cfg.Processing.FFprobePath, cfg.Processing.FFmpegTimeout)
	if err := ffmpegClient.ValidateBinaries(); err != nil {
		// Browsing still works without ffmpeg; extraction will fail per-request
		log.Printf("[ERROR] ffmpeg validation failed, snippet extraction unavailable: %v", err)
	}

	var m *metrics.Metrics
	if cfg.Monitoring.Enabled {
		m = metrics.NewMetrics()
	}

	contestSvc := contests.NewService(cfg.Contests.Root, cfg.Contests.MetadataFile, cfg.Playback.PreSeconds)
	registry := timeline.NewRegistry(ffmpegClient, m)
	extractor := snippets.NewExtractor(ffmpegClient, cfg.Processing.TempDir)
	exportSvc := snippets.NewService(db.DB, contestSvc, registry, extractor, m, cfg.Export.Dir, cfg.Export.MaxSpan, cfg.Export.MinDuration)

	return &types.Dependencies{
		DB:             db,
		ContestService: contestSvc,
		Registry:       registry,
		ExportService:  exportSvc,
		Metrics:        m,
	}, db, nil
}
