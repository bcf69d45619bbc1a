package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qurancms/recitation-api/api"
	"github.com/qurancms/recitation-api/internal/services/uploads"
	"github.com/qurancms/recitation-api/pkg/logger"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Recitation API server",
	Long: `Start the Recitation API server with the configured settings.

The server exposes the staff upload endpoints, manifest sync and bulk
ingestion. When uploads.sweep_enabled is set it also runs the stuck-upload
sweeper in the background.

Example:
  recitation-api serve
  recitation-api serve --port 9090
  recitation-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	address := fmt.Sprintf("%s:%d", serverHost, serverPort)
	server := api.NewServer(address, a.dependencies())
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	var runner *uploads.Runner
	if cfg.Uploads.SweepEnabled {
		runner = uploads.NewRunner(a.uploads, a.locker, cfg.Uploads.SweepInterval, cfg.Uploads.SweepLeaseTTL, log.Named("sweeper"))
		runner.Start(ctx)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Info("server ready", zap.String("address", address))

	select {
	case <-ctx.Done():
		log.Info("shutting down server")
	case err = <-serverErr:
		log.Error("server stopped unexpectedly", zap.Error(err))
	}

	if runner != nil {
		runner.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error("server forced to shutdown", zap.Error(shutdownErr))
		return shutdownErr
	}

	log.Info("server gracefully stopped")
	return err
}

// cmdContext returns the command context, which is nil when a test calls RunE directly
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
