package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qurancms/recitation-api/pkg/config"
	apperrors "github.com/qurancms/recitation-api/pkg/errors"
	"github.com/qurancms/recitation-api/pkg/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recitation-api",
	Short: "Recitation API server",
	Long: `Recitation API - ingestion of Quran recitation audio tracks

Staff upload one MP3 per surah into an S3-compatible bucket, either through
browser-driven multipart uploads or in bulk. Finished tracks are registered
per recitation asset and published as a recitations JSON manifest.

Features:
  • Multipart upload coordination with presigned part URLs
  • Filename validation against the 114 surahs
  • Bulk ingestion with all-or-nothing rollback
  • Stuck-upload sweeping
  • Manifest publishing per asset version`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); overrides config")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig initializes configuration and the process logger for commands
// that need them. version and help never call it.
func loadConfig(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	if err := config.Init(); err != nil {
		return nil, nil, fmt.Errorf("initializing config: %w", err)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, nil, err
	}

	logCfg := logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
		Caller:     cfg.Logging.EnableCaller,
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		logCfg.Level = level
	}
	if jsonLogs, _ := cmd.Flags().GetBool("json-logs"); jsonLogs {
		logCfg.Format = "json"
	}

	log, err := logger.Init(logCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, log, nil
}

// parseAssetID parses a positional asset id argument
func parseAssetID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.InvalidRequest("asset-id", fmt.Sprintf("%q is not a positive integer", arg))
	}
	return uint(id), nil
}
