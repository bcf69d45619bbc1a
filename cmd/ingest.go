package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qurancms/recitation-api/internal/services/bulk"
	"github.com/qurancms/recitation-api/pkg/logger"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <asset-id> <directory>",
	Short: "Bulk ingest every MP3 in a directory",
	Long: `Store every NNN.mp3 file of a directory as a finalized track of an asset.

Filename errors and existing surahs are skipped. Any other failure rolls
back the whole batch and deletes the objects it wrote.

Example:
  recitation-api ingest 42 ./husary`,
	Args: cobra.ExactArgs(2),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	assetID, err := parseAssetID(args[0])
	if err != nil {
		return err
	}
	files, err := bulk.FromDirectory(args[1])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .mp3 files in %s", args[1])
	}

	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	a, err := newApp(cmdContext(cmd), cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.bulk.Ingest(cmdContext(cmd), assetID, files)
	if err != nil {
		return err
	}
	if err := printJSON(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	if result.OtherErrors > 0 {
		return fmt.Errorf("batch rolled back: %d error(s)", result.OtherErrors)
	}
	return nil
}
