package cmd

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/qurancms/recitation-api/pkg/logger"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Abort stuck multipart uploads once",
	Long: `Abort in-progress multipart uploads older than uploads.stuck_threshold_hours
and delete their unfinished track rows.

Example:
  recitation-api sweep --dry-run`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().Bool("dry-run", false, "report what would be aborted without aborting")
}

func runSweep(cmd *cobra.Command, args []string) error {
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

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	report, err := a.uploads.Sweep(cmdContext(cmd), dryRun)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), report)
}

// printJSON writes v indented, one document per call
func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
