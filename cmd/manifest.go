package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qurancms/recitation-api/pkg/logger"
)

var syncManifestCmd = &cobra.Command{
	Use:   "sync-manifest <asset-id>",
	Short: "Publish the recitations JSON for an asset",
	Long: `Render the recitations JSON for an asset, upload it to the bucket and
attach it to the asset's latest version.

Example:
  recitation-api sync-manifest 42
  recitation-api sync-manifest 42 --print`,
	Args: cobra.ExactArgs(1),
	RunE: runSyncManifest,
}

func init() {
	rootCmd.AddCommand(syncManifestCmd)
	syncManifestCmd.Flags().Bool("print", false, "print the manifest instead of publishing it")
}

func runSyncManifest(cmd *cobra.Command, args []string) error {
	assetID, err := parseAssetID(args[0])
	if err != nil {
		return err
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

	out := cmd.OutOrStdout()
	if printOnly, _ := cmd.Flags().GetBool("print"); printOnly {
		body, err := a.manifest.Render(cmdContext(cmd), assetID)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(body))
		return err
	}

	result, err := a.manifest.SyncAssetManifest(cmdContext(cmd), assetID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Recitations JSON synced: %s (%d tracks)\n", result.Filename, result.Tracks)
	if result.PublicURL != "" {
		fmt.Fprintf(out, "URL: %s\n", result.PublicURL)
	}
	return nil
}
