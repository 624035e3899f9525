// Package cli provides the command-line interface for dbscanvas.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/dbscanvas/internal/version"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dbscanvas",
	Short: "Density-based dominant colour extraction",
	Long: `dbscanvas extracts the dominant colours of an image by clustering its
pixels with DBSCAN: pixels are sampled into normalized RGB points, dense
regions become clusters, and each cluster's mean colour is reported with
its share of the image. Sparse colours end up as noise instead of
polluting the palette.

Use "extract" for one-off extractions from files or URLs, or "serve" to
run the same pipeline as an HTTP service with an upload form.`,
	Version:      version.Short(),
	SilenceUsage: true,
}

// Execute runs the root command. It is called once, by main.
func Execute() error {
	return rootCmd.Execute()
}

// normalizeFlags accepts American spellings for the flags named in
// British English.
func normalizeFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "colors" {
		name = "colours"
	}
	return pflag.NormalizedName(name)
}

func init() {
	rootCmd.SetGlobalNormalizationFunc(normalizeFlags)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(serveCmd)
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
