package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/dbscanvas/internal/cache"
	"github.com/jmylchreest/dbscanvas/internal/server"
)

var (
	// Serve command flags
	serveListen      string
	serveCacheDB     string
	serveMaxUploadMB int64
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve palette extraction over HTTP",
	Long: `Run an HTTP server exposing the extraction pipeline: an upload form at /,
a JSON API at /api/v1/palette, and a bar-chart view of cached results at
/api/v1/palette/{key}/chart.

Clustering runs are memoized by a content hash of the sampled points and
parameters. With --cache-db the memoization survives restarts and is
shared with "extract" runs pointing at the same file; otherwise an
in-memory cache is used.

Examples:
  # Serve on the default address with an in-memory cache
  dbscanvas serve

  # Persistent cache shared with the CLI
  dbscanvas serve --listen :9000 --cache-db ~/.cache/dbscanvas.db`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", server.DefaultAddr, "listen address")
	serveCmd.Flags().StringVar(&serveCacheDB, "cache-db", "", "SQLite file memoizing clustering runs (env: "+cacheDBEnv+")")
	serveCmd.Flags().Int64Var(&serveMaxUploadMB, "max-upload-mb", 32, "maximum upload size in MiB")
}

// runServe executes the serve command.
func runServe(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	level := hclog.Info
	if verbose {
		level = hclog.Debug
	}
	output := io.Writer(os.Stderr)
	if quiet {
		output = io.Discard
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "dbscanvas",
		Level:  level,
		Output: output,
	})

	store, err := openServeStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if serveMaxUploadMB < 1 {
		return fmt.Errorf("max upload size must be at least 1 MiB, got %d", serveMaxUploadMB)
	}

	srv := server.New(server.Config{
		Addr:           serveListen,
		Store:          store,
		MaxUploadBytes: serveMaxUploadMB << 20,
		Logger:         logger,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// openServeStore opens the configured SQLite store, or an in-memory one
// when no path is given.
func openServeStore() (cache.Store, error) {
	path := serveCacheDB
	if path == "" {
		path = os.Getenv(cacheDBEnv)
	}
	if path == "" {
		return cache.NewMemoryStore(0), nil
	}
	store, err := cache.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return store, nil
}
