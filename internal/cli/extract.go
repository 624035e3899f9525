package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/dbscanvas/internal/cache"
	"github.com/jmylchreest/dbscanvas/internal/cluster"
	"github.com/jmylchreest/dbscanvas/internal/colour"
	"github.com/jmylchreest/dbscanvas/internal/image"
)

// cacheDBEnv is the environment fallback for the --cache-db flag.
const cacheDBEnv = "DBSCANVAS_CACHE_DB"

var (
	// Extract command flags
	extractEps           float64
	extractMinSamples    int
	extractMinPercentage float64
	extractSampleDim     int
	extractAlgorithm     string
	extractColours       int
	extractSeed          int64
	extractWorkers       int
	extractFormat        string
	extractOutput        string
	extractShowPreview   bool
	extractSort          string
	extractCacheDB       string
)

// extractCmd represents the extract command.
var extractCmd = &cobra.Command{
	Use:   "extract <image|url>",
	Short: "Extract the dominant colour palette from an image",
	Long: `Extract the dominant colours of an image with density-based clustering.

The image is resized to a square sample grid, every pixel becomes a
normalized RGB point, and DBSCAN groups the dense colour regions into
clusters. Each cluster is reported as its mean colour together with its
share of the sampled points; clusters below the minimum share are
hidden. Unlike k-means, the number of colours is discovered rather than
chosen, and rare colours are discarded as noise.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract a palette with the default parameters
  dbscanvas extract wallpaper.jpg

  # Looser clustering: larger radius, smaller density requirement
  dbscanvas extract --eps 0.12 --min-samples 30 wallpaper.jpg

  # Show every cluster, even tiny ones
  dbscanvas extract --min-percentage 0 wallpaper.jpg

  # JSON output, directly from a URL
  dbscanvas extract --format json https://example.com/photo.png

  # Terminal preview blocks, ordered by hue
  dbscanvas extract --preview --sort hue wallpaper.jpg

  # Memoize clustering runs in a SQLite file
  dbscanvas extract --cache-db ~/.cache/dbscanvas.db wallpaper.jpg

  # k-means with a fixed colour count instead of DBSCAN
  dbscanvas extract --algorithm kmeans --colours 8 wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Float64VarP(&extractEps, "eps", "e", cluster.DefaultEps, "neighbourhood radius in normalized RGB space")
	extractCmd.Flags().IntVarP(&extractMinSamples, "min-samples", "m", cluster.DefaultMinSamples, "minimum neighbourhood size for a core point")
	extractCmd.Flags().Float64VarP(&extractMinPercentage, "min-percentage", "p", colour.DefaultMinPercentage, "hide clusters below this share of sampled points")
	extractCmd.Flags().IntVarP(&extractSampleDim, "sample-dim", "d", image.DefaultSampleDim, "side length of the square sample grid")
	extractCmd.Flags().StringVarP(&extractAlgorithm, "algorithm", "a", string(colour.AlgorithmDBSCAN), "extraction algorithm (dbscan, kmeans)")
	extractCmd.Flags().IntVarP(&extractColours, "colours", "c", 8, "number of colours for the kmeans algorithm")
	extractCmd.Flags().Int64Var(&extractSeed, "seed", 1, "random seed for the kmeans algorithm")
	extractCmd.Flags().IntVarP(&extractWorkers, "workers", "w", 1, "goroutines for neighbourhood counting")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "hex", "output format (hex, rgb, json, table)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractShowPreview, "preview", false, "show colour previews in terminal")
	extractCmd.Flags().StringVar(&extractSort, "sort", "count", "swatch ordering (count, hue)")
	extractCmd.Flags().StringVar(&extractCacheDB, "cache-db", "", "SQLite file memoizing clustering runs (env: "+cacheDBEnv+")")
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	imagePath := args[0]

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	config := colour.ExtractorConfig{
		Algorithm:     colour.Algorithm(extractAlgorithm),
		Eps:           extractEps,
		MinSamples:    extractMinSamples,
		MinPercentage: extractMinPercentage,
		SampleDim:     extractSampleDim,
		Colors:        extractColours,
		Workers:       extractWorkers,
		Seed:          extractSeed,
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if extractSort != "count" && extractSort != "hue" {
		return fmt.Errorf("invalid sort order: %s (valid: count, hue)", extractSort)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")

	store, err := openCacheStore()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Loading image: %s\n", imagePath)
	}

	loader := image.NewSmartLoader()
	img, err := loader.Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	if verbose {
		bounds := img.Bounds()
		fmt.Fprintf(os.Stderr, "Image loaded: %dx%d\n", bounds.Dx(), bounds.Dy())
		fmt.Fprintf(os.Stderr, "Clustering %dx%d samples (%s, eps=%g, min-samples=%d)...\n",
			extractSampleDim, extractSampleDim, extractAlgorithm, extractEps, extractMinSamples)
	}

	extractor, err := colour.NewExtractor(config, store)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	palette, err := extractor.Extract(img)
	if err != nil {
		return fmt.Errorf("failed to extract palette: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Found %d cluster(s), %d above the minimum share\n",
			palette.ClustersFound, palette.Len())
	}

	// An empty palette is a valid result, not a failure; say why it is
	// empty and still emit the (empty) requested format.
	if palette.Empty() {
		fmt.Fprintf(os.Stderr, "No palette: %s\n", palette.EmptyReason())
	}

	if extractSort == "hue" {
		palette.SortByHue()
	}

	output, err := formatPalette(palette, extractFormat, showPreview())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if extractOutput != "" {
		if err := os.WriteFile(extractOutput, []byte(output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote palette to %s\n", extractOutput)
		}
	} else {
		fmt.Print(output)
	}

	return nil
}

// openCacheStore opens the SQLite memoization store named by --cache-db
// or the environment, or returns nil when caching is off.
func openCacheStore() (cache.Store, error) {
	path := extractCacheDB
	if path == "" {
		path = os.Getenv(cacheDBEnv)
	}
	if path == "" {
		return nil, nil
	}
	store, err := cache.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return store, nil
}

// showPreview reports whether ANSI previews should be emitted: only when
// requested, writing to a terminal, and not into a file.
func showPreview() bool {
	if !extractShowPreview || extractOutput != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
