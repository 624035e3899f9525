// dbscanvas - density-based dominant colour extraction
//
// dbscanvas extracts dominant colour palettes from images by clustering
// pixel samples with DBSCAN, and serves the same pipeline over HTTP.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/dbscanvas/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
