package cli

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/dbscanvas/internal/colour"
)

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(palette, showPreview), nil
	case "rgb":
		return formatRGB(palette, showPreview), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case "table":
		return formatTable(palette, showPreview), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json, table)", format)
	}
}

// formatHex formats the palette as hex colour codes, one per line.
func formatHex(palette *colour.Palette, showPreview bool) string {
	var b strings.Builder
	for _, s := range palette.Swatches {
		if showPreview {
			b.WriteString(colour.FormatSwatchPreview(s, 8))
		} else {
			b.WriteString(s.Hex())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// formatRGB formats the palette as RGB values, one per line.
func formatRGB(palette *colour.Palette, showPreview bool) string {
	var b strings.Builder
	for _, s := range palette.Swatches {
		if showPreview {
			b.WriteString(colour.ColourPreview(s.RGB, 8))
			b.WriteString("  ")
		}
		b.WriteString(s.RGB.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// formatTable formats the palette as an aligned text table with counts
// and shares.
func formatTable(palette *colour.Palette, showPreview bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %-9s %-18s %8s %8s\n", "#", "HEX", "RGB", "COUNT", "SHARE")
	for i, s := range palette.Swatches {
		fmt.Fprintf(&b, "%-4d %-9s %-18s %8d %7.1f%%", i+1, s.Hex(), s.RGB.String(), s.Count, s.Percentage)
		if showPreview {
			b.WriteString("  ")
			b.WriteString(colour.ColourPreview(s.RGB, 4))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\n%d points sampled, %d cluster(s) found, %d shown\n",
		palette.TotalPoints, palette.ClustersFound, palette.Len())
	return b.String()
}
