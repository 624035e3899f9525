package colour

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// ColourPreview returns an ANSI-coloured preview block for a colour.
// Width specifies how many characters wide the block should be.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	bgColour := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bgColour + strings.Repeat(" ", width) + ansiReset
}

// ColourPreviewWithText returns a preview block with text overlaid in
// whichever of black or white contrasts better with the background.
func ColourPreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	var fg string
	if IsLight(c) {
		fg = ansiFgPrefix + "0;0;0" + ansiSuffix
	} else {
		fg = ansiFgPrefix + "255;255;255" + ansiSuffix
	}
	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)

	display := text
	if len(text) > width {
		display = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		display = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bg + fg + display + ansiReset
}

// IsLight reports whether a colour reads as light, using CIE Lab
// lightness. Dark text is legible on light colours and vice versa.
func IsLight(c RGB) bool {
	col := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	l, _, _ := col.Lab()
	return l > 0.5
}

// FormatSwatchPreview formats a swatch with its preview block, hex code
// and share.
func FormatSwatchPreview(s Swatch, width int) string {
	return fmt.Sprintf("%s %s %5.1f%%", ColourPreview(s.RGB, width), s.Hex(), s.Percentage)
}
