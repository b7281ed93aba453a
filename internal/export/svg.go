// Package export writes swept settings as standalone SVG line charts.
package export

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"gonum.org/v1/gonum/floats"
)

var ErrTooFewPoints = errors.New("export: need at least two points of equal length")

type Chart struct {
	Width   int
	Height  int
	Stroke  string
	Caption string
}

func DefaultChart(caption string) Chart {
	return Chart{Width: 640, Height: 360, Stroke: "#00ccff", Caption: caption}
}

// WriteSVG draws ys against xs as a single path, padded by 10% of each range.
func (c Chart) WriteSVG(w io.Writer, xs, ys []float64) error {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ErrTooFewPoints
	}

	minX, maxX := floats.Min(xs), floats.Max(xs)
	minY, maxY := floats.Min(ys), floats.Max(ys)

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	width, height := float64(c.Width), float64(c.Height)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, c.Width, c.Height, c.Width, c.Height)

	if c.Caption != "" {
		fmt.Fprintf(&sb, `<text x="10" y="20" fill="#888899" font-family="monospace" font-size="14">%s</text>
`, html.EscapeString(c.Caption))
	}

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, c.Stroke)
	for i := range xs {
		x := (xs[i] - minX) / rangeX * width
		y := height - (ys[i]-minY)/rangeY*height
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
</svg>
`)

	_, err := io.WriteString(w, sb.String())
	return err
}
