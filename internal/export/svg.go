// Package export renders lattice snapshots to SVG for inspection outside
// the terminal.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/softgrid/internal/softbody"
)

// LatticeSVG draws one frame of the grid: a line per spring, a dot per
// node. The view box is derived from the frame's bounding box with a small
// margin; scale is pixels per world unit.
func LatticeSVG(frame []softbody.Vec3, rows, cols int, scale float64) string {
	if len(frame) != rows*cols || rows < 1 || cols < 1 {
		return ""
	}

	minX, maxX := frame[0].X, frame[0].X
	minY, maxY := frame[0].Y, frame[0].Y
	for _, p := range frame {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	margin := 0.05 * max(maxX-minX, maxY-minY)
	if margin == 0 {
		margin = 0.05
	}
	minX -= margin
	minY -= margin
	maxX += margin
	maxY += margin

	width := (maxX - minX) * scale
	height := (maxY - minY) * scale

	// SVG y grows downward; world y grows upward.
	px := func(p softbody.Vec3) (float64, float64) {
		return (p.X - minX) * scale, (maxY - p.Y) * scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#00ccff" stroke-width="1">
`, width, height, width, height))

	line := func(a, b softbody.Vec3) {
		x1, y1 := px(a)
		x2, y2 := px(b)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x1, y1, x2, y2))
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			p := frame[i*cols+j]
			if j+1 < cols {
				line(p, frame[i*cols+j+1])
			}
			if i+1 < rows {
				line(p, frame[(i+1)*cols+j])
			}
		}
	}

	sb.WriteString("</g>\n<g fill=\"#00ff88\">\n")
	for _, p := range frame {
		cx, cy := px(p)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1.5"/>
`, cx, cy))
	}
	sb.WriteString("</g>\n</svg>")

	return sb.String()
}
