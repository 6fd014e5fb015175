package export

import (
	"strings"
	"testing"

	"github.com/san-kum/softgrid/internal/softbody"
)

func TestLatticeSVG(t *testing.T) {
	frame := []softbody.Vec3{
		{X: 0, Y: 0}, {X: 1, Y: 0},
		{X: 0, Y: 1}, {X: 1, Y: 1},
	}

	svg := LatticeSVG(frame, 2, 2, 100)

	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("missing XML header")
	}
	// 2x2 grid: 2 horizontal + 2 vertical springs, 4 nodes.
	if got := strings.Count(svg, "<line"); got != 4 {
		t.Errorf("expected 4 spring segments, got %d", got)
	}
	if got := strings.Count(svg, "<circle"); got != 4 {
		t.Errorf("expected 4 nodes, got %d", got)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("missing closing tag")
	}
}

func TestLatticeSVG_BadInput(t *testing.T) {
	if svg := LatticeSVG(nil, 2, 2, 100); svg != "" {
		t.Error("expected empty output for mismatched frame")
	}
	if svg := LatticeSVG([]softbody.Vec3{{}}, 0, 1, 100); svg != "" {
		t.Error("expected empty output for zero rows")
	}
}

func TestLatticeSVG_CoincidentNodes(t *testing.T) {
	// A degenerate bounding box must still produce a valid nonzero view.
	frame := []softbody.Vec3{{}, {}}
	svg := LatticeSVG(frame, 1, 2, 100)
	if !strings.Contains(svg, "<svg") {
		t.Error("expected valid SVG for coincident nodes")
	}
}
