package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	c := DefaultChart("Kc vs θ/τ <PI>")
	if err := c.WriteSVG(&buf, []float64{0.1, 0.5, 1.0}, []float64{4, 2, 1}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if strings.Count(out, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(out, " L"))
	}
	if !strings.Contains(out, "&lt;PI&gt;") {
		t.Error("caption should be escaped")
	}
	// First point is the top-left of the padded box: x = 10% of width.
	if !strings.Contains(out, `d="M53.3,`) {
		t.Errorf("unexpected first point:\n%s", out)
	}
}

func TestWriteSVG_FlatSeries(t *testing.T) {
	var buf bytes.Buffer
	if err := DefaultChart("").WriteSVG(&buf, []float64{1, 2}, []float64{3, 3}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if strings.Contains(buf.String(), "NaN") {
		t.Error("flat series should not produce NaN coordinates")
	}
}

func TestWriteSVG_TooFewPoints(t *testing.T) {
	err := DefaultChart("").WriteSVG(&bytes.Buffer{}, []float64{1}, []float64{1})
	if !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints, got %v", err)
	}
	err = DefaultChart("").WriteSVG(&bytes.Buffer{}, []float64{1, 2}, []float64{1})
	if !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("expected ErrTooFewPoints for mismatched lengths, got %v", err)
	}
}
