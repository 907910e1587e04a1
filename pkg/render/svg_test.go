package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/qrsmith/pkg/qr"
)

func TestRenderSVGExactDocument(t *testing.T) {
	m := qr.NewMatrix(2)
	m.SetDark(0, 0, true)
	m.SetDark(1, 1, true)

	want := `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="0 0 6 6" stroke="none">
	<rect width="100%" height="100%" fill="#FFFFFF"/>
	<path d="M2,2h1v1h-1z M3,3h1v1h-1z" fill="#000000"/>
</svg>
`

	doc := RenderSVG(m)
	if got := doc.String(); got != want {
		t.Errorf("document mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
	if doc.Size() != 2 {
		t.Errorf("Size = %d, want 2", doc.Size())
	}
	if doc.IntrinsicSize() != 6 {
		t.Errorf("IntrinsicSize = %d, want 6", doc.IntrinsicSize())
	}
}

func TestRenderSVGRowMajorOrder(t *testing.T) {
	// (1,0) scans before (0,1): y is the outer loop.
	m := qr.NewMatrix(2)
	m.SetDark(1, 0, true)
	m.SetDark(0, 1, true)

	doc := RenderSVG(m).String()
	first := strings.Index(doc, "M3,2h1v1h-1z")
	second := strings.Index(doc, "M2,3h1v1h-1z")
	if first < 0 || second < 0 {
		t.Fatalf("expected subpaths missing from document:\n%s", doc)
	}
	if first > second {
		t.Error("subpaths not in row-major order")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	res := encodeSample(t, "DETERMINISM 99")

	a := RenderSVG(res.Matrix).Bytes()
	b := RenderSVG(res.Matrix).Bytes()
	if !bytes.Equal(a, b) {
		t.Error("rendering the same matrix twice produced different documents")
	}
}

func TestRenderSVGSubpathCountMatchesDarkModules(t *testing.T) {
	res := encodeSample(t, "COUNT CHECK 123")

	doc := RenderSVG(res.Matrix)
	subpaths := subpathRe.FindAll(doc.Bytes(), -1)
	if got, want := len(subpaths), res.Matrix.DarkCount(); got != want {
		t.Errorf("subpath count = %d, want %d dark modules", got, want)
	}

	meta := qr.ExtractMetadata(qr.Request{}, res.Segments, res, qr.ClassifyMode(res.Segments))
	if meta.DarkModules != len(subpaths) {
		t.Errorf("metadata DarkModules = %d, want %d rendered subpaths", meta.DarkModules, len(subpaths))
	}
}

func TestRenderSVGEmptySymbolViewBox(t *testing.T) {
	res := encodeSample(t, "")

	doc := RenderSVG(res.Matrix)
	if !strings.Contains(doc.String(), `viewBox="0 0 25 25"`) {
		t.Errorf("version 1 symbol should declare a 25-module viewBox, got:\n%s", doc.String())
	}
}

// encodeSample encodes text with relaxed defaults for render tests.
func encodeSample(t *testing.T, text string) *qr.Result {
	t.Helper()
	req, err := qr.Resolve(qr.RawOptions{
		Text:       text,
		Mode:       qr.ModeAuto,
		EccLevel:   qr.EccMedium,
		MinVersion: 1,
		MaxVersion: 40,
		Mask:       qr.MaskAuto,
	})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	res, err := qr.Encode(req)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	return res
}
