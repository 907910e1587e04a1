package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/qr"
)

const (
	// ScaleFactor is the fixed raster magnification: one logical module
	// maps to 16 output pixels regardless of symbol version.
	ScaleFactor = 16

	// DefaultIntrinsicSize is the assumed viewing dimension when a
	// document's declared size cannot be determined. Export must always
	// produce some image.
	DefaultIntrinsicSize = 512

	// maxRasterDim caps the drawing surface side length in pixels.
	maxRasterDim = 1 << 14
)

// Exporter rasterizes vector documents into PNG byte streams. The drawing
// surface is owned by the exporter rather than reached through ambient
// globals, so tests can substitute a smaller surface cap.
type Exporter struct {
	// MaxDim is the largest permissible raster side length in pixels.
	MaxDim int
}

// NewExporter creates an exporter with the default surface cap.
func NewExporter() *Exporter {
	return &Exporter{MaxDim: maxRasterDim}
}

// PNG rasterizes doc at the fixed scale factor and returns the encoded PNG.
//
// The intrinsic size comes from the document's typed dimensions when
// present, then from a best-effort viewBox parse, then from the fixed
// default. Target dimensions are round(intrinsic x 16). Sampling is
// nearest-neighbor; smoothing would blur module edges.
//
// Fails with RENDER_UNAVAILABLE when no drawing surface of the target size
// can be obtained, and with IMAGE_DECODE_FAILED when the document has no
// typed matrix and its SVG text cannot be decoded.
func (e *Exporter) PNG(doc *Document) ([]byte, error) {
	m := doc.matrix
	if m.Size() == 0 {
		decoded, err := DecodeSVG(doc.svg)
		if err != nil {
			return nil, err
		}
		m = decoded.matrix
		if doc.size <= 0 {
			doc = decoded
		}
	}

	target := e.targetDim(doc)
	maxDim := e.MaxDim
	if maxDim <= 0 {
		maxDim = maxRasterDim
	}
	if target <= 0 || target > maxDim {
		return nil, errors.New(errors.ErrCodeRenderUnavailable,
			"cannot obtain a %dx%d drawing surface", target, target)
	}

	base := drawModules(m)
	scaled := imaging.Resize(base, target, target, imaging.NearestNeighbor)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// targetDim computes the raster side length for doc.
func (e *Exporter) targetDim(doc *Document) int {
	intrinsic := float64(DefaultIntrinsicSize)
	if doc.IntrinsicSize() > 0 {
		intrinsic = float64(doc.IntrinsicSize())
	} else if w, ok := parseViewBox(doc.svg); ok {
		intrinsic = w
	}
	return int(math.Round(intrinsic * ScaleFactor))
}

// drawModules paints the matrix into a pixel buffer at one pixel per module,
// quiet zone included.
func drawModules(m qr.Matrix) *image.NRGBA {
	viewport := m.Size() + 2*Border
	img := image.NewNRGBA(image.Rect(0, 0, viewport, viewport))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	dark := color.NRGBA{A: 0xFF}
	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			if m.Dark(x, y) {
				img.SetNRGBA(x+Border, y+Border, dark)
			}
		}
	}
	return img
}

var (
	viewBoxRe = regexp.MustCompile(`viewBox="0 0 ([0-9.Ee+-]+) ([0-9.Ee+-]+)"`)
	subpathRe = regexp.MustCompile(`M(\d+),(\d+)h1v1h-1z`)
	pathRe    = regexp.MustCompile(`<path d="([^"]*)"`)
)

// parseViewBox extracts the declared square width from an SVG byte stream.
// Returns false for missing, non-finite, or non-positive values.
func parseViewBox(svg []byte) (float64, bool) {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return 0, false
	}
	w, err := strconv.ParseFloat(string(match[1]), 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return 0, false
	}
	return w, true
}

// DecodeSVG rebuilds a Document from a produced vector document's byte
// stream. It is the path for callers holding only SVG text; callers holding
// the Document from [RenderSVG] never need it.
//
// The dark-module set is recovered from the path's unit-square subpaths and
// the geometry from the viewBox; when the viewBox is unusable the viewport
// is inferred from the outermost dark module. A document without a path
// element fails with IMAGE_DECODE_FAILED.
func DecodeSVG(svg []byte) (*Document, error) {
	pm := pathRe.FindSubmatch(svg)
	if pm == nil {
		return nil, errors.New(errors.ErrCodeImageDecodeFailed,
			"vector document has no path element")
	}

	type cell struct{ x, y int }
	var cells []cell
	maxCoord := 0
	for _, sp := range subpathRe.FindAllSubmatch(pm[1], -1) {
		x, _ := strconv.Atoi(string(sp[1]))
		y, _ := strconv.Atoi(string(sp[2]))
		cells = append(cells, cell{x, y})
		if x > maxCoord {
			maxCoord = x
		}
		if y > maxCoord {
			maxCoord = y
		}
	}

	size := 0
	if w, ok := parseViewBox(svg); ok {
		size = int(math.Round(w)) - 2*Border
	} else if len(cells) > 0 {
		// Outermost dark module sits at size+Border-1 in a well-formed
		// symbol (the finder patterns reach the matrix edge).
		size = maxCoord - Border + 1
	}
	if size <= 0 {
		return nil, errors.New(errors.ErrCodeImageDecodeFailed,
			"cannot determine module grid size")
	}

	m := qr.NewMatrix(size)
	for _, c := range cells {
		m.SetDark(c.x-Border, c.y-Border, true)
	}

	return &Document{
		size:   size,
		border: Border,
		matrix: m,
		svg:    svg,
	}, nil
}

// SaveFile writes data to path atomically: the bytes land in a scoped
// temporary file that is renamed into place on success and removed on every
// other exit path.
func SaveFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".qrsmith-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
