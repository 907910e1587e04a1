package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/qrsmith/pkg/qr"
)

// Border is the quiet-zone width in modules on every edge. Fixed policy,
// not configurable.
const Border = 2

// Fill colors for the produced document.
const (
	lightFill = "#FFFFFF"
	darkFill  = "#000000"
)

// Document is a self-contained SVG rendering of a module matrix. It carries
// the matrix and its typed dimensions alongside the serialized text so the
// raster exporter can work from structured data instead of re-parsing
// generated output.
type Document struct {
	size   int // modules per side; 0 when unknown
	border int
	matrix qr.Matrix
	svg    []byte
}

// Bytes returns the serialized SVG document.
func (d *Document) Bytes() []byte {
	return d.svg
}

// String returns the serialized SVG document as a string.
func (d *Document) String() string {
	return string(d.svg)
}

// Size returns the matrix side length in modules, or 0 when unknown.
func (d *Document) Size() int {
	return d.size
}

// IntrinsicSize returns the declared square viewing dimension in modules
// (size plus the quiet zone on both edges), or 0 when unknown.
func (d *Document) IntrinsicSize() int {
	if d.size <= 0 {
		return 0
	}
	return d.size + 2*d.border
}

// RenderSVG converts a module matrix into a vector document.
//
// The drawing instruction set is one closed unit-square subpath per dark
// module, offset by the border, scanned row-major (y outer, x inner) with no
// run-length merging. Light cells emit nothing. Output is deterministic:
// the same matrix always yields the identical byte sequence.
func RenderSVG(m qr.Matrix) *Document {
	size := m.Size()
	viewport := size + 2*Border

	var path bytes.Buffer
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if !m.Dark(x, y) {
				continue
			}
			if path.Len() > 0 {
				path.WriteByte(' ')
			}
			fmt.Fprintf(&path, "M%d,%dh1v1h-1z", x+Border, y+Border)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" viewBox=\"0 0 %d %d\" stroke=\"none\">\n",
		viewport, viewport)
	fmt.Fprintf(&buf, "\t<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", lightFill)
	fmt.Fprintf(&buf, "\t<path d=\"%s\" fill=\"%s\"/>\n", path.String(), darkFill)
	buf.WriteString("</svg>\n")

	return &Document{
		size:   size,
		border: Border,
		matrix: m,
		svg:    buf.Bytes(),
	}
}
