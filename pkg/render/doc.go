// Package render turns a QR module matrix into output artifacts.
//
// # Overview
//
// The package provides two stages:
//
//   - [RenderSVG]: a deterministic vector rendering of the matrix as a
//     self-contained SVG [Document]
//   - [Exporter]: rasterization of a Document to PNG at a fixed 16x
//     magnification with nearest-neighbor sampling
//
// # Vector Output
//
// RenderSVG declares a square viewing region of side size+4 (a fixed
// two-module quiet zone on every edge), paints one light background
// rectangle, and emits one dark path whose subpaths are the unit squares of
// every dark module in row-major order. For a fixed matrix the output is
// byte-for-byte reproducible.
//
// # Raster Output
//
// The Exporter prefers the typed size carried by the Document and only
// falls back to re-parsing the declared viewBox (then to a fixed default of
// 512) when handed a bare SVG byte stream via [DecodeSVG]. Scaling uses
// nearest-neighbor sampling so module edges stay sharp; smoothing would blur
// them and risk misreads.
//
//	doc := render.RenderSVG(res.Matrix)
//	pngBytes, err := render.NewExporter().PNG(doc)
//
// # PDF Output
//
// [ToPDF] converts the SVG via the external rsvg-convert tool (librsvg).
package render
