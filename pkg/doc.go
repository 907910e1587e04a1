// Package pkg provides the core libraries for qrsmith QR code generation.
//
// # Overview
//
// Qrsmith turns text into QR code symbols and exports them as vector and
// raster images. The pkg directory is organized into four main areas:
//
//  1. [qr] - Domain logic (option resolution, segmentation, encoding, metadata)
//  2. [render] - Output generation (SVG documents, PNG rasterization, PDF)
//  3. [pipeline] - Orchestration (resolve → encode → render with caching)
//  4. [cache], [config], [errors], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow through qrsmith:
//
//	Text + options
//	         ↓
//	    [qr] package (resolve options, build segments, encode matrix)
//	         ↓
//	    [render] package (SVG document, raster export)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	opts := pipeline.DefaultOptions()
//	opts.Text = "https://example.com"
//	result, err := runner.Execute(ctx, opts)
package pkg
