// Package pipeline provides the core encoding pipeline for qrsmith.
//
// This package implements the complete resolve → encode → render pipeline
// that can be used by CLI and server components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: Repair and validate raw options into an encode request
//  2. Encode: Build segments and produce the QR module matrix
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Text = "https://example.com"
//	opts.Formats = []string{"svg", "png"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qrsmith/pkg/qr"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options contains all configuration for the encoding pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Encode options
	Text       string  `json:"text"`
	Mode       string  `json:"mode,omitempty"`
	Ecc        string  `json:"ecc,omitempty"`
	MinVersion float64 `json:"min_version,omitempty"`
	MaxVersion float64 `json:"max_version,omitempty"`
	Mask       int     `json:"mask,omitempty"`
	Boost      bool    `json:"boost,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cache reads, forcing a fresh render.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns Options with the pipeline defaults applied:
// automatic mode and mask selection, medium error correction, the full
// version range, and SVG output.
func DefaultOptions() Options {
	return Options{
		Mode:       qr.ModeAuto.String(),
		Ecc:        qr.EccMedium.String(),
		MinVersion: qr.MinVersion,
		MaxVersion: qr.MaxVersion,
		Mask:       qr.MaskAuto,
		Formats:    []string{FormatSVG},
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Request is the resolved encode request.
	Request qr.Request

	// Metadata describes the encoded symbol.
	Metadata qr.Metadata

	// RequestHash is the content hash of the resolved request.
	RequestHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EncodeTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetEncodeDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetEncodeDefaults fills in runtime encode defaults. Version values pass
// through untouched: the resolver repairs non-positive and non-finite input
// to 1, so an explicit zero gets the same repair as any other out-of-range
// value. [DefaultOptions] is the source of the full [1, 40] range.
func (o *Options) SetEncodeDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Raw converts the pipeline options into resolver input, parsing the
// mode and ECC level names.
func (o *Options) Raw() (qr.RawOptions, error) {
	mode, err := qr.ParseMode(o.Mode)
	if err != nil {
		return qr.RawOptions{}, err
	}
	ecc, err := qr.ParseEccLevel(o.Ecc)
	if err != nil {
		return qr.RawOptions{}, err
	}
	return qr.RawOptions{
		Text:       o.Text,
		Mode:       mode,
		EccLevel:   ecc,
		MinVersion: o.MinVersion,
		MaxVersion: o.MaxVersion,
		Mask:       o.Mask,
		BoostEcc:   o.Boost,
	}, nil
}
