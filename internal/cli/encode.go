package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsmith/pkg/config"
	"github.com/matzehuels/qrsmith/pkg/pipeline"
	"github.com/matzehuels/qrsmith/pkg/qr"
	"github.com/matzehuels/qrsmith/pkg/render"
)

// encodeOpts holds the command-line flags for the encode command.
type encodeOpts struct {
	output     string  // output file path (or base path for multiple formats)
	mode       string  // encoding mode: auto, numeric, alphanumeric, byte
	ecc        string  // error correction: low, medium, quartile, high
	minVersion float64 // smallest acceptable version
	maxVersion float64 // largest acceptable version
	mask       int     // mask pattern: -1 (auto) or 0..7
	boost      bool    // allow the engine to raise ECC within the chosen version
	formats    []string
	noCache    bool // bypass the artifact cache
	info       bool // print the metadata table
	preview    bool // draw the symbol in the terminal
}

// encodeCommand creates the encode command for producing QR artifacts.
func (c *CLI) encodeCommand() *cobra.Command {
	var formatsStr string
	opts := encodeOpts{
		mask:       qr.MaskAuto,
		minVersion: qr.MinVersion,
		maxVersion: qr.MaxVersion,
	}

	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text into a QR code",
		Long: `Encode text into a QR code and write it as SVG, PNG, PDF, or JSON metadata.

An empty argument produces a valid minimal symbol. Mode and mask default
to automatic selection; version constraints outside 1..40 are repaired
rather than rejected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 1 {
				text = args[0]
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if opts.mode == "" {
				opts.mode = cfg.Mode
			}
			if opts.ecc == "" {
				opts.ecc = cfg.Ecc
			}
			opts.formats = parseFormats(formatsStr, cfg)
			if cfg.OutputDir != "" && !filepath.IsAbs(opts.output) {
				if opts.output == "" {
					opts.output = "qr"
				}
				opts.output = filepath.Join(cfg.OutputDir, opts.output)
			}

			return c.runEncode(cmd, cfg, text, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "encoding mode: auto (default), numeric, alphanumeric, byte")
	cmd.Flags().StringVarP(&opts.ecc, "ecc", "e", "", "error correction: low, medium (default), quartile, high")
	cmd.Flags().Float64Var(&opts.minVersion, "min-version", opts.minVersion, "smallest acceptable symbol version")
	cmd.Flags().Float64Var(&opts.maxVersion, "max-version", opts.maxVersion, "largest acceptable symbol version")
	cmd.Flags().IntVar(&opts.mask, "mask", opts.mask, "mask pattern: -1 for automatic, or 0..7")
	cmd.Flags().BoolVar(&opts.boost, "boost", false, "raise error correction when it fits the chosen version")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().BoolVar(&opts.info, "info", false, "print symbol metadata")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "draw the symbol in the terminal")

	return cmd
}

// runEncode executes the pipeline and writes artifacts to disk.
func (c *CLI) runEncode(cmd *cobra.Command, cfg config.Config, text string, opts *encodeOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.DefaultOptions()
	popts.Text = text
	popts.Mode = opts.mode
	popts.Ecc = opts.ecc
	popts.MinVersion = opts.minVersion
	popts.MaxVersion = opts.maxVersion
	popts.Mask = opts.mask
	popts.Boost = opts.boost
	popts.Formats = opts.formats
	popts.Logger = c.Logger

	prog := newProgress(loggerFromContext(ctx))
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Encoded version %d symbol", result.Metadata.Version))

	for _, format := range opts.formats {
		path := outputPath(opts.output, format, len(opts.formats) > 1)
		if err := render.SaveFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}

	printStats(result.Metadata.Version, result.Metadata.Size, result.CacheInfo.RenderHit)
	if opts.info {
		printMetadata(result.Metadata)
	}
	if opts.preview {
		res, err := qr.Encode(result.Request)
		if err != nil {
			return err
		}
		printPreview(res.Matrix, render.Border)
	}
	return nil
}

// outputPath derives the artifact path for a format. The default base
// name is "qr"; a user-supplied extension wins for a single format and
// is replaced per format when several are requested.
func outputPath(output, format string, multi bool) string {
	base := output
	if base == "" || strings.HasSuffix(base, string(filepath.Separator)) {
		base = filepath.Join(base, "qr")
	}
	ext := filepath.Ext(base)
	known := pipeline.ValidFormats[strings.TrimPrefix(ext, ".")]
	if known && !multi {
		return base
	}
	if known {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}
