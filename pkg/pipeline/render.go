package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/qr"
	"github.com/matzehuels/qrsmith/pkg/render"
)

// renderFormats produces every requested artifact from one encode
// result. The SVG document is built once and shared by the raster and
// PDF exports.
func renderFormats(res *qr.Result, meta qr.Metadata, formats []string) (map[string][]byte, error) {
	doc := render.RenderSVG(res.Matrix)
	exporter := render.NewExporter()

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := renderFormat(doc, meta, exporter, format)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(doc *render.Document, meta qr.Metadata, exporter *render.Exporter, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return doc.Bytes(), nil
	case FormatPNG:
		return exporter.PNG(doc)
	case FormatPDF:
		return render.ToPDF(doc.Bytes())
	case FormatJSON:
		data, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding metadata")
		}
		return append(data, '\n'), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
}
