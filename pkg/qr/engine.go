package qr

import (
	goqr "github.com/piglig/go-qr"

	"github.com/matzehuels/qrsmith/pkg/errors"
)

// This file is the only place engine types appear. The engine's strongly
// typed enumerations are mapped to the tagged enumerations of this package
// through explicit bidirectional tables, so the boundary contract stays
// testable independent of the engine's internal numbering.

// engineSegment is the engine's segment handle as carried inside a Segment.
type engineSegment = *goqr.QrSegment

// eccToEngine maps request-level ECC adjectives to engine ordinals.
var eccToEngine = map[EccLevel]goqr.Ecc{
	EccLow:      goqr.Low,
	EccMedium:   goqr.Medium,
	EccQuartile: goqr.Quartile,
	EccHigh:     goqr.High,
}

// eccFromEngine maps engine ordinals back to request-level adjectives.
var eccFromEngine = map[goqr.Ecc]EccLevel{
	goqr.Low:      EccLow,
	goqr.Medium:   EccMedium,
	goqr.Quartile: EccQuartile,
	goqr.High:     EccHigh,
}

func engineIsNumeric(text string) bool {
	return goqr.IsNumeric(text)
}

func engineIsAlphanumeric(text string) bool {
	return goqr.IsAlphanumeric(text)
}

func engineMakeNumeric(digits string) (engineSegment, error) {
	return goqr.MakeNumeric(digits)
}

func engineMakeAlphanumeric(text string) (engineSegment, error) {
	return goqr.MakeAlphanumeric(text)
}

func engineMakeBytes(data []byte) (engineSegment, error) {
	return goqr.MakeBytes(data)
}

// engineMakeSegments runs the engine's automatic segmenter and tags each
// returned segment at the boundary. The engine picks the densest single mode
// the whole text fits (numeric ⊂ alphanumeric ⊂ byte), so the tag is derived
// from the same classification the segmenter itself applies.
func engineMakeSegments(text string) ([]Segment, error) {
	raw, err := goqr.MakeSegments(text)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "automatic segmentation")
	}

	tag := SegByte
	switch {
	case goqr.IsNumeric(text):
		tag = SegNumeric
	case goqr.IsAlphanumeric(text):
		tag = SegAlphanumeric
	}

	segs := make([]Segment, 0, len(raw))
	for _, r := range raw {
		segs = append(segs, Segment{mode: tag, raw: r})
	}
	return segs, nil
}

// encodeSegments invokes the engine once for a resolved request and copies
// the result into owned values. The engine object never escapes this
// function. An engine failure means no version in [MinVersion, MaxVersion]
// can hold the segments at the requested ECC level.
func encodeSegments(segs []Segment, req Request) (*Result, error) {
	raw := make([]*goqr.QrSegment, len(segs))
	for i, s := range segs {
		raw[i] = s.raw
	}

	code, err := goqr.EncodeSegmentsAdvanced(raw, eccToEngine[req.EccLevel],
		req.MinVersion, req.MaxVersion, req.Mask, req.BoostEcc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCapacityExceeded, err,
			"no version in [%d,%d] fits the data at ecc level %s",
			req.MinVersion, req.MaxVersion, req.EccLevel)
	}

	size := code.GetSize()
	matrix := NewMatrix(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			matrix.SetDark(x, y, code.GetModule(x, y))
		}
	}

	eccUsed, ok := eccFromEngine[code.GetErrorCorrectionLevel()]
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal,
			"engine returned unknown ecc level %v", code.GetErrorCorrectionLevel())
	}

	return &Result{
		Matrix:   matrix,
		Version:  code.GetVersion(),
		EccLevel: eccUsed,
		Mask:     code.GetMask(),
		Segments: segs,
	}, nil
}
