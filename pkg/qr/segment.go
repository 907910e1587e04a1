package qr

import (
	"github.com/matzehuels/qrsmith/pkg/errors"
)

// SegmentMode tags a segment with the encoding mode used to pack it.
type SegmentMode int

const (
	SegNumeric SegmentMode = iota
	SegAlphanumeric
	SegByte
)

// String returns the lowercase name of the segment mode.
func (s SegmentMode) String() string {
	switch s {
	case SegNumeric:
		return "numeric"
	case SegAlphanumeric:
		return "alphanumeric"
	case SegByte:
		return "byte"
	}
	return "unknown"
}

// Segment is a typed chunk of input data plus the engine handle that packs
// it. Segments are created fresh per encode call and discarded afterwards;
// they are never mutated or shared across calls.
type Segment struct {
	mode SegmentMode
	raw  engineSegment
}

// Mode returns the tag assigned when the segment was built.
func (s Segment) Mode() SegmentMode {
	return s.mode
}

// BuildSegments converts text plus a requested mode into zero or more tagged
// segments. Empty text yields zero segments in every mode; downstream
// encoding still succeeds and produces a minimal symbol.
//
// For the explicit numeric and alphanumeric modes the text must stay within
// the mode's alphabet (digits 0-9; digits, uppercase A-Z, space and
// $%*+-./:), otherwise the call fails with UNSUPPORTED_CHARACTERS. Byte mode
// packs the UTF-8 bytes of the text and always succeeds. Auto mode delegates
// to the engine's segmenter, which picks the densest mode the text fits.
func BuildSegments(text string, mode Mode) ([]Segment, error) {
	if text == "" {
		return nil, nil
	}

	switch mode {
	case ModeNumeric:
		if !engineIsNumeric(text) {
			return nil, errors.New(errors.ErrCodeUnsupportedCharacters,
				"text contains characters outside the numeric alphabet (digits 0-9)")
		}
		seg, err := engineMakeNumeric(text)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnsupportedCharacters, err, "build numeric segment")
		}
		return []Segment{{mode: SegNumeric, raw: seg}}, nil

	case ModeAlphanumeric:
		if !engineIsAlphanumeric(text) {
			return nil, errors.New(errors.ErrCodeUnsupportedCharacters,
				"text contains characters outside the alphanumeric alphabet (0-9, A-Z, space, $%%*+-./:)")
		}
		seg, err := engineMakeAlphanumeric(text)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnsupportedCharacters, err, "build alphanumeric segment")
		}
		return []Segment{{mode: SegAlphanumeric, raw: seg}}, nil

	case ModeByte:
		seg, err := engineMakeBytes([]byte(text))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "build byte segment")
		}
		return []Segment{{mode: SegByte, raw: seg}}, nil

	default: // ModeAuto
		return engineMakeSegments(text)
	}
}

// UsedMode reports which encoding mode(s) a set of built segments actually
// used. It is derived, purely informational, and has no effect on encoding.
type UsedMode int

const (
	UsedNone UsedMode = iota
	UsedNumeric
	UsedAlphanumeric
	UsedByte
	UsedMixed
)

// String returns the lowercase name of the used mode.
func (u UsedMode) String() string {
	switch u {
	case UsedNone:
		return "none"
	case UsedNumeric:
		return "numeric"
	case UsedAlphanumeric:
		return "alphanumeric"
	case UsedByte:
		return "byte"
	case UsedMixed:
		return "mixed"
	}
	return "unknown"
}

// ClassifyMode inspects built segments and reports the mode actually used:
// none for empty input, the single mode when all segments agree, mixed
// otherwise. It must be fed the segments the builder produced, not the
// requested mode.
func ClassifyMode(segs []Segment) UsedMode {
	if len(segs) == 0 {
		return UsedNone
	}

	first := segs[0].mode
	for _, s := range segs[1:] {
		if s.mode != first {
			return UsedMixed
		}
	}

	switch first {
	case SegNumeric:
		return UsedNumeric
	case SegAlphanumeric:
		return UsedAlphanumeric
	default:
		return UsedByte
	}
}
