package qr

import (
	"math"
	"strings"

	"github.com/matzehuels/qrsmith/pkg/errors"
)

// Version and mask bounds defined by the QR symbology.
const (
	MinVersion = 1
	MaxVersion = 40

	// MaskAuto asks the engine to score all 8 mask patterns and pick the
	// best by penalty. An explicit 0..7 is passed through verbatim.
	MaskAuto = -1
)

// Mode is the encoding mode requested by the caller.
type Mode int

const (
	ModeAuto Mode = iota
	ModeNumeric
	ModeAlphanumeric
	ModeByte
)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeNumeric:
		return "numeric"
	case ModeAlphanumeric:
		return "alphanumeric"
	case ModeByte:
		return "byte"
	}
	return "unknown"
}

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "numeric":
		return ModeNumeric, nil
	case "alphanumeric":
		return ModeAlphanumeric, nil
	case "byte":
		return ModeByte, nil
	}
	return ModeAuto, errors.New(errors.ErrCodeInvalidInput,
		"invalid mode: %q (must be one of: auto, numeric, alphanumeric, byte)", s)
}

// EccLevel is the error-correction strength tier.
type EccLevel int

const (
	EccLow EccLevel = iota
	EccMedium
	EccQuartile
	EccHigh
)

// String returns the lowercase name of the level.
func (e EccLevel) String() string {
	switch e {
	case EccLow:
		return "low"
	case EccMedium:
		return "medium"
	case EccQuartile:
		return "quartile"
	case EccHigh:
		return "high"
	}
	return "unknown"
}

// ParseEccLevel parses an ECC level name case-insensitively.
func ParseEccLevel(s string) (EccLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "medium":
		return EccMedium, nil
	case "low":
		return EccLow, nil
	case "quartile":
		return EccQuartile, nil
	case "high":
		return EccHigh, nil
	}
	return EccMedium, errors.New(errors.ErrCodeInvalidInput,
		"invalid ecc level: %q (must be one of: low, medium, quartile, high)", s)
}

// RawOptions holds option fields as they arrive from user input (form
// controls, CLI flags, query parameters). Version fields are float64 because
// that is what numeric form input yields; Resolve repairs them.
type RawOptions struct {
	Text       string
	Mode       Mode
	EccLevel   EccLevel
	MinVersion float64
	MaxVersion float64
	Mask       int
	BoostEcc   bool
}

// Request is a validated, well-formed encoding request ready for the engine.
// MinVersion <= MaxVersion always holds; Mask is MaskAuto or 0..7.
type Request struct {
	Text       string
	Mode       Mode
	EccLevel   EccLevel
	MinVersion int
	MaxVersion int
	Mask       int
	BoostEcc   bool
}

// Resolve normalizes and validates raw user input into a Request.
//
// Version fields are truncated to integers, default to 1 when non-positive
// or non-finite, and clamp to [MinVersion, MaxVersion]. This is a silent
// repair: malformed version input never aborts encoding. The one case that
// is not self-repaired is min > max after clamping, because both values came
// from direct user control and no default ordering is implied; that fails
// with INVALID_RANGE.
func Resolve(raw RawOptions) (Request, error) {
	minV := clampVersion(raw.MinVersion)
	maxV := clampVersion(raw.MaxVersion)

	if minV > maxV {
		return Request{}, errors.New(errors.ErrCodeInvalidRange,
			"min version %d exceeds max version %d", minV, maxV)
	}

	if raw.Mask != MaskAuto && (raw.Mask < 0 || raw.Mask > 7) {
		return Request{}, errors.New(errors.ErrCodeInvalidInput,
			"invalid mask: %d (must be auto or 0..7)", raw.Mask)
	}

	return Request{
		Text:       raw.Text,
		Mode:       raw.Mode,
		EccLevel:   raw.EccLevel,
		MinVersion: minV,
		MaxVersion: maxV,
		Mask:       raw.Mask,
		BoostEcc:   raw.BoostEcc,
	}, nil
}

// clampVersion truncates v to an integer, defaulting to 1 for non-finite or
// non-positive input, then clamps to the valid version range.
func clampVersion(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return MinVersion
	}
	t := int(math.Trunc(v))
	if t < MinVersion {
		return MinVersion
	}
	if t > MaxVersion {
		return MaxVersion
	}
	return t
}
