package qr

import (
	"testing"

	"github.com/matzehuels/qrsmith/pkg/errors"
)

func mustResolve(t *testing.T, raw RawOptions) Request {
	t.Helper()
	req, err := Resolve(raw)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	return req
}

func TestEncodeNumericScenario(t *testing.T) {
	// Five digits at medium ECC fit in version 1 (21x21).
	req := mustResolve(t, RawOptions{
		Text:       "12345",
		Mode:       ModeNumeric,
		EccLevel:   EccMedium,
		MinVersion: 1,
		MaxVersion: 40,
		Mask:       MaskAuto,
		BoostEcc:   true,
	})

	res, err := Encode(req)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	if res.Version != 1 {
		t.Errorf("Version = %d, want 1", res.Version)
	}
	if got := res.Matrix.Size(); got != 21 {
		t.Errorf("Size = %d, want 21", got)
	}
	if len(res.Segments) != 1 {
		t.Errorf("segment count = %d, want 1", len(res.Segments))
	}
	if got := ClassifyMode(res.Segments); got != UsedNumeric {
		t.Errorf("used mode = %v, want %v", got, UsedNumeric)
	}
	if res.Mask < 0 || res.Mask > 7 {
		t.Errorf("Mask = %d, want 0..7", res.Mask)
	}
}

func TestEncodeEmptyText(t *testing.T) {
	req := mustResolve(t, RawOptions{
		Mode:       ModeAuto,
		EccLevel:   EccMedium,
		MinVersion: 1,
		MaxVersion: 40,
		Mask:       MaskAuto,
	})

	res, err := Encode(req)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	if len(res.Segments) != 0 {
		t.Errorf("segment count = %d, want 0", len(res.Segments))
	}
	if got := ClassifyMode(res.Segments); got != UsedNone {
		t.Errorf("used mode = %v, want %v", got, UsedNone)
	}
	// Minimal symbol: structural patterns only, version 1.
	if res.Version != 1 {
		t.Errorf("Version = %d, want 1", res.Version)
	}
	if got := res.Matrix.Size(); got != 21 {
		t.Errorf("Size = %d, want 21", got)
	}
	if res.Matrix.DarkCount() == 0 {
		t.Error("DarkCount = 0, want finder/timing patterns present")
	}
}

func TestEncodeExplicitMask(t *testing.T) {
	req := mustResolve(t, RawOptions{
		Text:       "MASKED",
		Mode:       ModeAlphanumeric,
		EccLevel:   EccLow,
		MinVersion: 1,
		MaxVersion: 40,
		Mask:       3,
	})

	res, err := Encode(req)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if res.Mask != 3 {
		t.Errorf("Mask = %d, want 3 (explicit mask must never be overridden)", res.Mask)
	}
}

func TestEncodeCapacityExceeded(t *testing.T) {
	// 100 digits cannot fit in a version 1 symbol at high ECC.
	digits := make([]byte, 100)
	for i := range digits {
		digits[i] = '9'
	}

	req := mustResolve(t, RawOptions{
		Text:       string(digits),
		Mode:       ModeNumeric,
		EccLevel:   EccHigh,
		MinVersion: 1,
		MaxVersion: 1,
		Mask:       MaskAuto,
	})

	_, err := Encode(req)
	if !errors.Is(err, errors.ErrCodeCapacityExceeded) {
		t.Errorf("error = %v, want CAPACITY_EXCEEDED", err)
	}
}

func TestEncodeIdempotent(t *testing.T) {
	req := mustResolve(t, RawOptions{
		Text:       "IDEMPOTENT 123",
		Mode:       ModeAuto,
		EccLevel:   EccQuartile,
		MinVersion: 1,
		MaxVersion: 40,
		Mask:       MaskAuto,
	})

	a, err := Encode(req)
	if err != nil {
		t.Fatalf("first Encode() error: %v", err)
	}
	b, err := Encode(req)
	if err != nil {
		t.Fatalf("second Encode() error: %v", err)
	}

	if a.Version != b.Version || a.Mask != b.Mask || a.EccLevel != b.EccLevel {
		t.Errorf("results differ: (%d,%d,%v) vs (%d,%d,%v)",
			a.Version, a.Mask, a.EccLevel, b.Version, b.Mask, b.EccLevel)
	}
	if a.Matrix.Size() != b.Matrix.Size() {
		t.Fatalf("sizes differ: %d vs %d", a.Matrix.Size(), b.Matrix.Size())
	}
	for y := 0; y < a.Matrix.Size(); y++ {
		for x := 0; x < a.Matrix.Size(); x++ {
			if a.Matrix.Dark(x, y) != b.Matrix.Dark(x, y) {
				t.Fatalf("module (%d,%d) differs between runs", x, y)
			}
		}
	}
}

func TestEncodeBoostEcc(t *testing.T) {
	// A short payload at low ECC with boost enabled has spare capacity, so
	// the engine may raise the level; it must never lower it.
	req := mustResolve(t, RawOptions{
		Text:       "1",
		Mode:       ModeNumeric,
		EccLevel:   EccLow,
		MinVersion: 1,
		MaxVersion: 40,
		Mask:       MaskAuto,
		BoostEcc:   true,
	})

	res, err := Encode(req)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if res.EccLevel < EccLow {
		t.Errorf("EccLevel = %v, want >= %v", res.EccLevel, EccLow)
	}
}
