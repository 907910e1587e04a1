package pipeline

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/qrsmith/pkg/cache"
	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/qr"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Mode != "auto" {
		t.Errorf("Mode = %q, want auto", opts.Mode)
	}
	if opts.Ecc != "medium" {
		t.Errorf("Ecc = %q, want medium", opts.Ecc)
	}
	if opts.MinVersion != qr.MinVersion || opts.MaxVersion != qr.MaxVersion {
		t.Errorf("version range = [%v, %v], want [1, 40]", opts.MinVersion, opts.MaxVersion)
	}
	if opts.Mask != qr.MaskAuto {
		t.Errorf("Mask = %d, want %d", opts.Mask, qr.MaskAuto)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Text: "hello", Mask: qr.MaskAuto}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalMin := opts.MinVersion
	originalMax := opts.MaxVersion
	originalFormats := len(opts.Formats)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.MinVersion != originalMin || opts.MaxVersion != originalMax {
		t.Error("version range changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestSetEncodeDefaults(t *testing.T) {
	opts := Options{MaxVersion: 0}
	opts.SetEncodeDefaults()

	// Version values are never rewritten here: an explicit zero must reach
	// the resolver so it gets the same repair as any other non-positive
	// input.
	if opts.MinVersion != 0 || opts.MaxVersion != 0 {
		t.Errorf("version range = [%v, %v], want untouched [0, 0]", opts.MinVersion, opts.MaxVersion)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestOptionsRawRejectsBadNames(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = "hexadecimal"
	if _, err := opts.Raw(); err == nil {
		t.Error("invalid mode name should fail")
	}

	opts = DefaultOptions()
	opts.Ecc = "maximum"
	if _, err := opts.Raw(); err == nil {
		t.Error("invalid ecc name should fail")
	}
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	opts := DefaultOptions()
	opts.Text = "HELLO WORLD"
	opts.Formats = []string{FormatSVG, FormatJSON}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok {
		t.Fatal("missing svg artifact")
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("svg artifact does not contain an <svg> element")
	}

	var meta qr.Metadata
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &meta); err != nil {
		t.Fatalf("json artifact did not parse: %v", err)
	}
	if meta != result.Metadata {
		t.Errorf("json artifact = %+v, want %+v", meta, result.Metadata)
	}
	if meta.ModeUsed != "alphanumeric" {
		t.Errorf("ModeUsed = %q, want alphanumeric", meta.ModeUsed)
	}

	if result.RequestHash == "" {
		t.Error("RequestHash is empty")
	}
	if result.CacheInfo.RenderHit {
		t.Error("null cache reported a render hit")
	}
}

func TestRunnerExecuteCacheHit(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := DefaultOptions()
	opts.Text = "cache me"

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run reported a render hit")
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run did not hit the cache")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// Refresh bypasses the cache read.
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute() error = %v", err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("refresh run reported a render hit")
	}
}

func TestRunnerExecuteNonPositiveMaxVersion(t *testing.T) {
	// An explicit non-positive max must reach the resolver's repair (to 1)
	// instead of being mistaken for an unset field and widened to 40. Both
	// inputs force a version-1 symbol.
	tests := []struct {
		name string
		max  float64
	}{
		{name: "zero", max: 0},
		{name: "negative", max: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(nil, nil, nil)

			opts := DefaultOptions()
			opts.Text = "42"
			opts.MaxVersion = tt.max

			result, err := runner.Execute(context.Background(), opts)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if result.Request.MaxVersion != 1 {
				t.Errorf("resolved MaxVersion = %d, want 1", result.Request.MaxVersion)
			}
			if result.Metadata.Version != 1 {
				t.Errorf("Version = %d, want 1", result.Metadata.Version)
			}
		})
	}
}

func TestRunnerExecuteInvalidRange(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	opts := DefaultOptions()
	opts.Text = "x"
	opts.MinVersion = 10
	opts.MaxVersion = 5

	_, err := runner.Execute(context.Background(), opts)
	if err == nil {
		t.Fatal("min > max should fail")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidRange {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidRange)
	}
}

func TestRunnerExecuteInvalidFormat(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	opts := DefaultOptions()
	opts.Text = "x"
	opts.Formats = []string{"bmp"}

	if _, err := runner.Execute(context.Background(), opts); err == nil {
		t.Fatal("unknown format should fail")
	}
}

func TestRequestHashSensitivity(t *testing.T) {
	base := qr.Request{Text: "x", MinVersion: 1, MaxVersion: 40, Mask: qr.MaskAuto}

	same := requestHash(base)
	if requestHash(base) != same {
		t.Error("requestHash is not deterministic")
	}

	variants := []qr.Request{
		{Text: "y", MinVersion: 1, MaxVersion: 40, Mask: qr.MaskAuto},
		{Text: "x", MinVersion: 2, MaxVersion: 40, Mask: qr.MaskAuto},
		{Text: "x", MinVersion: 1, MaxVersion: 39, Mask: qr.MaskAuto},
		{Text: "x", MinVersion: 1, MaxVersion: 40, Mask: 3},
		{Text: "x", MinVersion: 1, MaxVersion: 40, Mask: qr.MaskAuto, BoostEcc: true},
		{Text: "x", MinVersion: 1, MaxVersion: 40, Mask: qr.MaskAuto, EccLevel: qr.EccHigh},
	}
	for i, v := range variants {
		if requestHash(v) == same {
			t.Errorf("variant %d hashed equal to base", i)
		}
	}
}
