package qr

import "testing"

func TestExtractMetadata(t *testing.T) {
	req := mustResolve(t, RawOptions{
		Text:       "META 42",
		Mode:       ModeAlphanumeric,
		EccLevel:   EccMedium,
		MinVersion: 1,
		MaxVersion: 40,
		Mask:       5,
	})

	res, err := Encode(req)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	meta := ExtractMetadata(req, res.Segments, res, ClassifyMode(res.Segments))

	if meta.ModeRequested != "alphanumeric" {
		t.Errorf("ModeRequested = %q, want %q", meta.ModeRequested, "alphanumeric")
	}
	if meta.ModeUsed != "alphanumeric" {
		t.Errorf("ModeUsed = %q, want %q", meta.ModeUsed, "alphanumeric")
	}
	if meta.EccRequested != "medium" {
		t.Errorf("EccRequested = %q, want %q", meta.EccRequested, "medium")
	}
	if meta.Version != res.Version {
		t.Errorf("Version = %d, want %d", meta.Version, res.Version)
	}
	if meta.Size != res.Matrix.Size() {
		t.Errorf("Size = %d, want %d", meta.Size, res.Matrix.Size())
	}
	if meta.Mask != 5 {
		t.Errorf("Mask = %d, want 5", meta.Mask)
	}
	if meta.SegmentCount != 1 {
		t.Errorf("SegmentCount = %d, want 1", meta.SegmentCount)
	}

	// DarkModules must match an independent full-matrix scan.
	dark := 0
	for y := 0; y < res.Matrix.Size(); y++ {
		for x := 0; x < res.Matrix.Size(); x++ {
			if res.Matrix.Dark(x, y) {
				dark++
			}
		}
	}
	if meta.DarkModules != dark {
		t.Errorf("DarkModules = %d, want %d", meta.DarkModules, dark)
	}
}

func TestMatrixBounds(t *testing.T) {
	m := NewMatrix(3)
	m.SetDark(1, 1, true)
	m.SetDark(-1, 0, true) // ignored
	m.SetDark(0, 3, true)  // ignored

	if !m.Dark(1, 1) {
		t.Error("Dark(1,1) = false, want true")
	}
	if m.Dark(-1, 0) || m.Dark(0, 3) {
		t.Error("out-of-range modules must read light")
	}
	if got := m.DarkCount(); got != 1 {
		t.Errorf("DarkCount = %d, want 1", got)
	}
}
