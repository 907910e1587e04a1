package qr

// Result is the outcome of one encode call: the module matrix plus the
// values the engine actually settled on. It is produced once per request,
// consumed by the renderer and metadata extractor, then discarded.
type Result struct {
	Matrix   Matrix
	Version  int
	EccLevel EccLevel // possibly boosted above the request when BoostEcc is set
	Mask     int      // 0..7, the mask actually applied
	Segments []Segment
}

// Encode runs the full front pipeline for a resolved request: segment
// building followed by a single engine invocation. It is a pure function of
// the request; encoding the same request twice yields identical results.
func Encode(req Request) (*Result, error) {
	segs, err := BuildSegments(req.Text, req.Mode)
	if err != nil {
		return nil, err
	}
	return encodeSegments(segs, req)
}
