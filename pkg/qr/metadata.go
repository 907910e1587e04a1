package qr

// Metadata is a flat, display-ready summary of a produced symbol. It carries
// no identity and is recomputed on every encode.
type Metadata struct {
	ModeRequested string `json:"mode_requested"`
	ModeUsed      string `json:"mode_used"`
	EccRequested  string `json:"ecc_requested"`
	EccUsed       string `json:"ecc_used"`
	Version       int    `json:"version"`
	Size          int    `json:"size"`
	Mask          int    `json:"mask"`
	SegmentCount  int    `json:"segment_count"`
	DarkModules   int    `json:"dark_modules"`
}

// ExtractMetadata projects a request and its encode result into a Metadata
// record. EccRequested is the pre-boost value from the request; EccUsed is
// what the engine finally applied. DarkModules comes from a single scan of
// the matrix and equals the number of dark-cell subpaths the vector renderer
// emits for the same result.
func ExtractMetadata(req Request, segs []Segment, res *Result, used UsedMode) Metadata {
	return Metadata{
		ModeRequested: req.Mode.String(),
		ModeUsed:      used.String(),
		EccRequested:  req.EccLevel.String(),
		EccUsed:       res.EccLevel.String(),
		Version:       res.Version,
		Size:          res.Matrix.Size(),
		Mask:          res.Mask,
		SegmentCount:  len(segs),
		DarkModules:   res.Matrix.DarkCount(),
	}
}
