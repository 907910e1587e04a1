// Package qr turns text plus user-supplied encoding options into a QR
// module matrix and display-ready metadata.
//
// # Overview
//
// The package owns the front half of the encoding pipeline:
//
//  1. Resolve: normalize and validate raw option input into a [Request]
//  2. BuildSegments: convert text plus a requested mode into tagged [Segment]s
//  3. Encode: hand the segments to the QR engine and copy the result into
//     an owned [Matrix]
//  4. ClassifyMode / ExtractMetadata: derive reporting values from what was
//     actually encoded
//
// Symbol construction itself (version search, error-correction codewords,
// mask scoring) is delegated to the engine behind the boundary in engine.go.
// Engine enumerations never leak out of that file; the boundary maps them to
// the tagged enumerations defined here.
//
// # Usage
//
//	req, err := qr.Resolve(qr.RawOptions{
//	    Text:       "HELLO",
//	    Mode:       qr.ModeAuto,
//	    EccLevel:   qr.EccMedium,
//	    MinVersion: 1,
//	    MaxVersion: 40,
//	    Mask:       qr.MaskAuto,
//	})
//	if err != nil {
//	    return err
//	}
//	res, err := qr.Encode(req)
//	if err != nil {
//	    return err
//	}
//	meta := qr.ExtractMetadata(req, res.Segments, res, qr.ClassifyMode(res.Segments))
//
// Every call is a pure pipeline over its own inputs: results are created
// fresh per call and never shared, so concurrent encodes do not interfere.
package qr
