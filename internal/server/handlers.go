package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/matzehuels/qrsmith/pkg/errors"
	"github.com/matzehuels/qrsmith/pkg/pipeline"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// handleArtifact returns a handler that runs the pipeline for a single
// output format. Errors produce a JSON body and never a partial image.
func (s *Server) handleArtifact(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := optionsFromQuery(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Formats = []string{format}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", contentTypes[format])
		if format == pipeline.FormatPNG {
			w.Header().Set("Content-Disposition", `attachment; filename="qr.png"`)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
	}
}

// optionsFromQuery builds pipeline options from query parameters.
// Version parameters follow form semantics: unparseable numbers become
// NaN and are repaired by the resolver rather than rejected here.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()

	opts := pipeline.DefaultOptions()
	opts.Text = q.Get("text")
	if v := q.Get("mode"); v != "" {
		opts.Mode = v
	}
	if v := q.Get("ecc"); v != "" {
		opts.Ecc = v
	}
	if v := q.Get("min"); v != "" {
		opts.MinVersion = parseVersion(v)
	}
	if v := q.Get("max"); v != "" {
		opts.MaxVersion = parseVersion(v)
	}
	if v := q.Get("mask"); v != "" {
		mask, err := strconv.Atoi(v)
		if err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput,
				"invalid mask: %q (must be an integer)", v)
		}
		opts.Mask = mask
	}
	if v := q.Get("boost"); v != "" {
		boost, err := strconv.ParseBool(v)
		if err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput,
				"invalid boost: %q (must be a boolean)", v)
		}
		opts.Boost = boost
	}
	return opts, nil
}

// parseVersion parses a version query value, yielding NaN on garbage
// so the resolver's repair path handles it.
func parseVersion(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// writeError maps an error to an HTTP status and JSON body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	s.logger.Error("request failed",
		"path", r.URL.Path,
		"code", code,
		"error", err,
		"request_id", requestIDFromContext(r.Context()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Code:  string(code),
		Error: errors.UserMessage(err),
	})
}

// statusFor maps error codes to HTTP statuses. Malformed parameters
// are the client's fault; unprocessable text is semantically valid
// input the symbology cannot hold.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRange, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupportedCharacters, errors.ErrCodeCapacityExceeded:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeRenderUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
