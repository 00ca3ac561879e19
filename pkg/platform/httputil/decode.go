package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	dErrors "coursecred/pkg/domain-errors"
	"coursecred/pkg/requestcontext"
)

// MaxBodyBytes bounds JSON request bodies.
const MaxBodyBytes = 1 << 20

// Normalizer is implemented by request types that canonicalize their fields
// before validation.
type Normalizer interface {
	Normalize()
}

// Validator is implemented by request types that check themselves.
type Validator interface {
	Validate() error
}

// Bind decodes the JSON body of r into a new T, normalizes and validates it.
// On failure it writes the error response and returns false.
//
//	req, ok := httputil.Bind[GenerateRequest](w, r, h.logger)
//	if !ok {
//		return
//	}
func Bind[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	req := new(T)
	if err := decodeBody(w, r, req); err != nil {
		reject(w, r, logger, "request body rejected", err)
		return nil, false
	}
	if err := Prepare(req); err != nil {
		reject(w, r, logger, "request failed validation", err)
		return nil, false
	}
	return req, true
}

// Prepare runs Normalize then Validate on req when it implements them. A
// validation error without a domain code becomes CodeValidation.
func Prepare(req any) error {
	if n, ok := req.(Normalizer); ok {
		n.Normalize()
	}
	v, ok := req.(Validator)
	if !ok {
		return nil
	}
	err := v.Validate()
	if err == nil {
		return nil
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return dErrors.New(dErrors.CodeValidation, err.Error())
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return dErrors.New(dErrors.CodeBadRequest, "request body is required")
		case errors.As(err, &tooLarge):
			return dErrors.New(dErrors.CodeBadRequest, "request body is too large")
		default:
			return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
		}
	}
	if dec.More() {
		return dErrors.New(dErrors.CodeBadRequest, "request body must hold a single JSON object")
	}
	return nil
}

func reject(w http.ResponseWriter, r *http.Request, logger *slog.Logger, msg string, err error) {
	ctx := r.Context()
	logger.WarnContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	WriteError(w, err)
}
