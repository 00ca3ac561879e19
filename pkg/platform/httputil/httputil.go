// Package httputil writes JSON responses and maps domain errors onto them.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "coursecred/pkg/domain-errors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

type errorMapping struct {
	status int
	label  string
}

var errorMappings = map[dErrors.Code]errorMapping{
	dErrors.CodeNotFound:         {http.StatusNotFound, "not_found"},
	dErrors.CodeAssetNotFound:    {http.StatusNotFound, string(dErrors.CodeAssetNotFound)},
	dErrors.CodeBadRequest:       {http.StatusBadRequest, "bad_request"},
	dErrors.CodeInvalidInput:     {http.StatusBadRequest, "bad_request"},
	dErrors.CodeValidation:       {http.StatusBadRequest, "validation_error"},
	dErrors.CodeConflict:         {http.StatusConflict, "conflict"},
	dErrors.CodeUnauthorized:     {http.StatusUnauthorized, "unauthorized"},
	dErrors.CodeNotEligible:      {http.StatusForbidden, string(dErrors.CodeNotEligible)},
	dErrors.CodeConfiguration:    {http.StatusUnprocessableEntity, string(dErrors.CodeConfiguration)},
	dErrors.CodeRenderFailure:    {http.StatusBadGateway, string(dErrors.CodeRenderFailure)},
	dErrors.CodeGenerationFailed: {http.StatusBadGateway, string(dErrors.CodeGenerationFailed)},
	dErrors.CodeUnavailable:      {http.StatusServiceUnavailable, "unavailable"},
	dErrors.CodeTimeout:          {http.StatusGatewayTimeout, "timeout"},
}

var internalMapping = errorMapping{http.StatusInternalServerError, "internal_error"}

func mappingFor(code dErrors.Code) errorMapping {
	if m, ok := errorMappings[code]; ok {
		return m
	}
	return internalMapping
}

// DomainCodeToHTTPStatus returns the response status for a domain code.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	return mappingFor(code).status
}

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError renders err. Only domain errors carry a description, and
// internal ones never do.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) {
		WriteJSON(w, internalMapping.status, ErrorBody{Error: internalMapping.label})
		return
	}
	m := mappingFor(domainErr.Code)
	body := ErrorBody{Error: m.label}
	if m != internalMapping {
		body.Description = domainErr.Message
	}
	WriteJSON(w, m.status, body)
}
