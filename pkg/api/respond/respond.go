// Package respond holds the JSON request/response helpers shared by the API handlers.
package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"dcf_fanchart/pkg/core/utils"
	"dcf_fanchart/pkg/core/validate"
)

// MaxBodyBytes bounds request bodies
const MaxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes v with the given status
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Raw writes an already-encoded body
func Raw(w http.ResponseWriter, contentType string, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}

// Error maps ErrInvalidInput to 400 with the reason verbatim; anything else is a 500
// and is logged.
func Error(w http.ResponseWriter, log zerolog.Logger, err error) {
	if errors.Is(err, validate.ErrInvalidInput) {
		JSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	log.Error().Err(err).Msg("Request failed")
	JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// Decode reads the request body into dst. Strict JSON, Hjson and repairable JSON are
// all accepted; an empty body leaves dst untouched.
func Decode(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) > MaxBodyBytes {
		return validate.Invalid("request body exceeds %d bytes", MaxBodyBytes)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if _, err := utils.SmartParse(string(body), dst); err != nil {
		return validate.Invalid("request body could not be parsed: %v", err)
	}
	return nil
}
