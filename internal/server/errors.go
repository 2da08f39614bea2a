package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	brochure "github.com/alnah/go-brochure"
	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/imageutil"
	"github.com/alnah/go-brochure/internal/logging"
	"github.com/alnah/go-brochure/internal/suggest"
)

// statusClientClosed is reported when the client disconnects before the
// response is written (the nginx 499 convention).
const statusClientClosed = 499

// Sentinel errors for request handling.
var (
	ErrBadRequest        = errors.New("bad request")
	ErrSuggestionsOff    = errors.New("suggestions are not configured")
	ErrMissingHTML       = errors.New("missing html_content in request body")
	ErrRequestBodyTooBig = errors.New("request body too large")
)

const maxJSONBody = content.MaxPayloadSize

// apiError is the JSON error envelope.
type apiError struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// classify maps an error to its status code and machine-readable code.
func classify(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes), errors.Is(err, ErrRequestBodyTooBig), errors.Is(err, imageutil.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, content.ErrItemNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, suggest.ErrNoSourceImage):
		return http.StatusUnprocessableEntity, "missing_image"
	case errors.Is(err, content.ErrInvalidContent),
		errors.Is(err, content.ErrUnknownField),
		errors.Is(err, content.ErrIndexOutOfRange),
		errors.Is(err, suggest.ErrInvalidTarget),
		errors.Is(err, brochure.ErrInvalidViewMode),
		errors.Is(err, brochure.ErrEmptyFragment),
		errors.Is(err, ErrMissingHTML),
		errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, imageutil.ErrUnsupportedFormat), errors.Is(err, imageutil.ErrDecode):
		return http.StatusUnsupportedMediaType, "unsupported_image"
	case errors.Is(err, ErrSuggestionsOff):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, suggest.ErrUpstream),
		errors.Is(err, brochure.ErrPDFGeneration),
		errors.Is(err, brochure.ErrBrowserConnect),
		errors.Is(err, brochure.ErrPageCreate),
		errors.Is(err, brochure.ErrPageLoad):
		return http.StatusBadGateway, "upstream_failure"
	case errors.Is(err, context.Canceled):
		return statusClientClosed, "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeError logs err and writes the JSON envelope. 5xx messages are not
// echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	logger := logging.FromContext(r.Context())

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Int("status", status), zap.Error(err))
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	} else {
		logger.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}

	writeJSON(w, status, apiError{
		Error:     sanitizeMessage(msg),
		Code:      code,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a bounded JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return fmt.Errorf("%w: limit %d bytes", ErrRequestBodyTooBig, maxBytes.Limit)
		}
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after JSON body", ErrBadRequest)
	}
	return nil
}

// readBody reads a bounded raw body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, fmt.Errorf("%w: limit %d bytes", ErrRequestBodyTooBig, maxBytes.Limit)
		}
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return data, nil
}

func sanitizeMessage(s string) string {
	s = strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
	s = strings.TrimSpace(s)
	if len(s) > 512 {
		s = s[:512]
	}
	return s
}
