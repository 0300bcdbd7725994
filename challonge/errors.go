package challonge

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed API response.
type ErrorKind int

const (
	KindUnauthorized ErrorKind = iota + 1
	KindNotFound
	KindUnsupportedFormat
	KindValidationFailed
	KindServerError
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindValidationFailed:
		return "validation failed"
	case KindServerError:
		return "server error"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is against an *APIError.
var (
	ErrUnauthorized      = &APIError{Kind: KindUnauthorized}
	ErrNotFound          = &APIError{Kind: KindNotFound}
	ErrUnsupportedFormat = &APIError{Kind: KindUnsupportedFormat}
	ErrValidationFailed  = &APIError{Kind: KindValidationFailed}
	ErrServerError       = &APIError{Kind: KindServerError}
)

// ErrInvalidArgument is returned, wrapped, when a request is rejected locally
// before anything is sent.
var ErrInvalidArgument = errors.New("challonge: invalid argument")

type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("challonge: %s (%d)", e.Kind, e.StatusCode)
	if len(e.Messages) > 0 {
		msg += ": " + e.Message()
	}
	return msg
}

// Message joins the server-side messages the way Challonge lists them.
func (e *APIError) Message() string {
	return strings.Join(e.Messages, " ; ")
}

func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// DecodeError reports a response body that could not be turned into the
// expected resource.
type DecodeError struct {
	Resource string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("challonge: decode %s: %v", e.Resource, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var statusKinds = map[int]ErrorKind{
	http.StatusUnauthorized:        KindUnauthorized,
	http.StatusNotFound:            KindNotFound,
	http.StatusNotAcceptable:       KindUnsupportedFormat,
	http.StatusUnprocessableEntity: KindValidationFailed,
	http.StatusInternalServerError: KindServerError,
}

type errorPayload struct {
	Errors []string `json:"errors"`
}

// CheckResponse returns body untouched unless status is one of the error codes
// Challonge documents (401, 404, 406, 422, 500). Every other status, including
// 3xx and undocumented 4xx/5xx, is passed through as success.
func CheckResponse(status int, body []byte) ([]byte, error) {
	kind, ok := statusKinds[status]
	if !ok {
		return body, nil
	}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		payload.Errors = nil
	}

	return nil, &APIError{
		Kind:       kind,
		StatusCode: status,
		Messages:   payload.Errors,
	}
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
