package httperrors

import (
	"fmt"

	"github.com/go-openapi/swag"

	"github.com/altkdf/schnorr-canister/internal/types"
)

// HTTPError is an echo-compatible error carrying a public error payload.
type HTTPError struct {
	types.PublicHTTPError
	Internal       error                  `json:"-"`
	AdditionalData map[string]interface{} `json:"-"`
}

// NewHTTPError returns a new HTTPError with the given code, public type and title.
func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{
		PublicHTTPError: types.PublicHTTPError{
			Code:  swag.Int64(int64(code)),
			Type:  swag.String(errorType),
			Title: swag.String(title),
		},
	}
}

// NewHTTPErrorWithDetail returns a new HTTPError with an additional detail message.
func NewHTTPErrorWithDetail(code int, errorType string, title string, detail string) *HTTPError {
	e := NewHTTPError(code, errorType, title)
	e.Detail = detail
	return e
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTPError %d (%s): %s - %s", *e.Code, *e.Type, *e.Title, e.Detail)
	}
	return fmt.Sprintf("HTTPError %d (%s): %s", *e.Code, *e.Type, *e.Title)
}

// SetInternal attaches an internal error, never exposed to the client.
func (e *HTTPError) SetInternal(err error) *HTTPError {
	e.Internal = err
	return e
}

// HTTPValidationError extends HTTPError with per-field validation details.
type HTTPValidationError struct {
	types.PublicHTTPValidationError
	Internal       error                  `json:"-"`
	AdditionalData map[string]interface{} `json:"-"`
}

// NewHTTPValidationError returns a new HTTPValidationError with the given validation details.
func NewHTTPValidationError(code int, errorType string, title string, validationErrors []*types.HTTPValidationErrorDetail) *HTTPValidationError {
	return &HTTPValidationError{
		PublicHTTPValidationError: types.PublicHTTPValidationError{
			PublicHTTPError: types.PublicHTTPError{
				Code:  swag.Int64(int64(code)),
				Type:  swag.String(errorType),
				Title: swag.String(title),
			},
			ValidationErrors: validationErrors,
		},
	}
}

func (e *HTTPValidationError) Error() string {
	return fmt.Sprintf("HTTPValidationError %d (%s): %s (%d fields)", *e.Code, *e.Type, *e.Title, len(e.ValidationErrors))
}
