package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PublicHTTPErrorType* enumerate the publicly exposed error types.
const (
	PublicHTTPErrorTypeGeneric = "generic"
)

// PublicHTTPError is the wire representation of an HTTP error.
type PublicHTTPError struct {
	// HTTP status code
	Code *int64 `json:"status"`

	// Type of the error
	Type *string `json:"type"`

	// Short human readable title
	Title *string `json:"title"`

	// Optional details
	Detail string `json:"detail,omitempty"`

	// Additional untyped data
	AdditionalData map[string]interface{} `json:"additionalData,omitempty"`
}

// Validate validates this public HTTP error.
func (m *PublicHTTPError) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("status", "body", m.Code); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("type", "body", m.Type); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("title", "body", m.Title); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// HTTPValidationErrorDetail describes a single payload validation failure.
type HTTPValidationErrorDetail struct {
	// Key of the field that failed validation
	Key *string `json:"key"`

	// Location of the field (body, query, path)
	In *string `json:"in"`

	// Validation error message
	Error *string `json:"error"`
}

// Validate validates this HTTP validation error detail.
func (m *HTTPValidationErrorDetail) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("key", "body", m.Key); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("in", "body", m.In); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("error", "body", m.Error); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// PublicHTTPValidationError extends PublicHTTPError with per-field details.
type PublicHTTPValidationError struct {
	PublicHTTPError

	// List of failed fields
	ValidationErrors []*HTTPValidationErrorDetail `json:"validationErrors"`
}

// Validate validates this public HTTP validation error.
func (m *PublicHTTPValidationError) Validate(formats strfmt.Registry) error {
	var res []error

	if err := m.PublicHTTPError.Validate(formats); err != nil {
		res = append(res, err)
	}

	for i := range m.ValidationErrors {
		if m.ValidationErrors[i] == nil {
			continue
		}
		if err := m.ValidationErrors[i].Validate(formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
