package util

import (
	"errors"
	"net/http"

	openapierrors "github.com/go-openapi/errors"
	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"

	"github.com/altkdf/schnorr-canister/internal/api/httperrors"
	"github.com/altkdf/schnorr-canister/internal/types"
)

// BindAndValidateBody binds the request body to v and runs its validation,
// returning a public HTTP validation error on failure.
func BindAndValidateBody(c echo.Context, v runtime.Validatable) error {
	binder := c.Echo().Binder.(*echo.DefaultBinder)

	if err := binder.BindBody(c, v); err != nil {
		return err
	}

	return validatePayload(c, v)
}

// ValidateAndReturn validates the response payload v and writes it as JSON
// with the given status code.
func ValidateAndReturn(c echo.Context, code int, v runtime.Validatable) error {
	if err := validatePayload(c, v); err != nil {
		return err
	}
	return c.JSON(code, v)
}

func validatePayload(c echo.Context, v runtime.Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		var compositeError *openapierrors.CompositeError
		if errors.As(err, &compositeError) {
			LogFromEchoContext(c).Debug().Errs("validation_errors", compositeError.Errors).Msg("Payload validation failed")
			return httperrors.NewHTTPValidationError(
				http.StatusBadRequest,
				types.PublicHTTPErrorTypeGeneric,
				http.StatusText(http.StatusBadRequest),
				formatValidationErrors(compositeError),
			)
		}

		var validationError *openapierrors.Validation
		if errors.As(err, &validationError) {
			LogFromEchoContext(c).Debug().AnErr("validation_error", validationError).Msg("Payload validation failed")
			return httperrors.NewHTTPValidationError(
				http.StatusBadRequest,
				types.PublicHTTPErrorTypeGeneric,
				http.StatusText(http.StatusBadRequest),
				[]*types.HTTPValidationErrorDetail{
					{
						Key:   &validationError.Name,
						In:    &validationError.In,
						Error: swagErrorMessage(validationError),
					},
				},
			)
		}

		LogFromEchoContext(c).Error().Err(err).Msg("Failed to validate payload, returning generic HTTP error")
		return err
	}

	return nil
}

func formatValidationErrors(compositeError *openapierrors.CompositeError) []*types.HTTPValidationErrorDetail {
	valErrs := make([]*types.HTTPValidationErrorDetail, 0, len(compositeError.Errors))
	for _, err := range compositeError.Errors {
		var validationError *openapierrors.Validation
		if errors.As(err, &validationError) {
			valErrs = append(valErrs, &types.HTTPValidationErrorDetail{
				Key:   &validationError.Name,
				In:    &validationError.In,
				Error: swagErrorMessage(validationError),
			})
			continue
		}

		var nested *openapierrors.CompositeError
		if errors.As(err, &nested) {
			valErrs = append(valErrs, formatValidationErrors(nested)...)
		}
	}
	return valErrs
}

func swagErrorMessage(err *openapierrors.Validation) *string {
	msg := err.Error()
	return &msg
}
