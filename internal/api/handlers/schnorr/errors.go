package schnorr

import (
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/pkg/errors"

	"github.com/altkdf/schnorr-canister/internal/api/httperrors"
	"github.com/altkdf/schnorr-canister/internal/schnorr"
	"github.com/altkdf/schnorr-canister/internal/types"
)

// mapServiceError translates domain errors into public HTTP errors.
func mapServiceError(err error) *httperrors.HTTPError {
	switch {
	case errors.Is(err, schnorr.ErrUnknownKey):
		return httperrors.NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeGeneric, "Unknown key")
	case errors.Is(err, schnorr.ErrUnsupportedAlgorithm):
		return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Unsupported algorithm")
	case errors.Is(err, schnorr.ErrInvalidDerivationPath):
		return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid derivation path")
	case errors.Is(err, schnorr.ErrInvalidMessage):
		return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid message")
	default:
		return httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, "Computation failed").SetInternal(err)
	}
}

// derivationPath converts the base64 wire representation into raw segments.
func derivationPath(path []strfmt.Base64) [][]byte {
	if len(path) == 0 {
		return nil
	}
	segments := make([][]byte, len(path))
	for i, segment := range path {
		segments[i] = []byte(segment)
	}
	return segments
}
