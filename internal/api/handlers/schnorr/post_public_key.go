package schnorr

import (
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/altkdf/schnorr-canister/internal/api"
	"github.com/altkdf/schnorr-canister/internal/api/httperrors"
	"github.com/altkdf/schnorr-canister/internal/schnorr"
	"github.com/altkdf/schnorr-canister/internal/signing"
	"github.com/altkdf/schnorr-canister/internal/types"
	"github.com/altkdf/schnorr-canister/internal/util"
)

func PostPublicKeyRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Schnorr.POST("/public-key", postPublicKeyHandler(s))
}

func postPublicKeyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.SchnorrPublicKeyPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		algorithm, err := schnorr.ParseAlgorithm(swag.StringValue(body.KeyID.Algorithm))
		if err != nil {
			return mapServiceError(err)
		}

		// The key is scoped by the given canister principal, or by the
		// caller itself when none is supplied.
		principal, err := s.CallerPrincipal(c)
		if err != nil {
			return err
		}
		if body.CanisterID != "" {
			principal, err = schnorr.PrincipalFromText(body.CanisterID)
			if err != nil {
				return httperrors.NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeGeneric, "Invalid canister_id").SetInternal(err)
			}
		}

		req := &signing.PublicKeyRequest{
			KeyID: schnorr.KeyID{
				Algorithm: algorithm,
				Name:      swag.StringValue(body.KeyID.Name),
			},
			Principal:      principal,
			DerivationPath: derivationPath(body.DerivationPath),
		}

		resp, err := s.SigningService.PublicKey(ctx, req)
		if err != nil {
			log.Debug().Err(err).Str("key_name", req.KeyID.Name).Msg("Failed to derive public key")
			return mapServiceError(err)
		}

		response := &types.SchnorrPublicKeyResponse{
			PublicKey: strfmt.Base64(resp.PublicKey),
			ChainCode: strfmt.Base64(resp.ChainCode),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
