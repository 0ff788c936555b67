package schnorr

import (
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/altkdf/schnorr-canister/internal/api"
	"github.com/altkdf/schnorr-canister/internal/schnorr"
	"github.com/altkdf/schnorr-canister/internal/signing"
	"github.com/altkdf/schnorr-canister/internal/types"
	"github.com/altkdf/schnorr-canister/internal/util"
)

func PostSignRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Schnorr.POST("/sign", postSignHandler(s))
}

func postSignHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.SignWithSchnorrPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		algorithm, err := schnorr.ParseAlgorithm(swag.StringValue(body.KeyID.Algorithm))
		if err != nil {
			return mapServiceError(err)
		}

		// Signing is always scoped by the caller, a caller can never
		// sign under another principal's derived keys.
		principal, err := s.CallerPrincipal(c)
		if err != nil {
			return err
		}

		req := &signing.SignRequest{
			KeyID: schnorr.KeyID{
				Algorithm: algorithm,
				Name:      swag.StringValue(body.KeyID.Name),
			},
			Principal:      principal,
			DerivationPath: derivationPath(body.DerivationPath),
			Message:        []byte(*body.Message),
		}

		resp, err := s.SigningService.Sign(ctx, req)
		if err != nil {
			log.Debug().Err(err).Str("key_name", req.KeyID.Name).Msg("Failed to sign")
			return mapServiceError(err)
		}

		response := &types.SignWithSchnorrResponse{
			Signature: strfmt.Base64(resp.Signature),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
