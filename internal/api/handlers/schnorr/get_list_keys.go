package schnorr

import (
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github.com/altkdf/schnorr-canister/internal/api"
	"github.com/altkdf/schnorr-canister/internal/signing"
	"github.com/altkdf/schnorr-canister/internal/types"
	"github.com/altkdf/schnorr-canister/internal/util"
)

func GetListKeysRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Schnorr.GET("/keys", getListKeysHandler(s))
}

func getListKeysHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		principal, err := s.CallerPrincipal(c)
		if err != nil {
			return err
		}

		keyIDs, err := s.Keyring.ListKeys(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to list keys")
			return mapServiceError(err)
		}

		response := &types.GetListKeysResponse{
			Keys: make([]*types.GetKeyResponse, 0, len(keyIDs)),
		}
		for _, keyID := range keyIDs {
			resp, err := s.SigningService.PublicKey(ctx, &signing.PublicKeyRequest{
				KeyID:     keyID,
				Principal: principal,
			})
			if err != nil {
				log.Error().Err(err).Str("key", keyID.String()).Msg("Failed to derive caller key")
				return mapServiceError(err)
			}

			response.Keys = append(response.Keys, &types.GetKeyResponse{
				Algorithm: swag.String(string(keyID.Algorithm)),
				Name:      swag.String(keyID.Name),
				PublicKey: strfmt.Base64(resp.PublicKey),
			})
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
