package common_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altkdf/schnorr-canister/internal/api"
	"github.com/altkdf/schnorr-canister/internal/test"
)

func TestGetHealthy(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", fmt.Sprintf("/-/healthy?mgmt-secret=%s", s.Config.Management.Secret), nil, nil)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())
		assert.Equal(t, "Ready.", res.Body.String())
	})
}

func TestGetHealthyRequiresSecret(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/-/healthy?mgmt-secret=wrong", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)

		res = test.PerformRequest(t, s, "GET", "/-/healthy", nil, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}
