package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-openapi/runtime"
	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/altkdf/schnorr-canister/internal/api"
)

// GenericPayload is a free-form JSON request body.
type GenericPayload map[string]interface{}

// Reader marshals the payload into a request body reader.
func (g GenericPayload) Reader(t *testing.T) *bytes.Reader {
	t.Helper()

	b, err := json.Marshal(g)
	require.NoError(t, err)

	return bytes.NewReader(b)
}

// PerformRequest runs a request against the server's echo instance and
// records the response.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body GenericPayload, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = body.Reader(t)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for key, vals := range headers {
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)

	return res
}

// ParseResponseAndValidate unmarshals the recorded response into v and
// runs its payload validation.
func ParseResponseAndValidate(t *testing.T, res *httptest.ResponseRecorder, v runtime.Validatable) {
	t.Helper()

	require.NoError(t, json.Unmarshal(res.Body.Bytes(), v))
	require.NoError(t, v.Validate(strfmt.Default))
}
