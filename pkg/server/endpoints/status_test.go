package endpoints

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Run("healthy database", func(t *testing.T) {
		s, stores := newTestServer(t)
		stores.health.On("CheckConnectivity").Return(nil)

		rec := doJSON(t, s, http.MethodGet, "/status", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp StatusResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "ok", resp.Status)
	})

	t.Run("unreachable database", func(t *testing.T) {
		s, stores := newTestServer(t)
		stores.health.On("CheckConnectivity").Return(errors.New("dial tcp: refused"))

		rec := doJSON(t, s, http.MethodGet, "/status", "", nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestRootStatusPage(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Your Dealhub server is running!")
}
