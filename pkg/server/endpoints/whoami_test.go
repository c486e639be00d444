package endpoints

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhoami(t *testing.T) {
	t.Run("returns the session's identity snapshot", func(t *testing.T) {
		s, _ := newTestServer(t)
		token := tokenFor(t, s, "meredith", "merchant", "add", "edit")

		rec := doJSON(t, s, http.MethodGet, "/whoami", token, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp WhoamiResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "meredith", resp.UserID)
		assert.Equal(t, "merchant", resp.Role)
		assert.Equal(t, []string{"add", "edit"}, resp.Permissions)
		assert.NotZero(t, resp.TokenIAT)
	})

	t.Run("requires a session", func(t *testing.T) {
		s, _ := newTestServer(t)

		rec := doJSON(t, s, http.MethodGet, "/whoami", "", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestEmailCheck(t *testing.T) {
	t.Run("existing email", func(t *testing.T) {
		s, stores := newTestServer(t)
		stores.users.On("EmailExists", "alice@dealhub.dev").Return(true, nil)

		rec := doJSON(t, s, http.MethodGet, "/emails/check?email=alice%40dealhub.dev", "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp EmailCheckResponse
		decodeBody(t, rec, &resp)
		assert.True(t, resp.Exists)
	})

	t.Run("missing parameter", func(t *testing.T) {
		s, _ := newTestServer(t)

		rec := doJSON(t, s, http.MethodGet, "/emails/check", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
