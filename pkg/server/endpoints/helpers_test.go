package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/dealhub/dealhub/pkg/audit"
	"github.com/dealhub/dealhub/pkg/model"
	"github.com/dealhub/dealhub/pkg/notify"
	"github.com/dealhub/dealhub/pkg/optimistic"
	"github.com/dealhub/dealhub/pkg/server"
	"github.com/dealhub/dealhub/pkg/session"
)

func TestMain(m *testing.M) {
	audit.SetEnabled(false)
	os.Exit(m.Run())
}

type testStores struct {
	users     *MockUsersStore
	products  *MockProductsStore
	ads       *MockAdsStore
	buttons   *MockActionButtonsStore
	merchants *MockMerchantsStore
	health    *MockHealthStore
}

// newTestServer wires a server over mock stores and registers every
// endpoint on it.
func newTestServer(t *testing.T) (*server.Server, *testStores) {
	t.Helper()

	stores := &testStores{
		users:     NewMockUsersStore(),
		products:  NewMockProductsStore(),
		ads:       NewMockAdsStore(),
		buttons:   NewMockActionButtonsStore(),
		merchants: NewMockMerchantsStore(),
		health:    NewMockHealthStore(),
	}

	reporter := notify.NewLogReporter()
	s := &server.Server{
		Router:    mux.NewRouter().UseEncodedPath(),
		Signer:    session.NewSigner([]byte("endpoint-test-secret"), time.Hour),
		Users:     stores.users,
		Products:  stores.products,
		Ads:       stores.ads,
		Buttons:   stores.buttons,
		Merchants: stores.merchants,
		Health:    stores.health,
		Wishlists: optimistic.NewStore[[]string](reporter),
		Reporter:  reporter,
	}
	RegisterAll(s)

	return s, stores
}

// tokenFor mints a session token for an account with the given role and
// permission grants.
func tokenFor(t *testing.T, s *server.Server, userID, role string, permissions ...string) string {
	t.Helper()

	token, err := s.Signer.Mint(&model.User{
		ID:          userID,
		Email:       userID + "@dealhub.dev",
		Role:        role,
		Permissions: permissions,
	})
	require.NoError(t, err)
	return token
}

// doJSON runs a request through the router, optionally authenticated,
// with a JSON body.
func doJSON(t *testing.T, s *server.Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "10.0.0.1:51234"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
