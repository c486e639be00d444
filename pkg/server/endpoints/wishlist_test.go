package endpoints

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dealhub/dealhub/pkg/model"
)

func waitForCall(t *testing.T, called <-chan struct{}) {
	t.Helper()
	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for remote write")
	}
}

func TestGetWishlist(t *testing.T) {
	s, stores := newTestServer(t)
	token := tokenFor(t, s, "uma", "user")

	stores.users.On("FetchUser", "uma").Return(&model.User{
		ID:       "uma",
		Wishlist: []string{"p-1", "p-2"},
	}, nil)
	stores.products.On("FetchProductsByIDs", []string{"p-1", "p-2"}).Return([]model.Product{
		{ID: "p-1", Title: "Deal one"},
		{ID: "p-2", Title: "Deal two"},
	}, nil)

	rec := doJSON(t, s, http.MethodGet, "/wishlist", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp WishlistResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, []string{"p-1", "p-2"}, resp.ProductIDs)
	assert.Len(t, resp.Products, 2)
}

func TestToggleWishlistAdds(t *testing.T) {
	s, stores := newTestServer(t)
	token := tokenFor(t, s, "uma", "user")

	stores.users.On("FetchUser", "uma").Return(&model.User{ID: "uma", Wishlist: []string{}}, nil)

	called := make(chan struct{})
	stores.users.On("AddToWishlist", "uma", "p-9").
		Run(func(_ mock.Arguments) { close(called) }).Return(nil)

	rec := doJSON(t, s, http.MethodPost, "/wishlist/p-9/toggle", token, nil)

	// The response reflects the projection before the write lands.
	require.Equal(t, http.StatusAccepted, rec.Code)
	var resp WishlistResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, []string{"p-9"}, resp.ProductIDs)
	require.NotNil(t, resp.InWishlist)
	assert.True(t, *resp.InWishlist)

	waitForCall(t, called)
}

func TestToggleWishlistTwiceRemoves(t *testing.T) {
	s, stores := newTestServer(t)
	token := tokenFor(t, s, "uma", "user")

	stores.users.On("FetchUser", "uma").Return(&model.User{ID: "uma", Wishlist: []string{}}, nil)

	added := make(chan struct{})
	removed := make(chan struct{})
	stores.users.On("AddToWishlist", "uma", "p-9").
		Run(func(_ mock.Arguments) { close(added) }).Return(nil)
	stores.users.On("RemoveFromWishlist", "uma", "p-9").
		Run(func(_ mock.Arguments) { close(removed) }).Return(nil)

	doJSON(t, s, http.MethodPost, "/wishlist/p-9/toggle", token, nil)
	waitForCall(t, added)

	rec := doJSON(t, s, http.MethodPost, "/wishlist/p-9/toggle", token, nil)
	waitForCall(t, removed)

	var resp WishlistResponse
	decodeBody(t, rec, &resp)
	assert.Empty(t, resp.ProductIDs)
	require.NotNil(t, resp.InWishlist)
	assert.False(t, *resp.InWishlist)
}

func TestToggleWishlistRollsBackOnFailure(t *testing.T) {
	s, stores := newTestServer(t)
	token := tokenFor(t, s, "uma", "user")

	stores.users.On("FetchUser", "uma").Return(&model.User{
		ID:       "uma",
		Wishlist: []string{"p-1"},
	}, nil)

	failed := make(chan struct{})
	stores.users.On("AddToWishlist", "uma", "p-9").
		Run(func(_ mock.Arguments) { close(failed) }).
		Return(errors.New("connection refused"))

	rec := doJSON(t, s, http.MethodPost, "/wishlist/p-9/toggle", token, nil)

	// Optimistic response includes the new item.
	require.Equal(t, http.StatusAccepted, rec.Code)
	var resp WishlistResponse
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp.ProductIDs, "p-9")

	waitForCall(t, failed)

	// The projection reverts to its pre-toggle state.
	assert.Eventually(t, func() bool {
		projection, ok := s.Wishlists.Get("uma")
		return ok && len(projection) == 1 && projection[0] == "p-1"
	}, 2*time.Second, 10*time.Millisecond)
}
