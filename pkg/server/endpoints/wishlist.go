package endpoints

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dealhub/dealhub/pkg/audit"
	"github.com/dealhub/dealhub/pkg/model"
	"github.com/dealhub/dealhub/pkg/server"
	"github.com/dealhub/dealhub/pkg/server/middleware"
)

// WishlistResponse is the response of the wishlist endpoints. Product
// IDs come from the optimistic projection; Products carries the
// listings that still exist.
type WishlistResponse struct {
	ProductIDs []string        `json:"product_ids"`
	Products   []model.Product `json:"products,omitempty"`
	InWishlist *bool           `json:"in_wishlist,omitempty"`
}

// RegisterWishlistEndpoints registers the wishlist endpoints
func RegisterWishlistEndpoints(s *server.Server) {
	users := s.Users
	products := s.Products
	wishlists := s.Wishlists
	sessionMiddleware := middleware.NewSessionAuthenticator(s.Signer)

	authed := s.Router.PathPrefix("/wishlist").Subrouter()
	authed.Use(sessionMiddleware.Middleware)

	// seed returns the current projection, loading it from the
	// database the first time a user's wishlist is touched.
	seed := func(userID string) ([]string, error) {
		if projection, ok := wishlists.Get(userID); ok {
			return projection, nil
		}
		user, err := users.FetchUser(userID)
		if err != nil {
			return nil, err
		}
		projection := append([]string{}, user.Wishlist...)
		wishlists.Set(userID, projection)
		return projection, nil
	}

	// GET /wishlist - the projection plus its product listings
	authed.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		projection, err := seed(id.UserID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load wishlist")
			return
		}

		list, err := products.FetchProductsByIDs(projection)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load wishlist products")
			return
		}

		respondWithJSON(w, http.StatusOK, WishlistResponse{
			ProductIDs: projection,
			Products:   list,
		})
	}).Methods("GET")

	// POST /wishlist/{productID}/toggle - the projection flips
	// immediately; the database write runs asynchronously and rolls
	// the projection back on failure.
	authed.HandleFunc("/{productID}/toggle", func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		productID := mux.Vars(r)["productID"]

		projection, err := seed(id.UserID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load wishlist")
			return
		}

		adding := true
		for _, pid := range projection {
			if pid == productID {
				adding = false
				break
			}
		}

		userID := id.UserID
		remote := func(ctx context.Context) error {
			var err error
			if adding {
				err = users.AddToWishlist(userID, productID)
			} else {
				err = users.RemoveFromWishlist(userID, productID)
			}
			if err != nil {
				audit.Log(audit.RollbackEvent{
					UserID:       userID,
					Operation:    "wishlist-toggle",
					Key:          productID,
					ErrorMessage: err.Error(),
				})
			}
			return err
		}

		// The write outlives the request, so it cannot ride on the
		// request context.
		wishlists.Apply(context.Background(), "wishlist-toggle", userID, func(current []string) []string {
			next := make([]string, 0, len(current)+1)
			for _, pid := range current {
				if pid != productID {
					next = append(next, pid)
				}
			}
			if len(next) == len(current) {
				next = append(next, productID)
			}
			return next
		}, remote)

		updated, _ := wishlists.Get(userID)
		inWishlist := false
		for _, pid := range updated {
			if pid == productID {
				inWishlist = true
				break
			}
		}

		respondWithJSON(w, http.StatusAccepted, WishlistResponse{
			ProductIDs: updated,
			InWishlist: &inWishlist,
		})
	}).Methods("POST")
}
