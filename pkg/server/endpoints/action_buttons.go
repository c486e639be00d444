package endpoints

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dealhub/dealhub/pkg/model"
	"github.com/dealhub/dealhub/pkg/rbac"
	"github.com/dealhub/dealhub/pkg/server"
	"github.com/dealhub/dealhub/pkg/server/middleware"
	"github.com/dealhub/dealhub/pkg/server/store"
)

// ActionButtonRequest is the body of button create and update calls
type ActionButtonRequest struct {
	Label    string `json:"label" validate:"required,max=50"`
	URL      string `json:"url" validate:"required,url"`
	Position int    `json:"position" validate:"gte=0"`
	IsActive bool   `json:"is_active"`
}

func (req *ActionButtonRequest) apply(button *model.ActionButton) {
	button.Label = req.Label
	button.URL = req.URL
	button.Position = req.Position
	button.IsActive = req.IsActive
}

// RegisterActionButtonsEndpoints registers the call-to-action button
// endpoints, nested under their product
func RegisterActionButtonsEndpoints(s *server.Server) {
	buttons := s.Buttons
	products := s.Products
	sessionMiddleware := middleware.NewSessionAuthenticator(s.Signer)

	// GET /products/{id}/buttons - public, position-ordered;
	// active=true filters to active buttons
	s.Router.HandleFunc("/products/{id}/buttons", func(w http.ResponseWriter, r *http.Request) {
		productID := mux.Vars(r)["id"]
		activeOnly := r.URL.Query().Get("active") == "true"

		list, err := buttons.ListButtons(productID, activeOnly)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list buttons")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"buttons": list})
	}).Methods("GET")

	authed := s.Router.PathPrefix("/products/{id}/buttons").Subrouter()
	authed.Use(sessionMiddleware.Middleware)

	// POST /products/{id}/buttons - gated on the owning product
	authed.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		productID := mux.Vars(r)["id"]

		var req ActionButtonRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		product, err := products.FetchProduct(productID)
		if err != nil {
			if errors.Is(err, store.ErrProductNotFound) {
				respondWithError(w, http.StatusNotFound, "Product not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
			return
		}

		resource := rbac.Resource{Kind: "action-button", OwnerID: product.MerchantID}
		if _, ok := authorize(w, r, rbac.ActionUpdate, resource, productID); !ok {
			return
		}

		button := &model.ActionButton{
			ID:         uuid.NewString(),
			ProductID:  productID,
			MerchantID: product.MerchantID,
		}
		req.apply(button)

		if err := buttons.CreateButton(button); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create button")
			return
		}

		respondWithJSON(w, http.StatusCreated, button)
	}).Methods("POST")

	// PUT /products/{id}/buttons/{buttonID}
	authed.HandleFunc("/{buttonID}", func(w http.ResponseWriter, r *http.Request) {
		buttonID := mux.Vars(r)["buttonID"]

		var req ActionButtonRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		button, err := buttons.FetchButton(buttonID)
		if err != nil {
			if errors.Is(err, store.ErrActionButtonNotFound) {
				respondWithError(w, http.StatusNotFound, "Button not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch button")
			return
		}

		resource := rbac.Resource{Kind: "action-button", OwnerID: button.MerchantID}
		if _, ok := authorize(w, r, rbac.ActionUpdate, resource, buttonID); !ok {
			return
		}

		req.apply(button)
		if err := buttons.UpdateButton(button); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update button")
			return
		}

		respondWithJSON(w, http.StatusOK, button)
	}).Methods("PUT")

	// DELETE /products/{id}/buttons/{buttonID}
	authed.HandleFunc("/{buttonID}", func(w http.ResponseWriter, r *http.Request) {
		buttonID := mux.Vars(r)["buttonID"]

		button, err := buttons.FetchButton(buttonID)
		if err != nil {
			if errors.Is(err, store.ErrActionButtonNotFound) {
				respondWithError(w, http.StatusNotFound, "Button not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch button")
			return
		}

		resource := rbac.Resource{Kind: "action-button", OwnerID: button.MerchantID}
		if _, ok := authorize(w, r, rbac.ActionDelete, resource, buttonID); !ok {
			return
		}

		if err := buttons.DeleteButton(buttonID); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete button")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}).Methods("DELETE")
}
