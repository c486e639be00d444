package endpoints

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dealhub/dealhub/pkg/model"
	"github.com/dealhub/dealhub/pkg/render"
	"github.com/dealhub/dealhub/pkg/server"
	"github.com/dealhub/dealhub/pkg/server/middleware"
	"github.com/dealhub/dealhub/pkg/server/store"
)

// MerchantRequest is the body of PUT /merchants/{id}
type MerchantRequest struct {
	BusinessName string `json:"business_name" validate:"required,max=200"`
	About        string `json:"about"`
	Phone        string `json:"phone" validate:"max=30"`
	Address      string `json:"address" validate:"max=300"`
	Website      string `json:"website" validate:"omitempty,url"`
}

// MerchantResponse is the public view of merchant details
type MerchantResponse struct {
	model.Merchant
	AboutHTML string `json:"about_html,omitempty"`
}

// RegisterMerchantsEndpoints registers the merchant detail endpoints
func RegisterMerchantsEndpoints(s *server.Server) {
	merchants := s.Merchants
	sessionMiddleware := middleware.NewSessionAuthenticator(s.Signer)

	// GET /merchants/{id} - public
	s.Router.HandleFunc("/merchants/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		merchant, err := merchants.FetchMerchant(id)
		if err != nil {
			if errors.Is(err, store.ErrMerchantNotFound) {
				respondWithError(w, http.StatusNotFound, "Merchant not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch merchant")
			return
		}

		response := MerchantResponse{Merchant: *merchant}
		if merchant.About != "" {
			if html, err := render.Markdown(merchant.About); err == nil {
				response.AboutHTML = html
			}
		}

		respondWithJSON(w, http.StatusOK, response)
	}).Methods("GET")

	authed := s.Router.PathPrefix("/merchants").Subrouter()
	authed.Use(sessionMiddleware.Middleware)

	// PUT /merchants/{id} - merchants maintain their own details,
	// admins can edit anyone's
	authed.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		merchantID := mux.Vars(r)["id"]

		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}
		if id.UserID != merchantID && !id.IsAdmin() {
			respondWithJSON(w, http.StatusForbidden, map[string]interface{}{
				"error":  "Forbidden",
				"reason": "not-owner",
			})
			return
		}

		var req MerchantRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		merchant := &model.Merchant{
			ID:           merchantID,
			BusinessName: req.BusinessName,
			About:        req.About,
			Phone:        req.Phone,
			Address:      req.Address,
			Website:      req.Website,
		}
		if err := merchants.UpsertMerchant(merchant); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to save merchant")
			return
		}

		respondWithJSON(w, http.StatusOK, merchant)
	}).Methods("PUT")
}
