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

// AdRequest is the body of ad create and update calls
type AdRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"omitempty,url"`
	LinkURL     string `json:"link_url" validate:"omitempty,url"`
	Position    int    `json:"position" validate:"gte=0"`
	IsActive    bool   `json:"is_active"`
}

func (req *AdRequest) apply(ad *model.Ad) {
	ad.Title = req.Title
	ad.Description = req.Description
	ad.Image = req.Image
	ad.LinkURL = req.LinkURL
	ad.Position = req.Position
	ad.IsActive = req.IsActive
}

// RegisterAdsEndpoints registers the promotional banner endpoints
func RegisterAdsEndpoints(s *server.Server) {
	ads := s.Ads
	sessionMiddleware := middleware.NewSessionAuthenticator(s.Signer)

	// GET /ads - public, position-ordered; active=true filters to
	// active banners
	s.Router.HandleFunc("/ads", func(w http.ResponseWriter, r *http.Request) {
		activeOnly := r.URL.Query().Get("active") == "true"

		list, err := ads.ListAds(activeOnly)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list ads")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{"ads": list})
	}).Methods("GET")

	authed := s.Router.PathPrefix("/ads").Subrouter()
	authed.Use(sessionMiddleware.Middleware)

	// POST /ads
	authed.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		var req AdRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		id, ok := authorize(w, r, rbac.ActionCreate, rbac.Resource{Kind: "ad"}, "new")
		if !ok {
			return
		}

		ad := &model.Ad{ID: uuid.NewString(), MerchantID: id.UserID}
		req.apply(ad)

		if err := ads.CreateAd(ad); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create ad")
			return
		}

		respondWithJSON(w, http.StatusCreated, ad)
	}).Methods("POST")

	// PUT /ads/{id}
	authed.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		adID := mux.Vars(r)["id"]

		var req AdRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		ad, err := ads.FetchAd(adID)
		if err != nil {
			if errors.Is(err, store.ErrAdNotFound) {
				respondWithError(w, http.StatusNotFound, "Ad not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch ad")
			return
		}

		resource := rbac.Resource{Kind: "ad", OwnerID: ad.MerchantID}
		if _, ok := authorize(w, r, rbac.ActionUpdate, resource, adID); !ok {
			return
		}

		req.apply(ad)
		if err := ads.UpdateAd(ad); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update ad")
			return
		}

		respondWithJSON(w, http.StatusOK, ad)
	}).Methods("PUT")

	// DELETE /ads/{id}
	authed.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		adID := mux.Vars(r)["id"]

		ad, err := ads.FetchAd(adID)
		if err != nil {
			if errors.Is(err, store.ErrAdNotFound) {
				respondWithError(w, http.StatusNotFound, "Ad not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch ad")
			return
		}

		resource := rbac.Resource{Kind: "ad", OwnerID: ad.MerchantID}
		if _, ok := authorize(w, r, rbac.ActionDelete, resource, adID); !ok {
			return
		}

		if err := ads.DeleteAd(adID); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete ad")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}).Methods("DELETE")
}
