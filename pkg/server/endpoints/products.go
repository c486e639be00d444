package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dealhub/dealhub/pkg/config"
	"github.com/dealhub/dealhub/pkg/model"
	"github.com/dealhub/dealhub/pkg/rbac"
	"github.com/dealhub/dealhub/pkg/render"
	"github.com/dealhub/dealhub/pkg/server"
	"github.com/dealhub/dealhub/pkg/server/middleware"
	"github.com/dealhub/dealhub/pkg/server/store"
)

// ProductRequest is the body of product create and update calls
type ProductRequest struct {
	Title              string  `json:"title" validate:"required,max=200"`
	Business           string  `json:"business" validate:"max=200"`
	Category           string  `json:"category" validate:"max=100"`
	Description        string  `json:"description"`
	Image              string  `json:"image" validate:"omitempty,url"`
	OriginalPrice      float64 `json:"original_price" validate:"gte=0"`
	DiscountedPrice    float64 `json:"discounted_price" validate:"gte=0"`
	DiscountPercentage int     `json:"discount_percentage" validate:"gte=0,lte=100"`
	Location           string  `json:"location" validate:"max=200"`
	RedirectLink       string  `json:"redirect_link" validate:"omitempty,url"`
	Badge              string  `json:"badge" validate:"max=50"`
	IsPopular          bool    `json:"is_popular"`
	IsArchived         bool    `json:"is_archived"`
}

// ProductListResponse is the response of GET /products
type ProductListResponse struct {
	Products []model.Product `json:"products"`
	Count    *int64          `json:"count,omitempty"`
}

// ProductResponse is the response of GET /products/{id}
type ProductResponse struct {
	model.Product
	DescriptionHTML string `json:"description_html,omitempty"`
}

func (req *ProductRequest) apply(product *model.Product) {
	product.Title = req.Title
	product.Business = req.Business
	product.Category = req.Category
	product.Description = req.Description
	product.Image = req.Image
	product.OriginalPrice = req.OriginalPrice
	product.DiscountedPrice = req.DiscountedPrice
	product.DiscountPercentage = req.DiscountPercentage
	product.Location = req.Location
	product.RedirectLink = req.RedirectLink
	product.Badge = req.Badge
	product.IsPopular = req.IsPopular
	product.IsArchived = req.IsArchived
}

func parseListQuery(r *http.Request) store.ProductQuery {
	q := store.ProductQuery{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Sort:     r.URL.Query().Get("sort"),
	}

	limitMax := config.Get().ListLimitMax
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}
	if q.Limit == 0 || q.Limit > limitMax {
		q.Limit = limitMax
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		q.Offset = offset
	}
	return q
}

// RegisterProductsEndpoints registers the product endpoints
func RegisterProductsEndpoints(s *server.Server) {
	products := s.Products
	sessionMiddleware := middleware.NewSessionAuthenticator(s.Signer)

	// GET /products - public listing with search, category, sort,
	// limit, offset; count=true adds the total match count
	s.Router.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		q := parseListQuery(r)

		list, err := products.ListProducts(q)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list products")
			return
		}

		response := ProductListResponse{Products: list}
		if r.URL.Query().Get("count") == "true" {
			count, err := products.CountProducts(q)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to count products")
				return
			}
			response.Count = &count
		}

		respondWithJSON(w, http.StatusOK, response)
	}).Methods("GET")

	// GET /products/{id} - public, description rendered to HTML
	s.Router.HandleFunc("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		product, err := products.FetchProduct(id)
		if err != nil {
			if errors.Is(err, store.ErrProductNotFound) {
				respondWithError(w, http.StatusNotFound, "Product not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
			return
		}

		response := ProductResponse{Product: *product}
		if product.Description != "" {
			if html, err := render.Markdown(product.Description); err == nil {
				response.DescriptionHTML = html
			}
		}

		respondWithJSON(w, http.StatusOK, response)
	}).Methods("GET")

	// POST /products/{id}/views - public view counter
	s.Router.HandleFunc("/products/{id}/views", func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		if err := products.IncrementViews(id); err != nil {
			if errors.Is(err, store.ErrProductNotFound) {
				respondWithError(w, http.StatusNotFound, "Product not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to record view")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
	}).Methods("POST")

	// Mutations require a session and pass through the access resolver
	authed := s.Router.PathPrefix("/products").Subrouter()
	authed.Use(sessionMiddleware.Middleware)

	// POST /products
	authed.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		var req ProductRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		id, ok := authorize(w, r, rbac.ActionCreate, rbac.Resource{Kind: "product"}, "new")
		if !ok {
			return
		}

		product := &model.Product{ID: uuid.NewString(), MerchantID: id.UserID}
		req.apply(product)

		if err := products.CreateProduct(product); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create product")
			return
		}

		respondWithJSON(w, http.StatusCreated, product)
	}).Methods("POST")

	// PUT /products/{id}
	authed.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		productID := mux.Vars(r)["id"]

		var req ProductRequest
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

		resource := rbac.Resource{Kind: "product", OwnerID: product.MerchantID}
		if _, ok := authorize(w, r, rbac.ActionUpdate, resource, productID); !ok {
			return
		}

		req.apply(product)
		if err := products.UpdateProduct(product); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update product")
			return
		}

		respondWithJSON(w, http.StatusOK, product)
	}).Methods("PUT")

	// DELETE /products/{id}
	authed.HandleFunc("/{id}", func(w http.ResponseWriter, r *http.Request) {
		productID := mux.Vars(r)["id"]

		product, err := products.FetchProduct(productID)
		if err != nil {
			if errors.Is(err, store.ErrProductNotFound) {
				respondWithError(w, http.StatusNotFound, "Product not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch product")
			return
		}

		resource := rbac.Resource{Kind: "product", OwnerID: product.MerchantID}
		if _, ok := authorize(w, r, rbac.ActionDelete, resource, productID); !ok {
			return
		}

		if err := products.DeleteProduct(productID); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete product")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}).Methods("DELETE")
}
