package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/dealhub/dealhub/pkg/blob"
	"github.com/dealhub/dealhub/pkg/notify"
	"github.com/dealhub/dealhub/pkg/optimistic"
	"github.com/dealhub/dealhub/pkg/server/store"
	gormstore "github.com/dealhub/dealhub/pkg/server/store/gorm"
	"github.com/dealhub/dealhub/pkg/session"
)

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Signer *session.Signer

	Users     store.UsersStore
	Products  store.ProductsStore
	Ads       store.AdsStore
	Buttons   store.ActionButtonsStore
	Merchants store.MerchantsStore
	Health    store.HealthStore

	// Wishlists holds the optimistic wishlist projections, keyed by
	// user ID.
	Wishlists *optimistic.Store[[]string]
	Reporter  notify.Reporter

	// Blob is nil when no object store is configured; upload endpoints
	// respond 503 in that case.
	Blob *blob.Store

	srv *http.Server
}

func NewServer(
	db *gorm.DB,
	signer *session.Signer,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	reporter := notify.NewLogReporter()

	return &Server{
		Router:    router,
		DB:        db,
		Signer:    signer,
		Users:     gormstore.NewUsersStore(db),
		Products:  gormstore.NewProductsStore(db),
		Ads:       gormstore.NewAdsStore(db),
		Buttons:   gormstore.NewActionButtonsStore(db),
		Merchants: gormstore.NewMerchantsStore(db),
		Health:    gormstore.NewHealthStore(db),
		Wishlists: optimistic.NewStore[[]string](reporter),
		Reporter:  reporter,
		srv:       srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
