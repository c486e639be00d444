package endpoints

import (
	"github.com/dealhub/dealhub/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterAuthenticateEndpoints(srv)
	RegisterProductsEndpoints(srv)
	RegisterAdsEndpoints(srv)
	RegisterActionButtonsEndpoints(srv)
	RegisterMerchantsEndpoints(srv)
	RegisterUsersEndpoints(srv)
	RegisterWishlistEndpoints(srv)
	RegisterEmailsEndpoints(srv)
	RegisterUploadsEndpoints(srv)
	RegisterStatusEndpoints(srv)
	RegisterWhoamiEndpoint(srv)
}
