package endpoints

import (
	"net/http"

	"github.com/dealhub/dealhub/pkg/audit"
	"github.com/dealhub/dealhub/pkg/server"
	"github.com/dealhub/dealhub/pkg/server/middleware"
)

// WhoamiResponse represents the response from the /whoami endpoint
type WhoamiResponse struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	ClientIP    string   `json:"client_ip,omitempty"`
	TokenIAT    int64    `json:"token_iat,omitempty"`
}

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(s *server.Server) {
	sessionMiddleware := middleware.NewSessionAuthenticator(s.Signer)

	whoamiRouter := s.Router.PathPrefix("/whoami").Subrouter()
	whoamiRouter.Use(sessionMiddleware.Middleware)

	whoamiRouter.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		clientIP := ""
		if id.RemoteIP != nil {
			clientIP = id.RemoteIP.String()
		}
		audit.Log(audit.WhoamiEvent{UserID: id.UserID, ClientIP: clientIP, Success: true})

		response := WhoamiResponse{
			UserID:      id.UserID,
			Email:       id.Email,
			Role:        string(id.Role),
			Permissions: id.Permissions.Strings(),
			ClientIP:    clientIP,
		}
		if !id.IssuedAt.IsZero() {
			response.TokenIAT = id.IssuedAt.Unix()
		}
		respondWithJSON(w, http.StatusOK, response)
	}
}
