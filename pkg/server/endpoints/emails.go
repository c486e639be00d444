package endpoints

import (
	"net/http"

	"github.com/dealhub/dealhub/pkg/server"
)

// EmailCheckResponse is the response of GET /emails/check
type EmailCheckResponse struct {
	Email  string `json:"email"`
	Exists bool   `json:"exists"`
}

// RegisterEmailsEndpoints registers the email existence check used by
// sign-up forms
func RegisterEmailsEndpoints(s *server.Server) {
	users := s.Users

	s.Router.HandleFunc("/emails/check", func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if email == "" {
			respondWithError(w, http.StatusBadRequest, "Missing email parameter")
			return
		}

		exists, err := users.EmailExists(email)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to check email")
			return
		}

		respondWithJSON(w, http.StatusOK, EmailCheckResponse{Email: email, Exists: exists})
	}).Methods("GET")
}
