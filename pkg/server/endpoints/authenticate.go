package endpoints

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dealhub/dealhub/pkg/audit"
	"github.com/dealhub/dealhub/pkg/config"
	"github.com/dealhub/dealhub/pkg/model"
	"github.com/dealhub/dealhub/pkg/server"
	"github.com/dealhub/dealhub/pkg/server/middleware"
	"github.com/dealhub/dealhub/pkg/server/store"
)

// LoginRequest is the body of POST /authn/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest is the body of POST /authn/signup
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"max=100"`
}

// SessionResponse carries a freshly minted session token
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name,omitempty"`
	PhotoURL    string   `json:"photo_url,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func userResponse(user *model.User) UserResponse {
	permissions := user.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		Role:        user.Role,
		Permissions: permissions,
	}
}

// RegisterAuthenticateEndpoints registers the login and signup endpoints
func RegisterAuthenticateEndpoints(s *server.Server) {
	users := s.Users
	signer := s.Signer

	// POST /authn/login - email and password, returns a session token
	s.Router.HandleFunc("/authn/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		clientIP := middleware.ClientIP(r).String()

		user, err := users.FetchUserByEmail(req.Email)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				audit.Log(audit.AuthenticateEvent{
					Email: req.Email, ClientIP: clientIP, Method: "password",
					Success: false, ErrorMessage: "unknown account",
				})
				respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			audit.Log(audit.AuthenticateEvent{
				Email: req.Email, ClientIP: clientIP, Method: "password",
				Success: false, ErrorMessage: "bad password",
			})
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := signer.Mint(user)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to issue session token")
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Email: req.Email, ClientIP: clientIP, Method: "password", Success: true,
		})
		respondWithJSON(w, http.StatusOK, SessionResponse{Token: token, User: userResponse(user)})
	}).Methods("POST")

	// POST /authn/signup - first sign-in provisioning: role "user", no
	// permission grants
	s.Router.HandleFunc("/authn/signup", func(w http.ResponseWriter, r *http.Request) {
		if !config.Get().SignupEnabled {
			respondWithError(w, http.StatusForbidden, "Signup is disabled")
			return
		}

		var req SignupRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		clientIP := middleware.ClientIP(r).String()

		exists, err := users.EmailExists(req.Email)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if exists {
			respondWithError(w, http.StatusConflict, "An account with this email already exists")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		user := &model.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			DisplayName:  req.DisplayName,
			PasswordHash: string(hash),
			Role:         "user",
			Permissions:  []string{},
			Wishlist:     []string{},
		}
		if err := users.CreateUser(user); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create account")
			return
		}

		token, err := signer.Mint(user)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to issue session token")
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Email: req.Email, ClientIP: clientIP, Method: "signup", Success: true,
		})
		respondWithJSON(w, http.StatusCreated, SessionResponse{Token: token, User: userResponse(user)})
	}).Methods("POST")
}
