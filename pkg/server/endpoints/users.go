package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dealhub/dealhub/pkg/audit"
	"github.com/dealhub/dealhub/pkg/config"
	"github.com/dealhub/dealhub/pkg/identity"
	"github.com/dealhub/dealhub/pkg/rbac"
	"github.com/dealhub/dealhub/pkg/server"
	"github.com/dealhub/dealhub/pkg/server/middleware"
	"github.com/dealhub/dealhub/pkg/server/store"
)

// RoleRequest is the body of PUT /users/{id}/role
type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user merchant admin"`
}

// PermissionsRequest is the body of PUT /users/{id}/permissions
type PermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,dive,oneof=add edit delete"`
}

// UserListResponse is the response of GET /users
type UserListResponse struct {
	Users   []UserResponse `json:"users"`
	Page    int            `json:"page"`
	HasMore bool           `json:"has_more"`
	Total   int64          `json:"total"`
}

// requireAdmin enforces that the caller is an administrator
func requireAdmin(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return nil, false
	}
	if !id.IsAdmin() {
		respondWithJSON(w, http.StatusForbidden, map[string]interface{}{
			"error":  "Forbidden",
			"reason": rbac.ReasonInsufficientRole,
		})
		return nil, false
	}
	return id, true
}

// RegisterUsersEndpoints registers the account administration endpoints
func RegisterUsersEndpoints(s *server.Server) {
	users := s.Users
	sessionMiddleware := middleware.NewSessionAuthenticator(s.Signer)

	authed := s.Router.PathPrefix("/users").Subrouter()
	authed.Use(sessionMiddleware.Middleware)

	// GET /users - admin: paginated listing with optional search
	authed.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAdmin(w, r); !ok {
			return
		}

		search := r.URL.Query().Get("search")
		page := 1
		if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
			page = p
		}
		pageSize := config.Get().UsersPageSize

		// Fetch one beyond the page to detect a following page.
		list, err := users.ListUsers(search, pageSize+1, (page-1)*pageSize)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list users")
			return
		}
		hasMore := len(list) > pageSize
		if hasMore {
			list = list[:pageSize]
		}

		total, err := users.CountUsers(search)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to count users")
			return
		}

		response := UserListResponse{
			Users:   make([]UserResponse, 0, len(list)),
			Page:    page,
			HasMore: hasMore,
			Total:   total,
		}
		for i := range list {
			response.Users = append(response.Users, userResponse(&list[i]))
		}

		respondWithJSON(w, http.StatusOK, response)
	}).Methods("GET")

	// PUT /users/{id}/role - admin: change an account's role
	authed.HandleFunc("/{id}/role", func(w http.ResponseWriter, r *http.Request) {
		adminID, ok := requireAdmin(w, r)
		if !ok {
			return
		}
		targetID := mux.Vars(r)["id"]

		var req RoleRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		target, err := users.FetchUser(targetID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				respondWithError(w, http.StatusNotFound, "User not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch user")
			return
		}

		if err := users.UpdateRole(targetID, req.Role); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update role")
			return
		}

		audit.Log(audit.RoleChangeEvent{
			AdminID:  adminID.UserID,
			TargetID: targetID,
			OldRole:  target.Role,
			NewRole:  req.Role,
			ClientIP: remoteIP(adminID),
			Success:  true,
		})

		target.Role = req.Role
		respondWithJSON(w, http.StatusOK, userResponse(target))
	}).Methods("PUT")

	// PUT /users/{id}/permissions - admin: replace permission grants.
	// The stored set is always the normalized closure of the request.
	authed.HandleFunc("/{id}/permissions", func(w http.ResponseWriter, r *http.Request) {
		adminID, ok := requireAdmin(w, r)
		if !ok {
			return
		}
		targetID := mux.Vars(r)["id"]

		var req PermissionsRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		target, err := users.FetchUser(targetID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				respondWithError(w, http.StatusNotFound, "User not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch user")
			return
		}

		normalized := rbac.NormalizePermissions(rbac.FromStrings(req.Permissions)).Strings()
		if err := users.UpdatePermissions(targetID, normalized); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update permissions")
			return
		}

		audit.Log(audit.PermissionChangeEvent{
			AdminID:     adminID.UserID,
			TargetID:    targetID,
			Permissions: normalized,
			ClientIP:    remoteIP(adminID),
			Success:     true,
		})

		target.Permissions = normalized
		respondWithJSON(w, http.StatusOK, userResponse(target))
	}).Methods("PUT")
}

func remoteIP(id *identity.Identity) string {
	if id.RemoteIP == nil {
		return ""
	}
	return id.RemoteIP.String()
}
