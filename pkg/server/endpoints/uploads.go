package endpoints

import (
	"net/http"
	"time"

	"github.com/dealhub/dealhub/pkg/blob"
	"github.com/dealhub/dealhub/pkg/config"
	"github.com/dealhub/dealhub/pkg/rbac"
	"github.com/dealhub/dealhub/pkg/server"
	"github.com/dealhub/dealhub/pkg/server/middleware"
)

// maxUploadBytes caps direct uploads at 10 MiB
const maxUploadBytes = 10 << 20

// UploadAuthResponse is the response of GET /uploads/auth: a
// presigned URL a client can PUT the object to directly
type UploadAuthResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterUploadsEndpoints registers the media upload endpoints
func RegisterUploadsEndpoints(s *server.Server) {
	sessionMiddleware := middleware.NewSessionAuthenticator(s.Signer)

	authed := s.Router.PathPrefix("/uploads").Subrouter()
	authed.Use(sessionMiddleware.Middleware)

	// POST /uploads - multipart upload, stored under the folder form
	// field ("products" by default)
	authed.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		if s.Blob == nil {
			respondWithError(w, http.StatusServiceUnavailable, "Object storage is not configured")
			return
		}

		// Uploading media is a create on the caller's own resources.
		if _, ok := authorize(w, r, rbac.ActionCreate, rbac.Resource{Kind: "upload"}, "new"); !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Missing file field")
			return
		}
		defer file.Close()

		folder := r.FormValue("folder")
		if folder == "" {
			folder = "products"
		}

		key := blob.ObjectName(folder, header.Filename)
		info, err := s.Blob.Upload(r.Context(), key, file, header.Size, header.Header.Get("Content-Type"))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to store upload")
			return
		}

		respondWithJSON(w, http.StatusCreated, info)
	}).Methods("POST")

	// GET /uploads/auth - presigned upload URL for direct-to-storage
	// uploads
	authed.HandleFunc("/auth", func(w http.ResponseWriter, r *http.Request) {
		if s.Blob == nil {
			respondWithError(w, http.StatusServiceUnavailable, "Object storage is not configured")
			return
		}

		if _, ok := authorize(w, r, rbac.ActionCreate, rbac.Resource{Kind: "upload"}, "new"); !ok {
			return
		}

		filename := r.URL.Query().Get("filename")
		if filename == "" {
			respondWithError(w, http.StatusBadRequest, "Missing filename parameter")
			return
		}
		folder := r.URL.Query().Get("folder")
		if folder == "" {
			folder = "products"
		}

		ttl := config.Get().UploadTTL()
		key := blob.ObjectName(folder, filename)
		u, err := s.Blob.PresignedPut(r.Context(), key, ttl)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to presign upload")
			return
		}

		respondWithJSON(w, http.StatusOK, UploadAuthResponse{
			URL:       u.String(),
			Key:       key,
			ExpiresAt: time.Now().UTC().Add(ttl),
		})
	}).Methods("GET")
}
