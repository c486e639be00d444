package endpoints

import (
	"net/http"
	"os"

	"github.com/dealhub/dealhub/pkg/server"
	"github.com/dealhub/dealhub/pkg/server/store"
)

// StatusResponse represents the response from the /status endpoint
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RegisterStatusEndpoints registers the status endpoints
func RegisterStatusEndpoints(s *server.Server) {
	healthStore := s.Health

	// GET / - Status page (no auth required)
	s.Router.HandleFunc("/", handleRoot()).Methods("GET")

	// GET /status - Health check including database connectivity
	s.Router.HandleFunc("/status", handleStatus(healthStore)).Methods("GET")
}

func handleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := serverVersion()

		html := `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">
    <title>Dealhub Status</title>
  </head>
  <body>
    <h1>Status</h1>
    <p>Your Dealhub server is running!</p>
    <p>Version ` + version + `</p>
  </body>
</html>
`

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}
}

func handleStatus(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "error",
				"error":  "database connectivity check failed",
			})
			return
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Status:  "ok",
			Version: serverVersion(),
		})
	}
}

func serverVersion() string {
	version := os.Getenv("DEALHUB_VERSION_DISPLAY")
	if version == "" {
		version = "0.1.0"
	}
	return version
}
