package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dealhub/dealhub/pkg/identity"
)

var validate = validator.New()

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// decodeAndValidate parses a JSON request body into dst and runs its
// validation tags. Responds 400 and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// requireIdentity fetches the authenticated identity from the request
// context. Responds 401 and returns false when it is missing.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := identity.Get(r.Context())
	if !ok || id == nil {
		respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
		return nil, false
	}
	return id, true
}
