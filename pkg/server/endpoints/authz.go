package endpoints

import (
	"net/http"

	"github.com/dealhub/dealhub/pkg/audit"
	"github.com/dealhub/dealhub/pkg/identity"
	"github.com/dealhub/dealhub/pkg/rbac"
)

// authorize runs the access resolver for the authenticated identity and
// writes the error response on denial. Every decision is audited against
// resourceID.
func authorize(w http.ResponseWriter, r *http.Request, action rbac.Action, resource rbac.Resource, resourceID string) (*identity.Identity, bool) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return nil, false
	}

	decision, err := rbac.CanPerform(id.Principal(), action, resource)
	if err != nil {
		// Invalid principal: the session predates the account state
		// required to evaluate access.
		respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
		return nil, false
	}

	clientIP := ""
	if id.RemoteIP != nil {
		clientIP = id.RemoteIP.String()
	}
	audit.Log(audit.AccessCheckEvent{
		UserID:   id.UserID,
		ClientIP: clientIP,
		Kind:     resource.Kind,
		Resource: resourceID,
		Action:   string(action),
		Allowed:  decision.Allowed,
		Reason:   string(decision.Reason),
	})

	if !decision.Allowed {
		respondWithJSON(w, http.StatusForbidden, map[string]interface{}{
			"error":  "Forbidden",
			"reason": decision.Reason,
		})
		return nil, false
	}

	return id, true
}
