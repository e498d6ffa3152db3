package handlers

import (
	"net/http"
	"strconv"

	"grounds-backend/internal/audit"
	"grounds-backend/internal/middleware"

	"github.com/gorilla/mux"
)

// pathID extracts the numeric {id} route variable
func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

// actorFrom builds the audit actor from the authenticated request context.
// Unauthenticated contexts yield a zero actor, which the recorder stores
// as "system".
func actorFrom(r *http.Request) audit.Actor {
	var actor audit.Actor
	if id, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		actor.UserID = id
	}
	if name, ok := middleware.GetUserNameFromContext(r.Context()); ok {
		actor.UserName = name
	}
	return actor
}

// queryFlag reads a boolean query parameter, absent meaning false
func queryFlag(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "true" || v == "1"
}
