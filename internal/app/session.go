package app

import (
	"fmt"
	"net/http"
)

type sessionKey string

const (
	SessionKeyGuest = sessionKey("guest")
)

func (s sessionKey) String() string {
	return string(s)
}

// sessionToken is the buyer identity: seat holds and selection documents
// are keyed by it, and bookings record it as the buyer id.
func (app *Application) sessionToken(r *http.Request) string {
	return app.sessionManager.Token(r.Context())
}

func selectionKey(sessionToken string, showtimeID int) string {
	return fmt.Sprintf("selection:%s:%d", sessionToken, showtimeID)
}
