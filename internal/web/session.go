package web

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/sessions"
)

const (
	// sessionName is the cookie carrying the admin session.
	sessionName = "greenfactor_admin"

	// sessionAdminKey marks a session as gate-approved.
	sessionAdminKey = "admin"

	// MinSessionSecretLength is the minimum byte length for the cookie
	// signing secret.
	MinSessionSecretLength = 32
)

var (
	// Global singleton session store
	sessionStoreInstance *sessions.CookieStore
	sessionStoreOnce     sync.Once
	sessionStoreErr      error
)

// InitSessionStore initializes the global session store singleton.
// Must be called once at application startup before any handlers run.
func InitSessionStore(secret string) error {
	sessionStoreOnce.Do(func() {
		if len(secret) < MinSessionSecretLength {
			sessionStoreErr = fmt.Errorf("SESSION_SECRET must be at least %d bytes", MinSessionSecretLength)
			return
		}
		store := sessions.NewCookieStore([]byte(secret))
		store.Options = &sessions.Options{
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
		sessionStoreInstance = store
	})
	return sessionStoreErr
}

// GetSessionStore returns the global session store singleton.
// Panics if InitSessionStore has not been called successfully.
func GetSessionStore() *sessions.CookieStore {
	if sessionStoreInstance == nil {
		panic("session store not initialized - call InitSessionStore first")
	}
	return sessionStoreInstance
}

// isAdmin reports whether the request carries a gate-approved session.
func isAdmin(r *http.Request) bool {
	session, err := GetSessionStore().Get(r, sessionName)
	if err != nil {
		return false
	}
	approved, ok := session.Values[sessionAdminKey].(bool)
	return ok && approved
}

// grantAdmin marks the session as gate-approved.
func grantAdmin(w http.ResponseWriter, r *http.Request) error {
	session, _ := GetSessionStore().Get(r, sessionName)
	session.Values[sessionAdminKey] = true
	return session.Save(r, w)
}

// revokeAdmin clears the admin session.
func revokeAdmin(w http.ResponseWriter, r *http.Request) error {
	session, _ := GetSessionStore().Get(r, sessionName)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
