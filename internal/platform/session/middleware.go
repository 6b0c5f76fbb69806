package session

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"etf_platform/internal/platform/token"
)

// ContextIdentity はginコンテキストに格納するIdentityのキーです。
const ContextIdentity = "identity"

// Resolver returns middleware that restores the identity for the request's
// session cookie, if any. It never blocks a request: pages decide for
// themselves whether an identity is required.
func Resolver(store *Store, signer *token.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(token.CookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}
		sid, err := signer.Parse(cookie)
		if err != nil {
			// Tampered or expired cookie: treat as logged out.
			c.Next()
			return
		}
		identity, err := store.Find(c.Request.Context(), sid)
		if err != nil {
			if err != ErrNotFound {
				slog.Warn("session lookup failed", "error", err)
			}
			c.Next()
			return
		}
		if identity.Authenticated {
			c.Set(ContextIdentity, identity)
			c.Set(contextSessionID, sid)
		}
		c.Next()
	}
}

// contextSessionID はginコンテキストに格納するセッションIDのキーです。
const contextSessionID = "sessionID"

// Current returns the identity attached to the request, or nil when the
// visitor is not authenticated.
func Current(c *gin.Context) *Identity {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return nil
	}
	identity, ok := v.(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// CurrentID returns the session ID attached to the request, or "".
func CurrentID(c *gin.Context) string {
	v, ok := c.Get(contextSessionID)
	if !ok {
		return ""
	}
	sid, _ := v.(string)
	return sid
}
