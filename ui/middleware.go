package ui

import (
	"github.com/gin-gonic/gin"

	"tradenet/domain/viewstate"
)

const (
	sessionCookie = "tradenet_session"
	ctxStateKey   = "viewState"
)

// sessionMiddleware resolves the caller's session from its cookie, creating
// a fresh one when the cookie is absent or expired, and attaches a state
// snapshot to the request context. Handlers that mutate state go back
// through the store so concurrent requests on one session serialize there.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			state viewstate.State
			ok    bool
		)
		if id, err := c.Cookie(sessionCookie); err == nil {
			state, ok = s.sessions.Snapshot(id)
		}
		if !ok {
			fresh := s.sessions.Create()
			state = *fresh
			c.SetCookie(sessionCookie, state.ID, 0, "/", "", false, true)
		}
		c.Set(ctxStateKey, state)
		c.Next()
	}
}

// currentState returns the session snapshot attached by the middleware.
func currentState(c *gin.Context) viewstate.State {
	if v, ok := c.Get(ctxStateKey); ok {
		if state, ok := v.(viewstate.State); ok {
			return state
		}
	}
	// Middleware always runs first; this is a fallback for direct handler
	// invocation in tests.
	return *viewstate.New("")
}
