// Package session carries the authenticated session through a request: token
// issuing and parsing, revocation and the gin context helpers.
package session

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	contextKey       = "session"
	contextUserIDKey = "user_id"
)

// Session is the request-scoped view of a bearer token. When an admin
// impersonates a user, UserID is the target and ImpersonatorID the admin.
type Session struct {
	ID             string
	UserID         uuid.UUID
	ImpersonatorID *uuid.UUID
	ExpiresAt      time.Time
}

func (s *Session) IsImpersonating() bool {
	return s != nil && s.ImpersonatorID != nil
}

// Set stores the session on the gin context. user_id is kept as a string
// for handlers that only need the subject.
func Set(c *gin.Context, s *Session) {
	c.Set(contextKey, s)
	c.Set(contextUserIDKey, s.UserID.String())
}

func FromContext(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok && s != nil
}
