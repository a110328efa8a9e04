package common

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// Context key holding the request Session
	ContextSessionKey = "session"
)

// ErrNoSession is returned when no authenticated session was attached to the request.
var ErrNoSession = errors.New("session not found in context")

// Session is the signed-in user for the current request. It is built once by
// the auth middleware and read through the accessors below.
type Session struct {
	UserID      uuid.UUID
	Email       string
	AccessToken string

	// Registration data carried in the token's user metadata; may be empty.
	NombreCompleto string
	Rut            string
}

// SetSession attaches the session to the gin context.
func SetSession(c *gin.Context, s Session) {
	c.Set(ContextSessionKey, s)
}

// SessionFromContext returns the session attached by the auth middleware.
func SessionFromContext(c *gin.Context) (Session, error) {
	v, exists := c.Get(ContextSessionKey)
	if !exists {
		return Session{}, ErrNoSession
	}
	s, ok := v.(Session)
	if !ok {
		return Session{}, errors.New("session in context has unexpected type")
	}
	return s, nil
}

// GetUserIDFromContext retrieves the authenticated user's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, error) {
	s, err := SessionFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	return s.UserID, nil
}
