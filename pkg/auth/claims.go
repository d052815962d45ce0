package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTokenPayload captures the data available when minting a session token.
type SessionTokenPayload struct {
	SessionID uuid.UUID
	ExpiresAt time.Time
}

// SessionTokenClaims is the signed token handed to browsers. The jti carries the session id.
type SessionTokenClaims struct {
	jwt.RegisteredClaims
}

// SessionID parses the jti back into a session identifier.
func (c SessionTokenClaims) SessionID() (uuid.UUID, error) {
	return uuid.Parse(c.ID)
}
