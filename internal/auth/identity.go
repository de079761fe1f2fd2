package auth

import "time"

// ContextKey is the echo.Context key holding the authenticated *Identity.
const ContextKey = "user"

// Identity is the authenticated caller passed explicitly to every task operation.
type Identity struct {
	UserID    uint
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// IdentityFromClaims builds the caller identity carried by a verified access token.
func IdentityFromClaims(claims *Claims) *Identity {
	id := &Identity{
		UserID:  claims.UserID,
		Email:   claims.Email,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id
}

// TokenLifetime returns how long the identity's access token remains valid after now.
func (i *Identity) TokenLifetime(now time.Time) time.Duration {
	if i.ExpiresAt.IsZero() || !i.ExpiresAt.After(now) {
		return 0
	}
	return i.ExpiresAt.Sub(now)
}
