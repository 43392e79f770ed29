package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"team-lab/domain"
	"team-lab/errors"
)

// inviteTokenTTL is deliberately longer than the maximum invitation horizon
// (7 days, enforced at creation). The EndAt column is the authoritative
// expiry; the signature must never expire first.
const inviteTokenTTL = 8 * 24 * time.Hour

const issuer = "team-lab"

// InviteClaims is the payload embedded in an invite deep link token.
type InviteClaims struct {
	TeamID   int64 `json:"team_id"`
	IssuerID int64 `json:"issuer_id"`
	jwt.RegisteredClaims
}

// UserClaims is the verified identity attached to a socket connection
// before any frame handler runs.
type UserClaims struct {
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

// Signer mints and validates the HS256 tokens used for invite links and
// the websocket handshake identity.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) Signer {
	return Signer{secret: []byte(secret)}
}

func (s Signer) SignInvite(teamID domain.TeamID, issuerID domain.UserID) (string, error) {
	now := time.Now()
	claims := &InviteClaims{
		TeamID:   int64(teamID),
		IssuerID: int64(issuerID),
		RegisteredClaims: jwt.RegisteredClaims{
			// JWT timestamps have second precision; the random jti keeps two
			// invites minted within the same second from colliding on the
			// same store key.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(inviteTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyInvite parses and validates the signature of an invite token.
// Any malformed or tampered input surfaces as ErrInvalidToken.
func (s Signer) VerifyInvite(token string) (*InviteClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &InviteClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*InviteClaims)
	if !ok || !parsed.Valid {
		return nil, errors.ErrInvalidToken
	}
	return claims, nil
}

func (s Signer) SignUser(userID domain.UserID, displayName string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UserID:      int64(userID),
		DisplayName: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s Signer) VerifyUser(token string) (*UserClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*UserClaims)
	if !ok || !parsed.Valid {
		return nil, errors.ErrUnauthorized
	}
	return claims, nil
}
