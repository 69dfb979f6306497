// Package token signs and verifies the session cookie. The cookie value is
// a compact HS256 JWS carrying the session ID plus the username and role
// partition; the gate still looks the session up server-side, so revocation
// at logout works even though the cookie itself is stateless.
package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/abc-restaurant/restaurant-gateway/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims is the verified content of a session cookie.
type Claims struct {
	SessionID string
	Username  string
	Role      domain.Role
}

// Codec signs session cookies with a shared secret.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode produces the signed cookie value for a session.
func (c *Codec) Encode(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":  session.ID,
		"sub":  session.Username,
		"role": string(session.Role),
		"exp":  session.ExpiresAt.Unix(),
		"iat":  session.CreatedAt.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies the signature and expiry and returns the claims. Any
// malformed, tampered, expired, or wrongly-signed value yields
// ErrInvalidToken; callers treat that the same as no cookie at all.
func (c *Codec) Decode(raw string) (*Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}

	sid, _ := claims["sid"].(string)
	sub, _ := claims["sub"].(string)
	roleStr, _ := claims["role"].(string)
	role, roleErr := domain.ParseRole(roleStr)
	if sid == "" || sub == "" || roleErr != nil {
		return nil, ErrInvalidToken
	}

	return &Claims{SessionID: sid, Username: sub, Role: role}, nil
}
