package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the self-contained identity a caller presents on each request.
// Role is the role at issuance time; a change takes effect once the claim
// expires and a fresh one is issued.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

func (c Claims) IsAdmin() bool { return c.Role == "admin" }

// TokenManager signs and verifies HS256 bearer tokens. Secret and TTL come
// from configuration at construction, not from the environment.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (tm *TokenManager) Sign(c Claims) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   c.UserID,
		"email": c.Email,
		"role":  c.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(tm.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

func (tm *TokenManager) Verify(tokenStr string) (Claims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return Claims{}, errors.New("invalid token")
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims")
	}
	sub, _ := mapc["sub"].(string)
	email, _ := mapc["email"].(string)
	role, _ := mapc["role"].(string)
	if sub == "" {
		return Claims{}, errors.New("invalid claims")
	}
	return Claims{UserID: sub, Email: email, Role: role}, nil
}
