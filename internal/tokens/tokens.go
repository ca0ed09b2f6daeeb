package tokens

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/knowthatperson/knowthatperson/backend/api/pkg/middleware"
)

// ShareTokenBytes is the entropy of a share token: 128 bits, rendered as a
// 32-character hex string.
const ShareTokenBytes = 16

// Generator produces opaque share tokens. The share service takes one by
// injection so tests can force collisions.
type Generator func() (string, error)

// NewShareToken returns a cryptographically random share token.
func NewShareToken() (string, error) {
	b := make([]byte, ShareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewAdminToken creates a signed HS256 JWT granting access to the moderation endpoints.
func NewAdminToken(secret, subject string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"scope": "admin",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// adminToken exposes verified claims to the auth middleware.
type adminToken struct {
	claims jwt.MapClaims
}

func (t *adminToken) Claims(v interface{}) error {
	m, ok := v.(*map[string]interface{})
	if !ok {
		return fmt.Errorf("unsupported claims target %T", v)
	}
	*m = map[string]interface{}(t.claims)
	return nil
}

// AdminVerifier validates locally-signed admin bearer tokens. Implements middleware.Verifier.
type AdminVerifier struct {
	secret []byte
}

func NewAdminVerifier(secret string) *AdminVerifier {
	return &AdminVerifier{secret: []byte(secret)}
}

// Verify parses and validates the raw token and requires the admin scope.
func (a *AdminVerifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if scope, _ := claims["scope"].(string); scope != "admin" {
		return nil, errors.New("token missing admin scope")
	}
	return &adminToken{claims: claims}, nil
}
