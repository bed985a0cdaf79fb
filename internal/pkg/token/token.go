// Package token wraps the JWT codec with the claim schema used by this
// system: a subject id, a role tag, and a caller-supplied expiry. The same
// mechanism serves 30-day session tokens and 1-hour password-reset tokens.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid covers every verification failure. Callers do not
	// distinguish expired from tampered; both are terminal.
	ErrTokenInvalid = errors.New("token is invalid")
)

const issuer = "civicfix"

// Claims represents the session token claims.
type Claims struct {
	SubjectID string `json:"subject_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// ResetClaims represents password-reset token claims. They carry only a
// user id, no role.
type ResetClaims struct {
	SubjectID string `json:"subject_id"`
	jwt.RegisteredClaims
}

// Issue signs a session token for subjectID with the given role and ttl.
func Issue(subjectID, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   subjectID,
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify validates a session token and returns its claims.
func Verify(tokenString, secret string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}

// IssueReset signs a password-reset token for subjectID with the given ttl.
func IssueReset(subjectID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := ResetClaims{
		SubjectID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   subjectID,
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// VerifyReset validates a password-reset token and returns its claims.
func VerifyReset(tokenString, secret string) (*ResetClaims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	if claims, ok := t.Claims.(*ResetClaims); ok && t.Valid {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}
