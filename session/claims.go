package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type tokenClaims struct {
	ActiveTenantID string `json:"active_tenant_id"`
	jwt.RegisteredClaims
}

// DecodeClaims extracts routing-hint claims from an access token without
// verifying its signature. The portal holds no verification keys; the token
// is opaque to it except for these hints, and every data-bearing request
// carries the token for the backend to verify.
func DecodeClaims(accessToken string) (Claims, error) {
	parser := jwt.NewParser()

	var tc tokenClaims
	if _, _, err := parser.ParseUnverified(accessToken, &tc); err != nil {
		return Claims{}, fmt.Errorf("decode access token: %w", err)
	}

	claims := Claims{
		UserID:         tc.Subject,
		ActiveTenantID: tc.ActiveTenantID,
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	} else {
		claims.ExpiresAt = time.Time{}
	}
	return claims, nil
}
