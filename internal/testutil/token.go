package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lshigami/Lectern/internal/access"
)

// Token signs an HS256 bearer token carrying the actor's id and role,
// in the claim layout the API's Authenticate middleware reads.
func Token(t testing.TB, secret string, actor access.Actor, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": actor.ID,
		"role":   string(actor.Role),
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
