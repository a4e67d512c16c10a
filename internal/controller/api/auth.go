package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/lshigami/Lectern/internal/access"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/rs/zerolog/log"
)

const actorKey = "actor"

// ParseToken verifies tokenString and returns the actor it names.
func ParseToken(secret, tokenString string) (access.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return access.Anonymous, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return access.Anonymous, errors.New("invalid token claims")
	}

	userID, ok := claims["userId"].(float64)
	if !ok || userID < 1 {
		return access.Anonymous, errors.New("token has no userId")
	}
	role, _ := claims["role"].(string)
	actor := access.Actor{ID: uint(userID), Role: access.Role(role)}
	if !actor.Role.Valid() {
		return access.Anonymous, fmt.Errorf("unknown role %q", role)
	}
	return actor, nil
}

// Authenticate resolves the bearer token into an Actor. Requests without a token
// continue as the anonymous actor; a token that fails verification is rejected.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(actorKey, access.Anonymous)
			c.Next()
			return
		}
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid Authorization header format"})
			return
		}
		actor, err := ParseToken(secret, tokenString)
		if err != nil {
			log.Warn().Err(err).Str("request_id", RequestID(c)).Msg("Rejected bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the actor Authenticate stored on the context.
func ActorFrom(c *gin.Context) access.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(access.Actor); ok {
			return actor
		}
	}
	return access.Anonymous
}
