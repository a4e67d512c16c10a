package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestLogger tags each request with an id, taken from X-Request-ID or generated.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog is the gin formatter that routes request lines into zerolog.
func AccessLog(param gin.LogFormatterParams) string {
	id, _ := param.Keys[requestIDKey].(string)
	log.Info().
		Str("request_id", id).
		Str("client_ip", param.ClientIP).
		Str("method", param.Method).
		Str("path", param.Path).
		Int("status_code", param.StatusCode).
		Dur("latency", param.Latency).
		Str("error_message", param.ErrorMessage).
		Msg("gin_request")
	return ""
}

func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
