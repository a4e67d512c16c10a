// Package api holds the gin plumbing shared by every handler: identity,
// request ids, path parsing and error rendering.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Lectern/internal/apperror"
	"github.com/lshigami/Lectern/internal/dto"
	"github.com/rs/zerolog/log"
)

// ParamID parses a positive integer path parameter, writing a 400 when it is malformed.
func ParamID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Invalid " + name + " format",
			Kind:    apperror.KindValidation.String(),
		})
		return 0, false
	}
	return uint(id), true
}

// BindJSON decodes the request body into req, writing a 400 on malformed input.
func BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Warn().Err(err).Str("request_id", RequestID(c)).Str("path", c.FullPath()).Msg("Failed to bind request body")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Invalid request body",
			Kind:    apperror.KindValidation.String(),
			Details: []string{err.Error()},
		})
		return false
	}
	return true
}

// StatusOf maps a service error to its HTTP status.
func StatusOf(c *gin.Context, err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindForbidden:
		if !ActorFrom(c).Authenticated() {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Fail renders err. Storage failures are logged and their cause is not exposed.
func Fail(c *gin.Context, err error) {
	status := StatusOf(c, err)
	kind := apperror.KindOf(err)
	resp := dto.ErrorResponse{Message: err.Error(), Kind: kind.String()}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", RequestID(c)).Str("path", c.FullPath()).Msg("Request failed")
		resp.Message = "Internal server error"
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			resp.Message = appErr.Message
		}
	} else {
		log.Warn().Err(err).Str("request_id", RequestID(c)).Int("status", status).Msg("Request rejected")
	}
	c.AbortWithStatusJSON(status, resp)
}
