package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/cradle/internal/app"
)

// fail writes an error response with a status derived from the error.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.log.Errorw("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// badRequest writes a 400 with a plain message.
func (s *Server) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// statusFor maps service errors onto HTTP statuses. The service layer reports
// validation problems as plain errors with recognizable wording, so anything
// that is not a sentinel or a missing row counts as a bad request before it
// counts as a server fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, app.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, app.ErrNoActiveSleep),
		errors.Is(err, app.ErrNoActiveWaking),
		errors.Is(err, app.ErrNoNightSleep):
		return http.StatusConflict
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "invalid"),
		strings.Contains(msg, "required"),
		strings.Contains(msg, "implausible"),
		strings.Contains(msg, "is not after"),
		strings.Contains(msg, "in the future"),
		strings.Contains(msg, "constraint"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
