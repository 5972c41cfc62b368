package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/medico-api/pkg/response"
	"github.com/oksasatya/medico-api/pkg/validation"
)

// bindJSON decodes and validates the body; on failure it has already written the 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", validation.ToDetails(err))
		return false
	}
	return true
}

// parseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates (midnight UTC).
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
