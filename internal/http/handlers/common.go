package handlers

import (
	"net/http"
	"strconv"

	"busbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "invalid_body", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", "invalid request payload", nil)
		return false
	}
	return true
}

// ParamID parses the :id path parameter, responding 400 on failure.
func ParamID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "invalid id parameter", nil)
		return 0, false
	}
	return id, true
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}
