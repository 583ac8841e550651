package ginutil

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// QueryInt extracts an integer from query parameters with default value
func QueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// HeaderOrNil returns a pointer to the header value, or nil when the header
// is missing. Absent request metadata is stored as NULL, never "".
func HeaderOrNil(c *gin.Context, key string) *string {
	v := c.GetHeader(key)
	if v == "" {
		return nil
	}
	return &v
}
