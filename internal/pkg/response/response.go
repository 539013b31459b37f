package response

import (
	"log/slog"

	"petcare/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
)

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError maps a domain error onto the wire. 5xx errors are logged and
// answered with a generic message so internals never leak; 4xx errors keep
// their specific message.
func FromError(c *gin.Context, err error) {
	e := apperr.From(err)
	status := e.Status()
	if status >= 500 {
		slog.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", e.Error()),
		)
		Error(c, status, "INTERNAL_ERROR", "Internal server error")
		return
	}
	Error(c, status, e.Code, e.Message)
}
