package server

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorResponse{
		Error: errorDetail{Code: code, Message: message},
	})
}

// requestLogger counts and logs every request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.mu.Lock()
		s.requestCount++
		s.mu.Unlock()

		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client", c.ClientIP(),
		)
	}
}

// recovery turns panics into a JSON 500.
func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		s.log.Error("handler panic", "path", c.Request.URL.Path, "panic", fmt.Sprint(recovered))
		msg := "An unexpected error occurred"
		if str, ok := recovered.(string); ok {
			msg = str
		}
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", msg)
	})
}
