package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	corelogger "github.com/kilianp07/tower/core/logger"
)

// auth requires "Authorization: Bearer <token>" when a token is configured.
func (s *Server) auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.Token == "" {
			c.Next()
			return
		}
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.Token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: "missing or invalid bearer token"})
			return
		}
		c.Next()
	}
}

// rateLimit shares one token bucket between every mutation endpoint.
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody{Error: "rate_limited", Message: "too many disruptions, retry later"})
			return
		}
		c.Next()
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.log.Errorf("%s %s: %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), c.Errors.String())
			return
		}
		s.log.Debugw("request", corelogger.Fields(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		))
	}
}
