package middleware

import (
	"time"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one "http_request" line per call to the local host:
// Error for 5xx, Warn for 4xx, Info otherwise. Handlers that failed through
// respondError contribute the error kind, and a pending login redirect is
// logged as navigate_to.
//
// Usage:
//
//	router.Use(middleware.RequestID(), middleware.RequestLogger(log))
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = logger.OrNop(log)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("bytes", c.Writer.Size()),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if target := c.Writer.Header().Get(NavigateHeader); target != "" {
			fields = append(fields, zap.String("navigate_to", target))
		}
		if err := c.Errors.Last(); err != nil {
			if kind := apperrors.KindOf(err.Err); kind != "" {
				fields = append(fields, zap.String("error_kind", string(kind)))
			}
			fields = append(fields, zap.Error(err.Err))
		}

		reqLog := logger.FromContext(c.Request.Context(), log)
		switch {
		case status >= 500:
			reqLog.Error("http_request", fields...)
		case status >= 400:
			reqLog.Warn("http_request", fields...)
		default:
			reqLog.Info("http_request", fields...)
		}
	}
}
