package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CtxLogger is where the request-scoped logger lives in the gin context.
const CtxLogger = "log"

// Logger returns the request-scoped logger, or base when none was set.
func Logger(c *gin.Context, base logrus.FieldLogger) logrus.FieldLogger {
	if v, ok := c.Get(CtxLogger); ok {
		if l, ok := v.(logrus.FieldLogger); ok {
			return l
		}
	}
	return base
}

// RequestLogger attaches a request-scoped logger and logs every response.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqLog := log.WithFields(logrus.Fields{
			"http.req.path":   c.Request.URL.Path,
			"http.req.method": c.Request.Method,
			"session":         SessionID(c),
		})
		c.Set(CtxLogger, reqLog)

		c.Next()

		entry := reqLog.WithFields(logrus.Fields{
			"http.resp.took_ms": time.Since(start).Milliseconds(),
			"http.resp.status":  c.Writer.Status(),
			"http.resp.bytes":   c.Writer.Size(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		if c.Writer.Status() >= 500 {
			entry.Error("request failed")
			return
		}
		entry.Debug("request complete")
	}
}
