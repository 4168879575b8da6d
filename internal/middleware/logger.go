package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"servic/internal/pkg/response"
)

// ErrorLogger logs every request and recovers from panics.
// Panic details stay in the log; the client only sees a generic error.
func ErrorLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				requestFields(log, c, start).
					WithField("stack", string(debug.Stack())).
					Error(fmt.Sprintf("panic: %v", recovered))

				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong, please try again")
				c.Abort()
				return
			}

			entry := requestFields(log, c, start)
			if len(c.Errors) > 0 {
				entry = entry.WithField("errors", c.Errors.String())
			}

			switch status := c.Writer.Status(); {
			case status >= http.StatusInternalServerError:
				entry.Error("request failed")
			case status >= http.StatusBadRequest:
				entry.Warn("request rejected")
			default:
				entry.Info("request")
			}
		}()

		c.Next()
	}
}

func requestFields(log logrus.FieldLogger, c *gin.Context, start time.Time) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"status":     c.Writer.Status(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"query":      c.Request.URL.RawQuery,
		"client_ip":  c.ClientIP(),
		"user_id":    c.GetInt64(ctxUserID),
		"role":       c.GetString(ctxRole),
		"request_id": c.GetString("request_id"),
		"latency":    time.Since(start).String(),
	})
}
