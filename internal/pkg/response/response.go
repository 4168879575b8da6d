package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"servic/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError writes err using the uniform envelope. Errors that are not
// *apperr.Error are logged and surfaced as a generic internal error.
func FromError(c *gin.Context, log logrus.FieldLogger, err error) {
	if e, ok := apperr.As(err); ok {
		status := apperr.HTTPStatus(e.Kind)
		if status == http.StatusInternalServerError {
			logInternal(c, log, err)
		}
		if len(e.Details) > 0 {
			ErrorWithDetails(c, status, e.Code, e.Message, e.Details)
			return
		}
		Error(c, status, e.Code, e.Message)
		return
	}

	logInternal(c, log, err)
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong, please try again")
}

func logInternal(c *gin.Context, log logrus.FieldLogger, err error) {
	if log == nil {
		return
	}
	log.WithFields(logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"request_id": c.GetString("request_id"),
		"user_id":    c.GetInt64("user_id"),
	}).WithError(err).Error("request failed")
}
