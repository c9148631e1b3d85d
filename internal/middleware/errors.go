package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is written for errors no handler answered itself.
type ErrorBody struct {
	Message string `json:"message"`
	IsError bool   `json:"isError"`
}

// ErrorResponder is the central sink for errors handlers forward with c.Error.
// Every error is logged and appended to ErrorLogFile; if the handler did not
// write a response, a 500 with the error message is sent.
func ErrorResponder(events *EventLog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		r := c.Request
		for _, e := range c.Errors {
			events.log.Error().Err(e.Err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
			events.LogEvents(fmt.Sprintf("%T: %s\t%s\t%s\t%s", e.Err, e.Err.Error(), r.Method, r.URL.RequestURI(), originOf(c)), ErrorLogFile)
		}
		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{
			Message: c.Errors.Last().Err.Error(),
			IsError: true,
		})
	}
}

// Recovery turns panics into errors for ErrorResponder.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		_ = c.Error(fmt.Errorf("panic: %v", rec))
		c.Abort()
	})
}
