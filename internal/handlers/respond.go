package handlers

import (
	"errors"
	"io"

	"technotes/internal/dto"

	"github.com/gin-gonic/gin"
)

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.MessageResponse{Message: msg})
}

// bindBody decodes an optional JSON body. A missing body is not an error.
func bindBody(c *gin.Context, v any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
