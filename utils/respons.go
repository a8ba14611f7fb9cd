package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope every handler answers with.
type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError hides the cause of 500s from clients; callers log it.
func RespondError(c *gin.Context, code int, err error) {
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = http.StatusText(code)
	}
	c.JSON(code, JSONResponse{Status: false, Message: msg})
}

// RespondErrorData is RespondError for failures that still carry a result,
// such as a reverted reassignment.
func RespondErrorData(c *gin.Context, code int, err error, data interface{}) {
	c.JSON(code, JSONResponse{Status: false, Message: err.Error(), Data: data})
}
