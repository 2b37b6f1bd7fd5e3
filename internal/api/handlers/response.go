// server/internal/api/handlers/response.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse là envelope chuẩn cho mọi response của API.
type APIResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	StatusCode int         `json:"statusCode"`
	Timestamp  string      `json:"timestamp"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, APIResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{
		Success:    false,
		Message:    message,
		Data:       nil,
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}
