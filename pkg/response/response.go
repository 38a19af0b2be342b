package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/ssis-api/pkg/errors"
)

// ErrorBody is the error contract: {"error": "<message>"}.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes payload as-is with no-store caching headers.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, payload)
}

// Mutation writes {"message": message, key: row}.
func Mutation(c *gin.Context, status int, message, key string, row interface{}) {
	JSON(c, status, gin.H{"message": message, key: row})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, message, key string, row interface{}) {
	Mutation(c, http.StatusCreated, message, key, row)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	JSON(c, appErr.Status, ErrorBody{Error: appErr.PublicMessage()})
}

// Abort writes the error and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
