package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope every API endpoint returns.
type Response[T any] struct {
	Success   bool   `json:"success"`
	Data      T      `json:"data"`
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}

func SuccessResponse[T any](data T, message string) Response[T] {
	return Response[T]{Success: true, Data: data, Message: message}
}

func ErrorResponse(message string, errorCode string) Response[any] {
	return Response[any]{Success: false, Message: message, ErrorCode: errorCode}
}

func JSON200[T any](c *gin.Context, data T, message string) {
	c.JSON(http.StatusOK, SuccessResponse(data, message))
}

func JSONError(c *gin.Context, status int, message string, errorCode string) {
	c.JSON(status, ErrorResponse(message, errorCode))
}

// JSONAppError writes the envelope for an internal error using the
// centralized kind translation.
func JSONAppError(c *gin.Context, err error) {
	status, code, message := TranslateError(err)
	c.JSON(status, ErrorResponse(message, code))
}
