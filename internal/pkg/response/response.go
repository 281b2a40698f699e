// Package response writes the JSON envelope every endpoint answers with:
//
//	{"success": true,  "data": ...}
//	{"success": false, "error": {"code": ..., "message": ..., "details": ...}}
package response

import "github.com/gin-gonic/gin"

type successBody struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// Problem is the error half of the envelope. Code is a stable machine
// readable identifier such as USER_NOT_FOUND.
type Problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type failureBody struct {
	Success bool    `json:"success"`
	Error   Problem `json:"error"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, successBody{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code, message string) {
	Fail(c, statusCode, Problem{Code: code, Message: message})
}

// ErrorWithDetails adds per-field information, typically validation
// failures keyed by field name.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details any) {
	Fail(c, statusCode, Problem{Code: code, Message: message, Details: details})
}

func Fail(c *gin.Context, statusCode int, p Problem) {
	c.JSON(statusCode, failureBody{Error: p})
}

// CustomError writes the error envelope and stops the handler chain.
func CustomError(c *gin.Context, statusCode int, code, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}
