package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SuccessResponse is the envelope for successful responses
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"requestId"`
}

// ErrorResponse is the envelope for error responses
type ErrorResponse struct {
	Error     interface{} `json:"error"`
	RequestID string      `json:"requestId"`
}

// ErrorBody is the payload of ErrorResponse.Error
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestID returns the request ID set by upstream middleware or a new one
func requestID(c *gin.Context) string {
	if id, ok := c.Get("requestId"); ok {
		if s, ok := id.(string); ok && s != "" {
			return s
		}
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return uuid.New().String()
}

// SendSuccess writes a success envelope
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Data:      data,
		RequestID: requestID(c),
	})
}

// SendError writes an error envelope
func SendError(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
		RequestID: requestID(c),
	})
}
