package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"teamup-board-api/internal/middleware"
	"teamup-board-api/internal/response"
)

// AuthData holds the caller identity set by the auth middleware
type AuthData struct {
	UserID uuid.UUID
	Token  string
}

// extractAuthData reads the caller from the Gin context and writes a 401 when it is missing
func extractAuthData(c *gin.Context) (AuthData, bool) {
	userID, exists := c.Get(middleware.ContextUserID)
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return AuthData{}, false
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID format")
		return AuthData{}, false
	}

	tokenStr, _ := c.Get(middleware.ContextToken)
	token, _ := tokenStr.(string)
	return AuthData{UserID: userUUID, Token: token}, true
}

// currentUserID is extractAuthData for handlers that only need the user
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	auth, ok := extractAuthData(c)
	return auth.UserID, ok
}

// parseUUIDParam parses a path parameter and writes "Invalid <label> ID" on failure
func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the request body and writes a 400 on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return false
	}
	return true
}
