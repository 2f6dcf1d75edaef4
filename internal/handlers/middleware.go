package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/services"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextUserID    = "user_id"
	ContextUserPhone = "user_phone"
)

type Middleware struct {
	jwtService     *services.JWTService
	sessionService *services.SessionService
}

func NewMiddleware(jwtService *services.JWTService, sessionService *services.SessionService) *Middleware {
	return &Middleware{
		jwtService:     jwtService,
		sessionService: sessionService,
	}
}

// RequireAuth validates the Bearer token and checks that an active session
// still backs it, then stores the caller identity on the gin context.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Success: false,
				Error: utils.APIError{
					Code:    "MISSING_TOKEN",
					Message: "authorization header required",
				},
			})
			return
		}

		// Extract token from Bearer format
		tokenString := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[7:]
		}

		// Validate the token and extract claims
		claims, err := m.jwtService.VerifyToken(tokenString)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Success: false,
				Error: utils.APIError{
					Code:    "INVALID_TOKEN",
					Message: "token validation failed",
				},
			})
			return
		}

		// Check if a session still backs this token
		sessions, err := m.sessionService.GetUserSessions(c, claims.UserID)
		if err != nil {
			log.Printf("Failed to retrieve user sessions: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{
				Success: false,
				Error: utils.APIError{
					Code:    "SESSION_CHECK_FAILED",
					Message: "failed to check user session",
				},
			})
			return
		}

		isSessionValid := false
		for _, session := range sessions {
			if session.TokenHash == tokenString && session.IsActive {
				isSessionValid = true
				break
			}
		}

		if !isSessionValid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Success: false,
				Error: utils.APIError{
					Code:    "SESSION_INVALID",
					Message: "no session found or session invalid",
				},
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserPhone, claims.Phone)
		c.Next()
	}
}
