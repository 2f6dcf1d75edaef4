package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/services"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService services.IUserService
}

func NewAuthHandler(userService services.IUserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

func (a *AuthHandler) RegisterRoutes(router *gin.Engine, middleware *Middleware) {
	authGrPub := router.Group("/auth/public")

	// Public routes
	authGrPub.POST("/register", a.Register)
	authGrPub.POST("/login", a.Login)

	authGrPro := router.Group("/auth/protected/api/v2")
	authGrPro.Use(middleware.RequireAuth())
	authGrPro.POST("/logout", a.Logout)
	authGrPro.GET("/me", a.GetMe)
}

// Register handles farmer registration. Registration logs the farmer in
// immediately, the same flow the web client expects.
func (a *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest

	// Bind and validate JSON request
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid register request format: %v", err)
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "INVALID_REQUEST_FORMAT",
				Message: "Invalid request format",
			},
		})
		return
	}

	if err := a.validateRegisterRequest(&req); err != nil {
		log.Printf("Register validation failed: %v", err)
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	user, session, token, err := a.userService.RegisterNewUser(req.Name, req.Phone, req.Password, req.State, req.District)
	if err != nil {
		log.Printf("Registration failed for phone %s: %v", req.Phone, err)

		statusCode, errorCode := a.mapRegisterError(err)
		c.JSON(statusCode, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    errorCode,
				Message: "Registration failed",
			},
		})
		return
	}

	log.Printf("Successful registration for user %s", user.ID)
	c.JSON(http.StatusCreated, utils.SuccessResponse{
		Success: true,
		Data:    a.sessionResponseData(user, session, token),
		Meta: &utils.Meta{
			Timestamp: time.Now(),
		},
	})
}

// Login handles farmer authentication
func (a *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	// Bind and validate JSON request
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid login request format: %v", err)
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "INVALID_REQUEST_FORMAT",
				Message: "Invalid request format",
			},
		})
		return
	}

	if err := a.validateLoginRequest(&req); err != nil {
		log.Printf("Login validation failed: %v", err)
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	// Get client info for security tracking
	deviceInfo := a.getDeviceInfo(c)
	ipAddress := a.getClientIP(c)

	user, session, token, err := a.userService.Login(req.Phone, req.Password, &deviceInfo, &ipAddress)
	if err != nil {
		log.Printf("Login failed for phone %s: %v", req.Phone, err)

		// Map service errors to appropriate HTTP responses
		statusCode, errorCode := a.mapLoginError(err)
		c.JSON(statusCode, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    errorCode,
				Message: "Login failed",
			},
		})
		return
	}

	log.Printf("Successful login for user %s", user.ID)
	c.JSON(http.StatusOK, utils.SuccessResponse{
		Success: true,
		Data:    a.sessionResponseData(user, session, token),
		Meta: &utils.Meta{
			Timestamp: time.Now(),
		},
	})
}

// Logout invalidates every session of the authenticated farmer.
func (a *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString(ContextUserID)

	if err := a.userService.Logout(c, userID); err != nil {
		log.Printf("Logout failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "LOGOUT_FAILED",
				Message: "failed to invalidate sessions",
			},
		})
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse{
		Success: true,
		Data:    map[string]interface{}{"message": "logged out"},
		Meta: &utils.Meta{
			Timestamp: time.Now(),
		},
	})
}

func (a *AuthHandler) GetMe(c *gin.Context) {
	userID := c.GetString(ContextUserID)

	user, err := a.userService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse{
			Success: false,
			Error: utils.APIError{
				Code:    "USER_NOT_FOUND",
				Message: "user not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse{
		Success: true,
		Data:    map[string]interface{}{"user": a.userResponseData(user)},
		Meta: &utils.Meta{
			Timestamp: time.Now(),
		},
	})
}

func (a *AuthHandler) sessionResponseData(user *models.User, session *models.UserSession, token string) map[string]interface{} {
	return map[string]interface{}{
		"user": a.userResponseData(user),
		"session": map[string]interface{}{
			"session_id":  session.ID,
			"expires_at":  session.ExpiresAt,
			"device_info": session.DeviceInfo,
			"ip_address":  session.IPAddress,
			"is_active":   session.IsActive,
		},
		"access_token": token,
	}
}

func (a *AuthHandler) userResponseData(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":           user.ID,
		"name":         user.Name,
		"phone_number": user.PhoneNumber,
		"state":        user.State,
		"district":     user.District,
		"status":       user.Status,
	}
}

// validateLoginRequest validates the login request
func (a *AuthHandler) validateLoginRequest(req *models.LoginRequest) error {
	if req.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if len(req.Phone) < 10 {
		return fmt.Errorf("invalid phone number format")
	}
	if req.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// validateRegisterRequest validates the register request
func (a *AuthHandler) validateRegisterRequest(req *models.RegisterRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}

	// Validate phone
	if req.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if len(req.Phone) < 10 {
		return fmt.Errorf("invalid phone number format")
	}

	// Validate password
	if req.Password == "" {
		return fmt.Errorf("password is required")
	}
	if len(req.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	return nil
}

// getDeviceInfo extracts device information from request
func (a *AuthHandler) getDeviceInfo(c *gin.Context) string {
	userAgent := c.GetHeader("User-Agent")
	if userAgent == "" {
		userAgent = "Unknown Device"
	}
	return userAgent
}

// getClientIP extracts client IP address
func (a *AuthHandler) getClientIP(c *gin.Context) string {
	// Check X-Forwarded-For header first (for load balancers/proxies)
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		// Take the first IP if multiple are present
		if ips := strings.Split(xff, ","); len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	// Check X-Real-IP header
	if xri := c.GetHeader("X-Real-IP"); xri != "" {
		return xri
	}

	// Fallback to RemoteAddr
	return c.ClientIP()
}

// mapLoginError maps service layer errors to HTTP responses
func (a *AuthHandler) mapLoginError(err error) (int, string) {
	errorMsg := err.Error()

	switch {
	case strings.Contains(errorMsg, "account blocked"):
		return http.StatusForbidden, "ACCOUNT_BLOCKED"
	case strings.Contains(errorMsg, "invalid password"):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case strings.Contains(errorMsg, "phone number or password incorrect"):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// mapRegisterError maps service layer errors to HTTP responses
func (a *AuthHandler) mapRegisterError(err error) (int, string) {
	errorMsg := err.Error()

	switch {
	case strings.Contains(errorMsg, "already registered"):
		return http.StatusConflict, "USER_ALREADY_EXISTS"
	case strings.Contains(errorMsg, "phone"):
		return http.StatusBadRequest, "INVALID_PHONE"
	case strings.Contains(errorMsg, "password"):
		return http.StatusBadRequest, "INVALID_PASSWORD_FORMAT"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
