package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/services"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/utils"

	"github.com/gin-gonic/gin"
)

type FarmLogHandler struct {
	farmLogService services.IFarmLogService
}

func NewFarmLogHandler(farmLogService services.IFarmLogService) *FarmLogHandler {
	return &FarmLogHandler{
		farmLogService: farmLogService,
	}
}

func (h *FarmLogHandler) RegisterRoutes(router *gin.Engine, middleware *Middleware) {
	logGroup := router.Group("/logbook/protected/api/v2")
	logGroup.Use(middleware.RequireAuth())
	logGroup.POST("/logs", h.CreateLog)
	logGroup.GET("/logs", h.ListLogs)
	logGroup.DELETE("/logs/:id", h.DeleteLog)
}

func (h *FarmLogHandler) CreateLog(c *gin.Context) {
	userID := c.GetString(ContextUserID)

	var req models.CreateFarmLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid farm log request format: %v", err)
		errorResponse := utils.CreateErrorResponse("Bad Request", "crop_name and sowing_date are required")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	entry, err := h.farmLogService.AddLog(userID, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid") {
			statusCode = http.StatusBadRequest
		}
		log.Printf("Failed to create farm log for user %s: %v", userID, err)
		errorResponse := utils.CreateErrorResponse("Failed to create log", err.Error())
		c.JSON(statusCode, errorResponse)
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(map[string]interface{}{"log": entry}))
}

func (h *FarmLogHandler) ListLogs(c *gin.Context) {
	userID := c.GetString(ContextUserID)

	logs, err := h.farmLogService.GetLogs(userID)
	if err != nil {
		log.Printf("Failed to list farm logs for user %s: %v", userID, err)
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to load logbook")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(map[string]interface{}{
		"logs":  logs,
		"count": len(logs),
	}))
}

// DeleteLog removes a logbook entry. The repository scopes the delete to
// the owner, so a farmer cannot delete another farmer's entry.
func (h *FarmLogHandler) DeleteLog(c *gin.Context) {
	userID := c.GetString(ContextUserID)
	logID := c.Param("id")

	if err := h.farmLogService.DeleteLog(userID, logID); err != nil {
		log.Printf("Failed to delete farm log %s for user %s: %v", logID, userID, err)
		errorResponse := utils.CreateErrorResponse("Not Found", "log not found")
		c.JSON(http.StatusNotFound, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(map[string]interface{}{"deleted": logID}))
}
