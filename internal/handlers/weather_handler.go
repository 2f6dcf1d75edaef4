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

type WeatherHandler struct {
	riskService services.IRiskService
}

func NewWeatherHandler(riskService services.IRiskService) *WeatherHandler {
	return &WeatherHandler{
		riskService: riskService,
	}
}

func (h *WeatherHandler) RegisterRoutes(router *gin.Engine) {
	weatherGroupPublic := router.Group("/weather/public/api/v2")
	weatherGroupPublic.POST("/risk", h.AnalyzeRisk)
}

// AnalyzeRisk classifies drought / moderate / excess-moisture risk for a
// village from its coordinates.
func (h *WeatherHandler) AnalyzeRisk(c *gin.Context) {
	var req models.RiskAnalysisRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("Bad Request", "lat and lon are required")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if req.Lat < -90 || req.Lat > 90 || req.Lon < -180 || req.Lon > 180 {
		errorResponse := utils.CreateErrorResponse("Bad Request", "lat must be in [-90, 90] and lon in [-180, 180]")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	assessment, err := h.riskService.AnalyzeVillageRisk(c, req.Lat, req.Lon)
	if err != nil {
		log.Printf("Risk analysis failed for (%.2f, %.2f): %v", req.Lat, req.Lon, err)

		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid weather API key") {
			statusCode = http.StatusBadGateway
		}
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to analyze village risk")
		c.JSON(statusCode, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(assessment))
}
