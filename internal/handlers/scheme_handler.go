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

type SchemeHandler struct {
	schemeService services.ISchemeService
}

func NewSchemeHandler(schemeService services.ISchemeService) *SchemeHandler {
	return &SchemeHandler{
		schemeService: schemeService,
	}
}

func (h *SchemeHandler) RegisterRoutes(router *gin.Engine) {
	schemeGroupPublic := router.Group("/schemes/public/api/v2")
	schemeGroupPublic.GET("/metadata", h.GetCatalogMetadata)
	schemeGroupPublic.POST("/eligibility", h.CheckEligibility)
}

// GetCatalogMetadata serves the crop, disaster-type and state lists the
// disaster-help form is built from.
func (h *SchemeHandler) GetCatalogMetadata(c *gin.Context) {
	metadata, err := h.schemeService.GetCatalogMetadata()
	if err != nil {
		log.Printf("Failed to load scheme catalog metadata: %v", err)
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to load scheme catalog")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(map[string]interface{}{
		"crops":          metadata.Crops,
		"disaster_types": metadata.DisasterTypes,
		"states":         metadata.States,
	}))
}

// CheckEligibility runs the priority-scoring engine for a farmer's
// situation and returns the ranked scheme list. The engine never returns
// an empty list, so a 200 always carries at least one scheme.
func (h *SchemeHandler) CheckEligibility(c *gin.Context) {
	var req models.EligibilityRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid eligibility request format: %v", err)
		errorResponse := utils.CreateErrorResponse("Bad Request", "crop, disaster_type and a positive land_size are required")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	if strings.TrimSpace(req.Crop) == "" || strings.TrimSpace(req.DisasterType) == "" {
		errorResponse := utils.CreateErrorResponse("Bad Request", "crop and disaster_type must not be blank")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	query := models.SchemeQuery{
		Crop:          req.Crop,
		DisasterType:  req.DisasterType,
		LandSize:      req.LandSize,
		HasInsurance:  req.HasInsurance,
		HasKCC:        req.HasKCC,
		DamagePercent: req.DamagePercent,
	}

	results := h.schemeService.FindEligibleSchemes(query)

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(map[string]interface{}{
		"schemes": results,
		"count":   len(results),
	}))
}
