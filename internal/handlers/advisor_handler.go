package handlers

import (
	"log"
	"net/http"

	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/models"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/internal/services"
	"github.com/dharanishvijayakumar7-lgtm/cropPilot/utils"

	"github.com/gin-gonic/gin"
)

type AdvisorHandler struct {
	advisorService services.IAdvisorService
}

func NewAdvisorHandler(advisorService services.IAdvisorService) *AdvisorHandler {
	return &AdvisorHandler{
		advisorService: advisorService,
	}
}

func (h *AdvisorHandler) RegisterRoutes(router *gin.Engine) {
	advisorGroupPublic := router.Group("/advisor/public/api/v2")
	advisorGroupPublic.POST("/ask", h.Ask)
}

// Ask answers a free-text farmer question by keyword intent.
func (h *AdvisorHandler) Ask(c *gin.Context) {
	var req models.AdvisorRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse := utils.CreateErrorResponse("Bad Request", "message is required")
		c.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	reply, err := h.advisorService.Answer(c, req)
	if err != nil {
		log.Printf("Advisor failed to answer %q: %v", req.Message, err)
		errorResponse := utils.CreateErrorResponse("Internal server error", "Failed to answer the question")
		c.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(map[string]interface{}{
		"intent": h.advisorService.ClassifyIntent(req.Message),
		"reply":  reply,
	}))
}
