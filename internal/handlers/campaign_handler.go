package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/schoolhealth/campaign-management-api/internal/models"
	"github.com/schoolhealth/campaign-management-api/internal/service"
	"github.com/schoolhealth/campaign-management-api/internal/utils"
)

// CampaignHandler handles campaign store HTTP requests
type CampaignHandler struct {
	campaignService *service.CampaignService
}

// NewCampaignHandler creates a new campaign handler instance
func NewCampaignHandler(campaignService *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
	}
}

// CreateCampaign handles POST /campaigns
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var request models.CampaignCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	actionBy := utils.GetUserIDFromContext(c)

	campaign, err := h.campaignService.CreateCampaign(c.Request.Context(), &request, actionBy)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendCreatedResponse(c, campaign)
}

// GetCampaign handles GET /campaigns/:campaignId
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaignID := c.Param("campaignId")

	campaign, err := h.campaignService.GetCampaign(c.Request.Context(), campaignID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendOKResponse(c, campaign)
}

// UpdateCampaign handles PUT /campaigns/:campaignId
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	campaignID := c.Param("campaignId")

	var patch models.CampaignUpdateRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	campaign, err := h.campaignService.UpdateCampaign(c.Request.Context(), campaignID, &patch)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendOKResponse(c, campaign)
}

// ListCampaigns handles GET /campaigns
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	var filter models.CampaignFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendBadRequestError(c, "Invalid query parameters", err.Error())
		return
	}

	response, err := h.campaignService.ListCampaigns(c.Request.Context(), &filter)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendOKResponse(c, response)
}

// DeleteCampaign handles DELETE /campaigns/:campaignId
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	campaignID := c.Param("campaignId")

	if err := h.campaignService.DeleteCampaign(c.Request.Context(), campaignID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendNoContentResponse(c)
}
