package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/schoolhealth/campaign-management-api/internal/models"
	"github.com/schoolhealth/campaign-management-api/internal/service"
	"github.com/schoolhealth/campaign-management-api/internal/utils"
)

// WorkflowHandler handles campaign lifecycle HTTP requests
type WorkflowHandler struct {
	workflowService *service.WorkflowService
}

// NewWorkflowHandler creates a new workflow handler instance
func NewWorkflowHandler(workflowService *service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{
		workflowService: workflowService,
	}
}

// SendConsents handles POST /campaigns/:campaignId/send-consents
func (h *WorkflowHandler) SendConsents(c *gin.Context) {
	campaignID := c.Param("campaignId")

	var request models.SendConsentsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	actionBy := utils.GetUserIDFromContext(c)

	campaign, err := h.workflowService.SendConsents(c.Request.Context(), campaignID, request.RecipientIDs, actionBy)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendOKResponse(c, campaign)
}

// RecordConsentResponse handles POST /campaigns/:campaignId/consents/:recipientId/response
func (h *WorkflowHandler) RecordConsentResponse(c *gin.Context) {
	campaignID := c.Param("campaignId")
	recipientID := c.Param("recipientId")

	var request models.ConsentResponseRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	campaign, err := h.workflowService.RecordConsentResponse(c.Request.Context(), campaignID, recipientID, request.Response)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendOKResponse(c, campaign)
}

// ConfirmSchedule handles POST /campaigns/:campaignId/confirm
func (h *WorkflowHandler) ConfirmSchedule(c *gin.Context) {
	campaignID := c.Param("campaignId")
	actionBy := utils.GetUserIDFromContext(c)

	campaign, err := h.workflowService.ConfirmSchedule(c.Request.Context(), campaignID, actionBy)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendOKResponse(c, campaign)
}

// CompleteCampaign handles POST /campaigns/:campaignId/complete
func (h *WorkflowHandler) CompleteCampaign(c *gin.Context) {
	campaignID := c.Param("campaignId")

	var request models.CompleteCampaignRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	actionBy := utils.GetUserIDFromContext(c)

	campaign, err := h.workflowService.CompleteCampaign(c.Request.Context(), campaignID, request.ActualStudentCount, actionBy)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendOKResponse(c, campaign)
}

// CancelCampaign handles POST /campaigns/:campaignId/cancel
func (h *WorkflowHandler) CancelCampaign(c *gin.Context) {
	campaignID := c.Param("campaignId")

	// Body is optional, cancellation works without a reason.
	var request models.CancelCampaignRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			utils.SendBadRequestError(c, "Invalid request body", err.Error())
			return
		}
	}

	actionBy := utils.GetUserIDFromContext(c)

	campaign, err := h.workflowService.CancelCampaign(c.Request.Context(), campaignID, request.Reason, actionBy)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendOKResponse(c, campaign)
}
