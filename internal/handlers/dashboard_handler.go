package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/schoolhealth/campaign-management-api/internal/service"
	"github.com/schoolhealth/campaign-management-api/internal/utils"
)

// DashboardHandler handles read-side projection HTTP requests
type DashboardHandler struct {
	queryService *service.QueryService
}

// NewDashboardHandler creates a new dashboard handler instance
func NewDashboardHandler(queryService *service.QueryService) *DashboardHandler {
	return &DashboardHandler{
		queryService: queryService,
	}
}

// GetSummary handles GET /dashboard/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.queryService.DashboardSummary(c.Request.Context())
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendOKResponse(c, summary)
}

// GetUpcoming handles GET /dashboard/upcoming
func (h *DashboardHandler) GetUpcoming(c *gin.Context) {
	kind := c.Query("kind")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.SendBadRequestError(c, "Invalid limit parameter", err.Error())
			return
		}
		limit = parsed
	}

	campaigns, err := h.queryService.Upcoming(c.Request.Context(), kind, limit)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendOKResponse(c, gin.H{"data": campaigns})
}

// GetConsentCounts handles GET /campaigns/:campaignId/consents/counts
func (h *DashboardHandler) GetConsentCounts(c *gin.Context) {
	campaignID := c.Param("campaignId")

	counts, err := h.queryService.ConsentCounts(c.Request.Context(), campaignID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendOKResponse(c, counts)
}

// ListConsentRecords handles GET /campaigns/:campaignId/consents
func (h *DashboardHandler) ListConsentRecords(c *gin.Context) {
	campaignID := c.Param("campaignId")

	records, err := h.queryService.ConsentRecords(c.Request.Context(), campaignID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendOKResponse(c, gin.H{"data": records})
}

// GetAuditTrail handles GET /campaigns/:campaignId/audit
func (h *DashboardHandler) GetAuditTrail(c *gin.Context) {
	campaignID := c.Param("campaignId")

	trail, err := h.queryService.AuditTrail(c.Request.Context(), campaignID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	utils.SendOKResponse(c, gin.H{"data": trail})
}
