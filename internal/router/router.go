package router

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/schoolhealth/campaign-management-api/internal/config"
	"github.com/schoolhealth/campaign-management-api/internal/handlers"
	"github.com/schoolhealth/campaign-management-api/internal/service"
	"github.com/schoolhealth/campaign-management-api/internal/utils"
)

// SetupRouter configures all API routes
func SetupRouter(
	campaignService *service.CampaignService,
	workflowService *service.WorkflowService,
	queryService *service.QueryService,
) *gin.Engine {
	router := gin.Default()

	cfg := config.Get()

	if cfg != nil && cfg.CORS.Enabled {
		router.Use(corsMiddleware(&cfg.CORS))
	}

	// Global middleware to extract headers and set context
	router.Use(func(c *gin.Context) {
		userID := c.GetHeader("user-id")
		if userID != "" {
			utils.SetContextValue(c, "userID", userID)
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Create handlers
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	workflowHandler := handlers.NewWorkflowHandler(workflowService)
	dashboardHandler := handlers.NewDashboardHandler(queryService)

	// API v1 routes
	v1 := router.Group("/api/v1")
	if cfg != nil && cfg.Security.IsBasicAuthEnabled() {
		v1.Use(basicAuthMiddleware(&cfg.Security))
	}
	{
		// Campaign store routes
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.ListCampaigns)
			campaigns.GET("/:campaignId", campaignHandler.GetCampaign)
			campaigns.PUT("/:campaignId", campaignHandler.UpdateCampaign)
			campaigns.DELETE("/:campaignId", campaignHandler.DeleteCampaign)

			// Workflow transition routes
			campaigns.POST("/:campaignId/send-consents", workflowHandler.SendConsents)
			campaigns.POST("/:campaignId/consents/:recipientId/response", workflowHandler.RecordConsentResponse)
			campaigns.POST("/:campaignId/confirm", workflowHandler.ConfirmSchedule)
			campaigns.POST("/:campaignId/complete", workflowHandler.CompleteCampaign)
			campaigns.POST("/:campaignId/cancel", workflowHandler.CancelCampaign)

			// Read-side routes
			campaigns.GET("/:campaignId/consents", dashboardHandler.ListConsentRecords)
			campaigns.GET("/:campaignId/consents/counts", dashboardHandler.GetConsentCounts)
			campaigns.GET("/:campaignId/audit", dashboardHandler.GetAuditTrail)
		}

		// Dashboard routes
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/summary", dashboardHandler.GetSummary)
			dashboard.GET("/upcoming", dashboardHandler.GetUpcoming)
		}
	}

	return router
}

func basicAuthMiddleware(security *config.SecurityConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !security.ValidateUser(username, password) {
			c.Header("WWW-Authenticate", `Basic realm="campaign-management-api"`)
			utils.SendUnauthorizedError(c, "Authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func corsMiddleware(cors *config.CORSConfig) gin.HandlerFunc {
	allowedMethods := strings.Join(cors.AllowedMethods, ", ")
	allowedHeaders := strings.Join(cors.AllowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && originAllowed(cors.AllowedOrigins, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			if cors.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}

		if c.Request.Method == "OPTIONS" {
			c.Header("Access-Control-Allow-Methods", allowedMethods)
			c.Header("Access-Control-Allow-Headers", allowedHeaders)
			if cors.MaxAge > 0 {
				c.Header("Access-Control-Max-Age", strconv.Itoa(cors.MaxAge))
			}
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, candidate := range allowed {
		if candidate == "*" || candidate == origin {
			return true
		}
	}
	return false
}
