package models

// Campaign represents the CM_CAMPAIGN table
type Campaign struct {
	CampaignID         string `db:"CAMPAIGN_ID" json:"campaignId"`
	Kind               string `db:"KIND" json:"kind"`
	Subject            string `db:"SUBJECT" json:"subject"`
	ScheduledDate      string `db:"SCHEDULED_DATE" json:"scheduledDate"`
	Location           string `db:"LOCATION" json:"location"`
	TargetStudentCount int    `db:"TARGET_STUDENT_COUNT" json:"targetStudentCount"`
	Status             string `db:"STATUS" json:"status"`
	ConsentsSent       bool   `db:"CONSENTS_SENT" json:"consentsSent"`
	ActualStudentCount *int   `db:"ACTUAL_STUDENT_COUNT" json:"actualStudentCount,omitempty"`
	CreatedTime        int64  `db:"CREATED_TIME" json:"createdTime"`
	UpdatedTime        int64  `db:"UPDATED_TIME" json:"updatedTime"`
}

// CampaignKind lists the supported kinds of medical campaigns
const (
	CampaignKindVaccination = "VACCINATION"
	CampaignKindHealthCheck = "HEALTH_CHECK"
)

// Campaign lifecycle statuses. DRAFT, CONSENTS_PENDING, CONSENTS_SENT and
// CONFIRMED are non-terminal; COMPLETED and CANCELLED are terminal.
const (
	CampaignStatusDraft           = "DRAFT"
	CampaignStatusConsentsPending = "CONSENTS_PENDING"
	CampaignStatusConsentsSent    = "CONSENTS_SENT"
	CampaignStatusConfirmed       = "CONFIRMED"
	CampaignStatusCompleted       = "COMPLETED"
	CampaignStatusCancelled       = "CANCELLED"
)

// IsValidKind reports whether the given kind is a supported campaign kind
func IsValidKind(kind string) bool {
	return kind == CampaignKindVaccination || kind == CampaignKindHealthCheck
}

// IsValidStatus reports whether the given status is a known lifecycle status
func IsValidStatus(status string) bool {
	switch status {
	case CampaignStatusDraft, CampaignStatusConsentsPending, CampaignStatusConsentsSent,
		CampaignStatusConfirmed, CampaignStatusCompleted, CampaignStatusCancelled:
		return true
	}
	return false
}

// IsTerminalStatus reports whether the given status admits no further transitions
func IsTerminalStatus(status string) bool {
	return status == CampaignStatusCompleted || status == CampaignStatusCancelled
}

// ActiveStatuses returns the statuses counted as active campaigns on the
// dashboard and eligible for the upcoming listing.
func ActiveStatuses() []string {
	return []string{
		CampaignStatusConsentsPending,
		CampaignStatusConsentsSent,
		CampaignStatusConfirmed,
	}
}

// NonTerminalStatuses returns every status that still admits transitions
func NonTerminalStatuses() []string {
	return []string{
		CampaignStatusDraft,
		CampaignStatusConsentsPending,
		CampaignStatusConsentsSent,
		CampaignStatusConfirmed,
	}
}

// CampaignCreateRequest represents the API payload for creating a campaign
type CampaignCreateRequest struct {
	Kind               string `json:"kind" binding:"required"`
	Subject            string `json:"subject" binding:"required"`
	ScheduledDate      string `json:"scheduledDate" binding:"required"`
	Location           string `json:"location" binding:"required"`
	TargetStudentCount int    `json:"targetStudentCount"`
}

// CampaignUpdateRequest represents the API payload for updating a campaign.
// Status and ConsentsSent are bound so that direct mutation attempts can be
// rejected explicitly instead of silently ignored.
type CampaignUpdateRequest struct {
	Subject            *string `json:"subject,omitempty"`
	ScheduledDate      *string `json:"scheduledDate,omitempty"`
	Location           *string `json:"location,omitempty"`
	TargetStudentCount *int    `json:"targetStudentCount,omitempty"`
	Status             *string `json:"status,omitempty"`
	ConsentsSent       *bool   `json:"consentsSent,omitempty"`
}

// CampaignFilter represents list filter parameters
type CampaignFilter struct {
	Kind   string `form:"kind"`
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// CampaignListResponse represents the response for campaign listing
type CampaignListResponse struct {
	Data     []Campaign           `json:"data"`
	Metadata CampaignListMetadata `json:"metadata"`
}

// CampaignListMetadata represents pagination metadata
type CampaignListMetadata struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// SendConsentsRequest represents the API payload for sending consents
type SendConsentsRequest struct {
	RecipientIDs []string `json:"recipientIds" binding:"required"`
}

// ConsentResponseRequest represents the API payload for recording a consent response
type ConsentResponseRequest struct {
	Response string `json:"response" binding:"required"`
}

// CompleteCampaignRequest represents the API payload for completing a campaign
type CompleteCampaignRequest struct {
	ActualStudentCount int `json:"actualStudentCount"`
}

// CancelCampaignRequest represents the API payload for cancelling a campaign
type CancelCampaignRequest struct {
	Reason string `json:"reason,omitempty"`
}

// DashboardSummary represents the aggregate dashboard figures
type DashboardSummary struct {
	TotalCampaigns           int `json:"totalCampaigns"`
	PendingConsentsAcrossAll int `json:"pendingConsentsAcrossAll"`
	CompletedCount           int `json:"completedCount"`
	ActiveCount              int `json:"activeCount"`
}
