package models

// CampaignStatusAudit represents the CM_CAMPAIGN_STATUS_AUDIT table. One row
// is written for every lifecycle transition, including the cancel reason.
type CampaignStatusAudit struct {
	AuditID        string  `db:"AUDIT_ID" json:"auditId"`
	CampaignID     string  `db:"CAMPAIGN_ID" json:"campaignId"`
	CurrentStatus  string  `db:"CURRENT_STATUS" json:"currentStatus"`
	PreviousStatus *string `db:"PREVIOUS_STATUS" json:"previousStatus,omitempty"`
	ActionTime     int64   `db:"ACTION_TIME" json:"actionTime"`
	ActionBy       *string `db:"ACTION_BY" json:"actionBy,omitempty"`
	Reason         *string `db:"REASON" json:"reason,omitempty"`
}
