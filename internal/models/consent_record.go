package models

// ConsentRecord represents the CM_CONSENT_RECORD table. One row per targeted
// recipient of a campaign, keyed by (CAMPAIGN_ID, RECIPIENT_ID).
type ConsentRecord struct {
	ConsentID     string `db:"CONSENT_ID" json:"consentId"`
	CampaignID    string `db:"CAMPAIGN_ID" json:"campaignId"`
	RecipientID   string `db:"RECIPIENT_ID" json:"recipientId"`
	SentTime      *int64 `db:"SENT_TIME" json:"sentTime,omitempty"`
	Response      string `db:"RESPONSE" json:"response"`
	RespondedTime *int64 `db:"RESPONDED_TIME" json:"respondedTime,omitempty"`
}

// Consent response values
const (
	ConsentResponsePending  = "PENDING"
	ConsentResponseApproved = "APPROVED"
	ConsentResponseDeclined = "DECLINED"
)

// IsValidResponse reports whether the given value is a recordable response.
// PENDING is the initial state only and cannot be recorded by a caller.
func IsValidResponse(response string) bool {
	return response == ConsentResponseApproved || response == ConsentResponseDeclined
}

// ConsentCounts represents the per-campaign ledger aggregation
type ConsentCounts struct {
	Sent     int `db:"SENT" json:"sent"`
	Approved int `db:"APPROVED" json:"approved"`
	Declined int `db:"DECLINED" json:"declined"`
	Pending  int `db:"PENDING" json:"pending"`
}
