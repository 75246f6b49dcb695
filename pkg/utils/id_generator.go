package utils

import (
	"github.com/google/uuid"
)

// GenerateID generates a new UUID for campaign, consent record, or audit IDs
func GenerateID() string {
	return uuid.New().String()
}

// GenerateCampaignID generates a unique campaign ID
func GenerateCampaignID() string {
	return "CAMPAIGN-" + uuid.New().String()
}

// GenerateConsentRecordID generates a unique consent record ID
func GenerateConsentRecordID() string {
	return "CONSENT-" + uuid.New().String()
}

// GenerateAuditID generates a unique status audit ID
func GenerateAuditID() string {
	return "AUDIT-" + uuid.New().String()
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
