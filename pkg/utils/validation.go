package utils

import (
	"fmt"
	"strings"
)

// ValidateCampaignID validates campaign ID format
func ValidateCampaignID(campaignID string) error {
	if campaignID == "" {
		return fmt.Errorf("campaign ID cannot be empty")
	}
	if len(campaignID) > 255 {
		return fmt.Errorf("campaign ID too long (max 255 characters)")
	}
	return nil
}

// ValidateRecipientID validates a student/guardian recipient identifier
func ValidateRecipientID(recipientID string) error {
	if strings.TrimSpace(recipientID) == "" {
		return fmt.Errorf("recipient ID cannot be empty")
	}
	if len(recipientID) > 255 {
		return fmt.Errorf("recipient ID too long (max 255 characters)")
	}
	return nil
}

// SanitizeString removes dangerous characters from user input
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")
	// Trim whitespace
	input = strings.TrimSpace(input)
	return input
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // Default limit
	}
	if limit > 100 {
		return 100 // Max limit
	}
	return limit
}

// ValidateOffset validates pagination offset
func ValidateOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// ValidateRequired validates that a field is not empty
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateMaxLength validates maximum string length
func ValidateMaxLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%s exceeds maximum length of %d characters", fieldName, maxLength)
	}
	return nil
}
