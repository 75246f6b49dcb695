package utils

import (
	"strings"
	"testing"
)

func TestValidateCampaignID(t *testing.T) {
	tests := []struct {
		name       string
		campaignID string
		wantErr    bool
	}{
		{"Valid prefixed ID", "CAMPAIGN-5a1f0b6e-8f1a-4c2d-9b3e-1234567890ab", false},
		{"Empty ID", "", true},
		{"Too long", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCampaignID(tt.campaignID)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCampaignID(%q) error = %v, wantErr %v", tt.campaignID, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecipientID(t *testing.T) {
	tests := []struct {
		name        string
		recipientID string
		wantErr     bool
	}{
		{"Valid student ID", "STU-1042", false},
		{"Empty", "", true},
		{"Whitespace only", "   ", true},
		{"Too long", strings.Repeat("s", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecipientID(tt.recipientID)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRecipientID(%q) error = %v, wantErr %v", tt.recipientID, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{"Zero falls back to default", 0, 20},
		{"Negative falls back to default", -5, 20},
		{"Within range kept", 50, 50},
		{"Above max clamped", 500, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateLimit(tt.limit); got != tt.expected {
				t.Errorf("ValidateLimit(%d) = %d, want %d", tt.limit, got, tt.expected)
			}
		})
	}
}

func TestValidateOffset(t *testing.T) {
	if got := ValidateOffset(-1); got != 0 {
		t.Errorf("ValidateOffset(-1) = %d, want 0", got)
	}
	if got := ValidateOffset(40); got != 40 {
		t.Errorf("ValidateOffset(40) = %d, want 40", got)
	}
}

func TestValidateRequired(t *testing.T) {
	if err := ValidateRequired("subject", "MMR Vaccine"); err != nil {
		t.Errorf("ValidateRequired returned unexpected error: %v", err)
	}
	if err := ValidateRequired("subject", "  "); err == nil {
		t.Error("ValidateRequired accepted blank value")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeString = %q", got)
	}
}
