package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError indicates malformed input at creation or update time.
// The caller can recover by correcting the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a validation error for a named field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError indicates an unknown campaign or consent record
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewCampaignNotFound creates a not-found error for a campaign
func NewCampaignNotFound(campaignID string) error {
	return &NotFoundError{Resource: "campaign", ID: campaignID}
}

// NewConsentRecordNotFound creates a not-found error for a (campaign, recipient) pair
func NewConsentRecordNotFound(campaignID, recipientID string) error {
	return &NotFoundError{Resource: "consent record", ID: campaignID + "/" + recipientID}
}

// InvalidTransitionError indicates a workflow command that is not legal in
// the campaign's current state. The message names both states.
type InvalidTransitionError struct {
	CampaignID string
	Current    string
	Attempted  string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition for campaign %s: current status %s, attempted %s",
		e.CampaignID, e.Current, e.Attempted)
}

// NewInvalidTransition creates an invalid transition error
func NewInvalidTransition(campaignID, current, attempted string) error {
	return &InvalidTransitionError{CampaignID: campaignID, Current: current, Attempted: attempted}
}

// AlreadyInitializedError indicates consents were already sent for a campaign
type AlreadyInitializedError struct {
	CampaignID string
}

func (e *AlreadyInitializedError) Error() string {
	return fmt.Sprintf("consent records already initialized for campaign %s", e.CampaignID)
}

// NewAlreadyInitialized creates an already-initialized error
func NewAlreadyInitialized(campaignID string) error {
	return &AlreadyInitializedError{CampaignID: campaignID}
}

// NotSentYetError indicates a response was recorded before the consent was sent
type NotSentYetError struct {
	CampaignID  string
	RecipientID string
}

func (e *NotSentYetError) Error() string {
	return fmt.Sprintf("consent for recipient %s in campaign %s has not been sent yet",
		e.RecipientID, e.CampaignID)
}

// NewNotSentYet creates a not-sent-yet error
func NewNotSentYet(campaignID, recipientID string) error {
	return &NotSentYetError{CampaignID: campaignID, RecipientID: recipientID}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError
func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}

// IsAlreadyInitialized reports whether err is an AlreadyInitializedError
func IsAlreadyInitialized(err error) bool {
	var target *AlreadyInitializedError
	return errors.As(err, &target)
}

// IsNotSentYet reports whether err is a NotSentYetError
func IsNotSentYet(err error) bool {
	var target *NotSentYetError
	return errors.As(err, &target)
}
