package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/schoolhealth/campaign-management-api/internal/apperrors"
	"github.com/schoolhealth/campaign-management-api/internal/config"
	"github.com/schoolhealth/campaign-management-api/internal/database"
	"github.com/schoolhealth/campaign-management-api/internal/models"
	"github.com/schoolhealth/campaign-management-api/pkg/utils"
)

// WorkflowService is the campaign lifecycle state machine. Every command
// runs in one transaction that locks the campaign row first, so all writers
// of a campaign serialize while independent campaigns proceed concurrently.
// A failed guard rolls the whole transaction back: transitions apply all of
// their effects or none.
type WorkflowService struct {
	campaignDAO CampaignDAOInterface
	ledgerDAO   ConsentLedgerDAOInterface
	auditDAO    StatusAuditDAOInterface
	db          TxManager
	logger      *logrus.Logger
	policy      config.WorkflowConfig
}

// NewWorkflowService creates a new workflow service instance
func NewWorkflowService(
	campaignDAO CampaignDAOInterface,
	ledgerDAO ConsentLedgerDAOInterface,
	auditDAO StatusAuditDAOInterface,
	db TxManager,
	logger *logrus.Logger,
	policy config.WorkflowConfig,
) *WorkflowService {
	if policy.MinApprovalsToConfirm <= 0 {
		policy.MinApprovalsToConfirm = 1
	}
	return &WorkflowService{
		campaignDAO: campaignDAO,
		ledgerDAO:   ledgerDAO,
		auditDAO:    auditDAO,
		db:          db,
		logger:      logger,
		policy:      policy,
	}
}

// SendConsents transitions a DRAFT campaign to CONSENTS_SENT, creating one
// consent record per recipient and stamping them sent. Consents can be sent
// only once per campaign; a second call fails without touching the ledger.
func (s *WorkflowService) SendConsents(ctx context.Context, campaignID string, recipientIDs []string, actionBy string) (*models.Campaign, error) {
	if err := utils.ValidateCampaignID(campaignID); err != nil {
		return nil, apperrors.NewValidationError("campaignId", err.Error())
	}
	if len(recipientIDs) == 0 {
		return nil, apperrors.NewValidationError("recipientIds", "at least one recipient is required")
	}
	seen := make(map[string]bool, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		if err := utils.ValidateRecipientID(recipientID); err != nil {
			return nil, apperrors.NewValidationError("recipientIds", err.Error())
		}
		if seen[recipientID] {
			return nil, apperrors.NewValidationError("recipientIds", fmt.Sprintf("duplicate recipient: %s", recipientID))
		}
		seen[recipientID] = true
	}

	var updated *models.Campaign
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		campaign, err := s.campaignDAO.GetByIDForUpdateWithTx(ctx, tx, campaignID)
		if err != nil {
			return err
		}
		if campaign == nil {
			return apperrors.NewCampaignNotFound(campaignID)
		}

		existing, err := s.ledgerDAO.CountByCampaignWithTx(ctx, tx, campaignID)
		if err != nil {
			return err
		}
		if existing > 0 {
			return apperrors.NewAlreadyInitialized(campaignID)
		}

		if campaign.Status != models.CampaignStatusDraft {
			return apperrors.NewInvalidTransition(campaignID, campaign.Status, models.CampaignStatusConsentsSent)
		}

		records := make([]models.ConsentRecord, 0, len(recipientIDs))
		for _, recipientID := range recipientIDs {
			records = append(records, models.ConsentRecord{
				ConsentID:   utils.GenerateConsentRecordID(),
				CampaignID:  campaignID,
				RecipientID: recipientID,
				Response:    models.ConsentResponsePending,
			})
		}
		if err := s.ledgerDAO.BulkInsertWithTx(ctx, tx, records); err != nil {
			return err
		}

		now := utils.GetCurrentTimeMillis()
		if err := s.ledgerDAO.MarkSentWithTx(ctx, tx, campaignID, now); err != nil {
			return err
		}

		previous := campaign.Status
		campaign.Status = models.CampaignStatusConsentsSent
		campaign.ConsentsSent = true
		campaign.UpdatedTime = now
		if err := s.campaignDAO.UpdateWithTx(ctx, tx, campaign); err != nil {
			return err
		}

		reason := fmt.Sprintf("Consents sent to %d recipients", len(recipientIDs))
		if err := s.writeAudit(ctx, tx, campaign, previous, now, actionBy, reason); err != nil {
			return err
		}

		updated = campaign
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"campaign_id":     campaignID,
		"recipient_count": len(recipientIDs),
	}).Info("Consents sent")

	return updated, nil
}

// RecordConsentResponse records a recipient's approval or decline. Legal in
// CONSENTS_SENT and CONFIRMED, because consent collection continues after a
// schedule is provisionally confirmed. Re-recording overwrites the previous
// response.
func (s *WorkflowService) RecordConsentResponse(ctx context.Context, campaignID, recipientID, response string) (*models.Campaign, error) {
	if err := utils.ValidateCampaignID(campaignID); err != nil {
		return nil, apperrors.NewValidationError("campaignId", err.Error())
	}
	if err := utils.ValidateRecipientID(recipientID); err != nil {
		return nil, apperrors.NewValidationError("recipientId", err.Error())
	}
	if !models.IsValidResponse(response) {
		return nil, apperrors.NewValidationError("response", fmt.Sprintf("must be %s or %s", models.ConsentResponseApproved, models.ConsentResponseDeclined))
	}

	var updated *models.Campaign
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		campaign, err := s.campaignDAO.GetByIDForUpdateWithTx(ctx, tx, campaignID)
		if err != nil {
			return err
		}
		if campaign == nil {
			return apperrors.NewCampaignNotFound(campaignID)
		}

		// Before consents go out there is nothing to respond to; terminal
		// states reject the command outright.
		if campaign.Status == models.CampaignStatusDraft || campaign.Status == models.CampaignStatusConsentsPending {
			return apperrors.NewNotSentYet(campaignID, recipientID)
		}
		if campaign.Status != models.CampaignStatusConsentsSent && campaign.Status != models.CampaignStatusConfirmed {
			return apperrors.NewInvalidTransition(campaignID, campaign.Status, "RECORD_RESPONSE")
		}

		record, err := s.ledgerDAO.GetByRecipientWithTx(ctx, tx, campaignID, recipientID)
		if err != nil {
			return err
		}
		if record == nil {
			return apperrors.NewConsentRecordNotFound(campaignID, recipientID)
		}
		if record.SentTime == nil {
			return apperrors.NewNotSentYet(campaignID, recipientID)
		}

		now := utils.GetCurrentTimeMillis()
		if err := s.ledgerDAO.UpdateResponseWithTx(ctx, tx, record.ConsentID, response, now); err != nil {
			return err
		}

		campaign.UpdatedTime = now
		if err := s.campaignDAO.UpdateWithTx(ctx, tx, campaign); err != nil {
			return err
		}

		updated = campaign
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"campaign_id":  campaignID,
		"recipient_id": recipientID,
		"response":     response,
	}).Info("Consent response recorded")

	return updated, nil
}

// ConfirmSchedule transitions CONSENTS_SENT to CONFIRMED once enough
// approvals are in. The approval threshold is policy, default one.
func (s *WorkflowService) ConfirmSchedule(ctx context.Context, campaignID, actionBy string) (*models.Campaign, error) {
	if err := utils.ValidateCampaignID(campaignID); err != nil {
		return nil, apperrors.NewValidationError("campaignId", err.Error())
	}

	var updated *models.Campaign
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		campaign, err := s.campaignDAO.GetByIDForUpdateWithTx(ctx, tx, campaignID)
		if err != nil {
			return err
		}
		if campaign == nil {
			return apperrors.NewCampaignNotFound(campaignID)
		}

		if campaign.Status != models.CampaignStatusConsentsSent {
			return apperrors.NewInvalidTransition(campaignID, campaign.Status, models.CampaignStatusConfirmed)
		}

		counts, err := s.ledgerDAO.CountsWithTx(ctx, tx, campaignID)
		if err != nil {
			return err
		}
		if counts.Approved < s.policy.MinApprovalsToConfirm {
			s.logger.WithFields(logrus.Fields{
				"campaign_id": campaignID,
				"approved":    counts.Approved,
				"required":    s.policy.MinApprovalsToConfirm,
			}).Warn("Confirm rejected, not enough approvals")
			return apperrors.NewInvalidTransition(campaignID, campaign.Status, models.CampaignStatusConfirmed)
		}

		now := utils.GetCurrentTimeMillis()
		previous := campaign.Status
		campaign.Status = models.CampaignStatusConfirmed
		campaign.UpdatedTime = now
		if err := s.campaignDAO.UpdateWithTx(ctx, tx, campaign); err != nil {
			return err
		}

		reason := fmt.Sprintf("Schedule confirmed with %d approvals", counts.Approved)
		if err := s.writeAudit(ctx, tx, campaign, previous, now, actionBy, reason); err != nil {
			return err
		}

		updated = campaign
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"campaign_id": campaignID,
	}).Info("Campaign schedule confirmed")

	return updated, nil
}

// CompleteCampaign transitions CONFIRMED to COMPLETED and records the number
// of students actually processed.
func (s *WorkflowService) CompleteCampaign(ctx context.Context, campaignID string, actualStudentCount int, actionBy string) (*models.Campaign, error) {
	if err := utils.ValidateCampaignID(campaignID); err != nil {
		return nil, apperrors.NewValidationError("campaignId", err.Error())
	}
	if actualStudentCount < 0 {
		return nil, apperrors.NewValidationError("actualStudentCount", "must not be negative")
	}

	var updated *models.Campaign
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		campaign, err := s.campaignDAO.GetByIDForUpdateWithTx(ctx, tx, campaignID)
		if err != nil {
			return err
		}
		if campaign == nil {
			return apperrors.NewCampaignNotFound(campaignID)
		}

		if campaign.Status != models.CampaignStatusConfirmed {
			return apperrors.NewInvalidTransition(campaignID, campaign.Status, models.CampaignStatusCompleted)
		}

		now := utils.GetCurrentTimeMillis()
		previous := campaign.Status
		campaign.Status = models.CampaignStatusCompleted
		campaign.ActualStudentCount = &actualStudentCount
		campaign.UpdatedTime = now
		if err := s.campaignDAO.UpdateWithTx(ctx, tx, campaign); err != nil {
			return err
		}

		reason := fmt.Sprintf("Campaign completed, %d students processed", actualStudentCount)
		if err := s.writeAudit(ctx, tx, campaign, previous, now, actionBy, reason); err != nil {
			return err
		}

		updated = campaign
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"campaign_id":          campaignID,
		"actual_student_count": actualStudentCount,
	}).Info("Campaign completed")

	return updated, nil
}

// CancelCampaign transitions any non-terminal campaign to CANCELLED and
// stores the reason on the audit trail.
func (s *WorkflowService) CancelCampaign(ctx context.Context, campaignID, reason, actionBy string) (*models.Campaign, error) {
	if err := utils.ValidateCampaignID(campaignID); err != nil {
		return nil, apperrors.NewValidationError("campaignId", err.Error())
	}

	var updated *models.Campaign
	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		campaign, err := s.campaignDAO.GetByIDForUpdateWithTx(ctx, tx, campaignID)
		if err != nil {
			return err
		}
		if campaign == nil {
			return apperrors.NewCampaignNotFound(campaignID)
		}

		if models.IsTerminalStatus(campaign.Status) {
			return apperrors.NewInvalidTransition(campaignID, campaign.Status, models.CampaignStatusCancelled)
		}

		now := utils.GetCurrentTimeMillis()
		previous := campaign.Status
		campaign.Status = models.CampaignStatusCancelled
		campaign.UpdatedTime = now
		if err := s.campaignDAO.UpdateWithTx(ctx, tx, campaign); err != nil {
			return err
		}

		auditReason := reason
		if auditReason == "" {
			auditReason = "Campaign cancelled"
		}
		if err := s.writeAudit(ctx, tx, campaign, previous, now, actionBy, auditReason); err != nil {
			return err
		}

		updated = campaign
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"campaign_id": campaignID,
		"reason":      reason,
	}).Info("Campaign cancelled")

	return updated, nil
}

func (s *WorkflowService) writeAudit(ctx context.Context, tx *database.Transaction, campaign *models.Campaign, previousStatus string, actionTime int64, actionBy, reason string) error {
	audit := &models.CampaignStatusAudit{
		AuditID:        utils.GenerateAuditID(),
		CampaignID:     campaign.CampaignID,
		CurrentStatus:  campaign.Status,
		PreviousStatus: &previousStatus,
		ActionTime:     actionTime,
		ActionBy:       optionalString(actionBy),
		Reason:         &reason,
	}
	return s.auditDAO.CreateWithTx(ctx, tx, audit)
}
