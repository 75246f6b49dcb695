package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/schoolhealth/campaign-management-api/internal/apperrors"
	"github.com/schoolhealth/campaign-management-api/internal/database"
	"github.com/schoolhealth/campaign-management-api/internal/models"
	"github.com/schoolhealth/campaign-management-api/pkg/utils"
)

// CampaignService handles business logic for campaign store operations.
// It owns the campaign records; lifecycle transitions belong to the
// WorkflowService.
type CampaignService struct {
	campaignDAO CampaignDAOInterface
	ledgerDAO   ConsentLedgerDAOInterface
	auditDAO    StatusAuditDAOInterface
	db          TxManager
	logger      *logrus.Logger
}

// NewCampaignService creates a new campaign service instance
func NewCampaignService(
	campaignDAO CampaignDAOInterface,
	ledgerDAO ConsentLedgerDAOInterface,
	auditDAO StatusAuditDAOInterface,
	db TxManager,
	logger *logrus.Logger,
) *CampaignService {
	return &CampaignService{
		campaignDAO: campaignDAO,
		ledgerDAO:   ledgerDAO,
		auditDAO:    auditDAO,
		db:          db,
		logger:      logger,
	}
}

// CreateCampaign validates and persists a new campaign in DRAFT status
func (s *CampaignService) CreateCampaign(ctx context.Context, request *models.CampaignCreateRequest, actionBy string) (*models.Campaign, error) {
	if err := s.validateCreateRequest(request); err != nil {
		return nil, err
	}

	now := utils.GetCurrentTimeMillis()
	campaign := &models.Campaign{
		CampaignID:         utils.GenerateCampaignID(),
		Kind:               request.Kind,
		Subject:            utils.SanitizeString(request.Subject),
		ScheduledDate:      request.ScheduledDate,
		Location:           utils.SanitizeString(request.Location),
		TargetStudentCount: request.TargetStudentCount,
		Status:             models.CampaignStatusDraft,
		ConsentsSent:       false,
		CreatedTime:        now,
		UpdatedTime:        now,
	}

	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		if err := s.campaignDAO.CreateWithTx(ctx, tx, campaign); err != nil {
			return err
		}

		reason := "Campaign created"
		audit := &models.CampaignStatusAudit{
			AuditID:       utils.GenerateAuditID(),
			CampaignID:    campaign.CampaignID,
			CurrentStatus: campaign.Status,
			ActionTime:    now,
			ActionBy:      optionalString(actionBy),
			Reason:        &reason,
		}
		return s.auditDAO.CreateWithTx(ctx, tx, audit)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"campaign_id":    campaign.CampaignID,
		"kind":           campaign.Kind,
		"scheduled_date": campaign.ScheduledDate,
	}).Info("Campaign created")

	return campaign, nil
}

// GetCampaign retrieves a campaign by ID
func (s *CampaignService) GetCampaign(ctx context.Context, campaignID string) (*models.Campaign, error) {
	if err := utils.ValidateCampaignID(campaignID); err != nil {
		return nil, apperrors.NewValidationError("campaignId", err.Error())
	}

	campaign, err := s.campaignDAO.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, apperrors.NewCampaignNotFound(campaignID)
	}

	return campaign, nil
}

// UpdateCampaign applies structural field changes to a campaign. Status and
// consentsSent mutate only through workflow transitions; direct attempts are
// rejected. Terminal campaigns cannot be updated.
func (s *CampaignService) UpdateCampaign(ctx context.Context, campaignID string, patch *models.CampaignUpdateRequest) (*models.Campaign, error) {
	if err := utils.ValidateCampaignID(campaignID); err != nil {
		return nil, apperrors.NewValidationError("campaignId", err.Error())
	}

	if err := s.validateUpdateRequest(patch); err != nil {
		return nil, err
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

		if patch.Status != nil || patch.ConsentsSent != nil {
			return apperrors.NewInvalidTransition(campaignID, campaign.Status, "DIRECT_STATUS_UPDATE")
		}

		if models.IsTerminalStatus(campaign.Status) {
			return apperrors.NewInvalidTransition(campaignID, campaign.Status, "UPDATE")
		}

		if patch.Subject != nil {
			campaign.Subject = utils.SanitizeString(*patch.Subject)
		}
		if patch.Location != nil {
			campaign.Location = utils.SanitizeString(*patch.Location)
		}
		if patch.ScheduledDate != nil {
			campaign.ScheduledDate = *patch.ScheduledDate
		}
		if patch.TargetStudentCount != nil {
			campaign.TargetStudentCount = *patch.TargetStudentCount
		}
		campaign.UpdatedTime = utils.GetCurrentTimeMillis()

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
		"campaign_id": campaignID,
	}).Info("Campaign updated")

	return updated, nil
}

// ListCampaigns retrieves campaigns matching the filter with pagination
func (s *CampaignService) ListCampaigns(ctx context.Context, filter *models.CampaignFilter) (*models.CampaignListResponse, error) {
	if filter.Kind != "" && !models.IsValidKind(filter.Kind) {
		return nil, apperrors.NewValidationError("kind", fmt.Sprintf("unknown campaign kind: %s", filter.Kind))
	}
	if filter.Status != "" && !models.IsValidStatus(filter.Status) {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown campaign status: %s", filter.Status))
	}

	filter.Limit = utils.ValidateLimit(filter.Limit)
	filter.Offset = utils.ValidateOffset(filter.Offset)

	campaigns, total, err := s.campaignDAO.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.CampaignListResponse{
		Data: campaigns,
		Metadata: models.CampaignListMetadata{
			Total:  total,
			Limit:  filter.Limit,
			Offset: filter.Offset,
		},
	}, nil
}

// DeleteCampaign removes a campaign and cascades to its consent records and
// audit trail in one transaction.
func (s *CampaignService) DeleteCampaign(ctx context.Context, campaignID string) error {
	if err := utils.ValidateCampaignID(campaignID); err != nil {
		return apperrors.NewValidationError("campaignId", err.Error())
	}

	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		campaign, err := s.campaignDAO.GetByIDForUpdateWithTx(ctx, tx, campaignID)
		if err != nil {
			return err
		}
		if campaign == nil {
			return apperrors.NewCampaignNotFound(campaignID)
		}

		if err := s.ledgerDAO.DeleteByCampaignWithTx(ctx, tx, campaignID); err != nil {
			return err
		}
		if err := s.auditDAO.DeleteByCampaignWithTx(ctx, tx, campaignID); err != nil {
			return err
		}

		found, err := s.campaignDAO.DeleteWithTx(ctx, tx, campaignID)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.NewCampaignNotFound(campaignID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"campaign_id": campaignID,
	}).Info("Campaign deleted")

	return nil
}

func (s *CampaignService) validateCreateRequest(request *models.CampaignCreateRequest) error {
	if !models.IsValidKind(request.Kind) {
		return apperrors.NewValidationError("kind", fmt.Sprintf("must be one of %s, %s", models.CampaignKindVaccination, models.CampaignKindHealthCheck))
	}
	if err := utils.ValidateRequired("subject", request.Subject); err != nil {
		return apperrors.NewValidationError("subject", err.Error())
	}
	if err := utils.ValidateMaxLength("subject", request.Subject, 255); err != nil {
		return apperrors.NewValidationError("subject", err.Error())
	}
	if err := utils.ValidateRequired("location", request.Location); err != nil {
		return apperrors.NewValidationError("location", err.Error())
	}
	if err := utils.ValidateMaxLength("location", request.Location, 255); err != nil {
		return apperrors.NewValidationError("location", err.Error())
	}
	if request.TargetStudentCount < 0 {
		return apperrors.NewValidationError("targetStudentCount", "must not be negative")
	}
	return validateScheduledDate(request.ScheduledDate)
}

func (s *CampaignService) validateUpdateRequest(patch *models.CampaignUpdateRequest) error {
	if patch.Subject != nil {
		if err := utils.ValidateRequired("subject", *patch.Subject); err != nil {
			return apperrors.NewValidationError("subject", err.Error())
		}
	}
	if patch.Location != nil {
		if err := utils.ValidateRequired("location", *patch.Location); err != nil {
			return apperrors.NewValidationError("location", err.Error())
		}
	}
	if patch.TargetStudentCount != nil && *patch.TargetStudentCount < 0 {
		return apperrors.NewValidationError("targetStudentCount", "must not be negative")
	}
	if patch.ScheduledDate != nil {
		return validateScheduledDate(*patch.ScheduledDate)
	}
	return nil
}

// validateScheduledDate enforces the date-ordering rule: a campaign may not
// be scheduled in the past relative to today.
func validateScheduledDate(date string) error {
	if _, err := utils.ParseDate(date); err != nil {
		return apperrors.NewValidationError("scheduledDate", err.Error())
	}
	if utils.IsPastDate(date) {
		return apperrors.NewValidationError("scheduledDate", "must be today or in the future")
	}
	return nil
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
