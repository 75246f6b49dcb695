package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/schoolhealth/campaign-management-api/internal/apperrors"
	"github.com/schoolhealth/campaign-management-api/internal/models"
	"github.com/schoolhealth/campaign-management-api/pkg/utils"
)

// QueryService answers read-side aggregate questions for dashboards. It is a
// pure projection over the campaign store and consent ledger: every call
// recomputes from the database, nothing is cached, nothing is mutated.
type QueryService struct {
	campaignDAO CampaignDAOInterface
	ledgerDAO   ConsentLedgerDAOInterface
	auditDAO    StatusAuditDAOInterface
	logger      *logrus.Logger
}

// NewQueryService creates a new query service instance
func NewQueryService(
	campaignDAO CampaignDAOInterface,
	ledgerDAO ConsentLedgerDAOInterface,
	auditDAO StatusAuditDAOInterface,
	logger *logrus.Logger,
) *QueryService {
	return &QueryService{
		campaignDAO: campaignDAO,
		ledgerDAO:   ledgerDAO,
		auditDAO:    auditDAO,
		logger:      logger,
	}
}

// DashboardSummary computes the aggregate dashboard figures. Pending consents
// are summed over campaigns that are still non-terminal, so the figure always
// equals the sum of per-campaign ledger counts at read time.
func (s *QueryService) DashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	statusCounts, err := s.campaignDAO.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.ledgerDAO.PendingTotal(ctx, models.NonTerminalStatuses())
	if err != nil {
		return nil, err
	}

	total := 0
	for _, count := range statusCounts {
		total += count
	}

	active := 0
	for _, status := range models.ActiveStatuses() {
		active += statusCounts[status]
	}

	return &models.DashboardSummary{
		TotalCampaigns:           total,
		PendingConsentsAcrossAll: pending,
		CompletedCount:           statusCounts[models.CampaignStatusCompleted],
		ActiveCount:              active,
	}, nil
}

// Upcoming lists active campaigns scheduled today or later, soonest first
func (s *QueryService) Upcoming(ctx context.Context, kind string, limit int) ([]models.Campaign, error) {
	if kind != "" && !models.IsValidKind(kind) {
		return nil, apperrors.NewValidationError("kind", fmt.Sprintf("unknown campaign kind: %s", kind))
	}
	limit = utils.ValidateLimit(limit)

	return s.campaignDAO.ListUpcoming(ctx, kind, utils.TodayDate(), limit)
}

// ConsentCounts aggregates the consent ledger for one campaign
func (s *QueryService) ConsentCounts(ctx context.Context, campaignID string) (*models.ConsentCounts, error) {
	if err := s.ensureCampaignExists(ctx, campaignID); err != nil {
		return nil, err
	}
	return s.ledgerDAO.Counts(ctx, campaignID)
}

// ConsentRecords lists the consent ledger entries of one campaign
func (s *QueryService) ConsentRecords(ctx context.Context, campaignID string) ([]models.ConsentRecord, error) {
	if err := s.ensureCampaignExists(ctx, campaignID); err != nil {
		return nil, err
	}
	return s.ledgerDAO.ListByCampaign(ctx, campaignID)
}

// AuditTrail lists the status transition history of one campaign
func (s *QueryService) AuditTrail(ctx context.Context, campaignID string) ([]models.CampaignStatusAudit, error) {
	if err := s.ensureCampaignExists(ctx, campaignID); err != nil {
		return nil, err
	}
	return s.auditDAO.ListByCampaign(ctx, campaignID)
}

func (s *QueryService) ensureCampaignExists(ctx context.Context, campaignID string) error {
	if err := utils.ValidateCampaignID(campaignID); err != nil {
		return apperrors.NewValidationError("campaignId", err.Error())
	}
	campaign, err := s.campaignDAO.GetByID(ctx, campaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return apperrors.NewCampaignNotFound(campaignID)
	}
	return nil
}
