package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/schoolhealth/campaign-management-api/internal/apperrors"
	"github.com/schoolhealth/campaign-management-api/internal/models"
	"github.com/schoolhealth/campaign-management-api/internal/service/mocks"
)

func newQueryServiceForTest() (*QueryService, *mocks.MockCampaignDAO, *mocks.MockConsentLedgerDAO, *mocks.MockStatusAuditDAO) {
	campaignDAO := &mocks.MockCampaignDAO{}
	ledgerDAO := &mocks.MockConsentLedgerDAO{}
	auditDAO := &mocks.MockStatusAuditDAO{}
	svc := NewQueryService(campaignDAO, ledgerDAO, auditDAO, newTestLogger())
	return svc, campaignDAO, ledgerDAO, auditDAO
}

func TestDashboardSummary_Composition(t *testing.T) {
	svc, campaignDAO, ledgerDAO, _ := newQueryServiceForTest()

	campaignDAO.On("CountByStatus", mock.Anything).Return(map[string]int{
		models.CampaignStatusDraft:        2,
		models.CampaignStatusConsentsSent: 3,
		models.CampaignStatusConfirmed:    1,
		models.CampaignStatusCompleted:    4,
		models.CampaignStatusCancelled:    1,
	}, nil)
	ledgerDAO.On("PendingTotal", mock.Anything, models.NonTerminalStatuses()).Return(7, nil)

	summary, err := svc.DashboardSummary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 11, summary.TotalCampaigns)
	assert.Equal(t, 7, summary.PendingConsentsAcrossAll)
	assert.Equal(t, 4, summary.CompletedCount)
	// Drafts and terminal campaigns do not count as active.
	assert.Equal(t, 4, summary.ActiveCount)
}

func TestDashboardSummary_Empty(t *testing.T) {
	svc, campaignDAO, ledgerDAO, _ := newQueryServiceForTest()

	campaignDAO.On("CountByStatus", mock.Anything).Return(map[string]int{}, nil)
	ledgerDAO.On("PendingTotal", mock.Anything, mock.Anything).Return(0, nil)

	summary, err := svc.DashboardSummary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, summary.TotalCampaigns)
	assert.Equal(t, 0, summary.PendingConsentsAcrossAll)
	assert.Equal(t, 0, summary.CompletedCount)
	assert.Equal(t, 0, summary.ActiveCount)
}

func TestUpcoming_InvalidKind(t *testing.T) {
	svc, campaignDAO, _, _ := newQueryServiceForTest()

	_, err := svc.Upcoming(context.Background(), "FIELD_TRIP", 10)

	assert.True(t, apperrors.IsValidation(err))
	campaignDAO.AssertNotCalled(t, "ListUpcoming", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpcoming_ClampsLimit(t *testing.T) {
	svc, campaignDAO, _, _ := newQueryServiceForTest()

	campaignDAO.On("ListUpcoming", mock.Anything, models.CampaignKindVaccination, mock.Anything, 100).
		Return([]models.Campaign{}, nil)

	_, err := svc.Upcoming(context.Background(), models.CampaignKindVaccination, 9999)

	assert.NoError(t, err)
	campaignDAO.AssertExpectations(t)
}

func TestConsentCounts_UnknownCampaign(t *testing.T) {
	svc, campaignDAO, ledgerDAO, _ := newQueryServiceForTest()

	campaignDAO.On("GetByID", mock.Anything, "CAMPAIGN-missing").Return(nil, nil)

	_, err := svc.ConsentCounts(context.Background(), "CAMPAIGN-missing")

	assert.True(t, apperrors.IsNotFound(err))
	ledgerDAO.AssertNotCalled(t, "Counts", mock.Anything, mock.Anything)
}

func TestConsentCounts_KnownCampaign(t *testing.T) {
	svc, campaignDAO, ledgerDAO, _ := newQueryServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")

	campaignDAO.On("GetByID", mock.Anything, "CAMPAIGN-1").Return(campaign, nil)
	ledgerDAO.On("Counts", mock.Anything, "CAMPAIGN-1").Return(&models.ConsentCounts{
		Sent: 10, Approved: 6, Declined: 1, Pending: 3,
	}, nil)

	counts, err := svc.ConsentCounts(context.Background(), "CAMPAIGN-1")

	assert.NoError(t, err)
	assert.Equal(t, 10, counts.Sent)
	assert.Equal(t, counts.Sent, counts.Approved+counts.Declined+counts.Pending)
}

func TestAuditTrail_UnknownCampaign(t *testing.T) {
	svc, campaignDAO, _, auditDAO := newQueryServiceForTest()

	campaignDAO.On("GetByID", mock.Anything, "CAMPAIGN-missing").Return(nil, nil)

	_, err := svc.AuditTrail(context.Background(), "CAMPAIGN-missing")

	assert.True(t, apperrors.IsNotFound(err))
	auditDAO.AssertNotCalled(t, "ListByCampaign", mock.Anything, mock.Anything)
}
