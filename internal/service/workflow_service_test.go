package service

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/schoolhealth/campaign-management-api/internal/apperrors"
	"github.com/schoolhealth/campaign-management-api/internal/config"
	"github.com/schoolhealth/campaign-management-api/internal/models"
	"github.com/schoolhealth/campaign-management-api/internal/service/mocks"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newWorkflowServiceForTest() (*WorkflowService, *mocks.MockCampaignDAO, *mocks.MockConsentLedgerDAO, *mocks.MockStatusAuditDAO) {
	campaignDAO := &mocks.MockCampaignDAO{}
	ledgerDAO := &mocks.MockConsentLedgerDAO{}
	auditDAO := &mocks.MockStatusAuditDAO{}
	svc := NewWorkflowService(
		campaignDAO,
		ledgerDAO,
		auditDAO,
		&mocks.StubTxManager{},
		newTestLogger(),
		config.WorkflowConfig{MinApprovalsToConfirm: 1},
	)
	return svc, campaignDAO, ledgerDAO, auditDAO
}

func draftCampaign(id string) *models.Campaign {
	return &models.Campaign{
		CampaignID:         id,
		Kind:               models.CampaignKindVaccination,
		Subject:            "MMR booster",
		ScheduledDate:      "2027-05-10",
		Location:           "Main gym",
		TargetStudentCount: 2,
		Status:             models.CampaignStatusDraft,
		CreatedTime:        1700000000000,
		UpdatedTime:        1700000000000,
	}
}

func TestSendConsents_FromDraft(t *testing.T) {
	svc, campaignDAO, ledgerDAO, auditDAO := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)
	ledgerDAO.On("CountByCampaignWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(0, nil)
	ledgerDAO.On("BulkInsertWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(records []models.ConsentRecord) bool {
		if len(records) != 2 {
			return false
		}
		for _, r := range records {
			if r.Response != models.ConsentResponsePending || r.SentTime != nil || r.ConsentID == "" {
				return false
			}
		}
		return true
	})).Return(nil)
	ledgerDAO.On("MarkSentWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1", mock.AnythingOfType("int64")).Return(nil)
	campaignDAO.On("UpdateWithTx", mock.Anything, mock.Anything, campaign).Return(nil)
	auditDAO.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.SendConsents(context.Background(), "CAMPAIGN-1", []string{"S1", "S2"}, "nurse-1")

	assert.NoError(t, err)
	assert.Equal(t, models.CampaignStatusConsentsSent, updated.Status)
	assert.True(t, updated.ConsentsSent)
	ledgerDAO.AssertExpectations(t)
	campaignDAO.AssertExpectations(t)
	auditDAO.AssertExpectations(t)
}

func TestSendConsents_EmptyRecipients(t *testing.T) {
	svc, campaignDAO, _, _ := newWorkflowServiceForTest()

	updated, err := svc.SendConsents(context.Background(), "CAMPAIGN-1", nil, "")

	assert.Nil(t, updated)
	assert.True(t, apperrors.IsValidation(err))
	campaignDAO.AssertNotCalled(t, "GetByIDForUpdateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendConsents_DuplicateRecipients(t *testing.T) {
	svc, _, _, _ := newWorkflowServiceForTest()

	_, err := svc.SendConsents(context.Background(), "CAMPAIGN-1", []string{"S1", "S1"}, "")

	assert.True(t, apperrors.IsValidation(err))
}

func TestSendConsents_SecondCallAlreadyInitialized(t *testing.T) {
	svc, campaignDAO, ledgerDAO, _ := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")
	campaign.Status = models.CampaignStatusConsentsSent
	campaign.ConsentsSent = true

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)
	ledgerDAO.On("CountByCampaignWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(2, nil)

	updated, err := svc.SendConsents(context.Background(), "CAMPAIGN-1", []string{"S3"}, "")

	assert.Nil(t, updated)
	assert.True(t, apperrors.IsAlreadyInitialized(err))
	// The failed second call must leave the ledger exactly as the first left it.
	ledgerDAO.AssertNotCalled(t, "BulkInsertWithTx", mock.Anything, mock.Anything, mock.Anything)
	ledgerDAO.AssertNotCalled(t, "MarkSentWithTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	campaignDAO.AssertNotCalled(t, "UpdateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendConsents_UnknownCampaign(t *testing.T) {
	svc, campaignDAO, _, _ := newWorkflowServiceForTest()

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-missing").Return(nil, nil)

	_, err := svc.SendConsents(context.Background(), "CAMPAIGN-missing", []string{"S1"}, "")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestRecordConsentResponse_Approved(t *testing.T) {
	svc, campaignDAO, ledgerDAO, _ := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")
	campaign.Status = models.CampaignStatusConsentsSent
	sentTime := int64(1700000001000)
	record := &models.ConsentRecord{
		ConsentID:   "CONSENT-1",
		CampaignID:  "CAMPAIGN-1",
		RecipientID: "S1",
		SentTime:    &sentTime,
		Response:    models.ConsentResponsePending,
	}

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)
	ledgerDAO.On("GetByRecipientWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1", "S1").Return(record, nil)
	ledgerDAO.On("UpdateResponseWithTx", mock.Anything, mock.Anything, "CONSENT-1", models.ConsentResponseApproved, mock.AnythingOfType("int64")).Return(nil)
	campaignDAO.On("UpdateWithTx", mock.Anything, mock.Anything, campaign).Return(nil)

	updated, err := svc.RecordConsentResponse(context.Background(), "CAMPAIGN-1", "S1", models.ConsentResponseApproved)

	assert.NoError(t, err)
	assert.Equal(t, models.CampaignStatusConsentsSent, updated.Status)
	ledgerDAO.AssertExpectations(t)
}

func TestRecordConsentResponse_AllowedAfterConfirm(t *testing.T) {
	svc, campaignDAO, ledgerDAO, _ := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")
	campaign.Status = models.CampaignStatusConfirmed
	sentTime := int64(1700000001000)
	record := &models.ConsentRecord{
		ConsentID:   "CONSENT-2",
		CampaignID:  "CAMPAIGN-1",
		RecipientID: "S2",
		SentTime:    &sentTime,
		Response:    models.ConsentResponseDeclined,
	}

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)
	ledgerDAO.On("GetByRecipientWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1", "S2").Return(record, nil)
	ledgerDAO.On("UpdateResponseWithTx", mock.Anything, mock.Anything, "CONSENT-2", models.ConsentResponseApproved, mock.AnythingOfType("int64")).Return(nil)
	campaignDAO.On("UpdateWithTx", mock.Anything, mock.Anything, campaign).Return(nil)

	// Re-recording an existing response is allowed and overwrites it.
	_, err := svc.RecordConsentResponse(context.Background(), "CAMPAIGN-1", "S2", models.ConsentResponseApproved)

	assert.NoError(t, err)
	ledgerDAO.AssertExpectations(t)
}

func TestRecordConsentResponse_BeforeSendConsents(t *testing.T) {
	svc, campaignDAO, ledgerDAO, _ := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)

	_, err := svc.RecordConsentResponse(context.Background(), "CAMPAIGN-1", "S1", models.ConsentResponseApproved)

	assert.True(t, apperrors.IsNotSentYet(err))
	ledgerDAO.AssertNotCalled(t, "UpdateResponseWithTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordConsentResponse_RecordNotSentYet(t *testing.T) {
	svc, campaignDAO, ledgerDAO, _ := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")
	campaign.Status = models.CampaignStatusConsentsSent
	record := &models.ConsentRecord{
		ConsentID:   "CONSENT-3",
		CampaignID:  "CAMPAIGN-1",
		RecipientID: "S3",
		Response:    models.ConsentResponsePending,
	}

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)
	ledgerDAO.On("GetByRecipientWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1", "S3").Return(record, nil)

	_, err := svc.RecordConsentResponse(context.Background(), "CAMPAIGN-1", "S3", models.ConsentResponseDeclined)

	assert.True(t, apperrors.IsNotSentYet(err))
}

func TestRecordConsentResponse_UnknownRecipient(t *testing.T) {
	svc, campaignDAO, ledgerDAO, _ := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")
	campaign.Status = models.CampaignStatusConsentsSent

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)
	ledgerDAO.On("GetByRecipientWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1", "ghost").Return(nil, nil)

	_, err := svc.RecordConsentResponse(context.Background(), "CAMPAIGN-1", "ghost", models.ConsentResponseApproved)

	assert.True(t, apperrors.IsNotFound(err))
}

func TestRecordConsentResponse_RejectedAfterCancel(t *testing.T) {
	svc, campaignDAO, _, _ := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")
	campaign.Status = models.CampaignStatusCancelled

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)

	_, err := svc.RecordConsentResponse(context.Background(), "CAMPAIGN-1", "S1", models.ConsentResponseApproved)

	assert.True(t, apperrors.IsInvalidTransition(err))
}

func TestConfirmSchedule_ZeroApprovals(t *testing.T) {
	svc, campaignDAO, ledgerDAO, _ := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")
	campaign.Status = models.CampaignStatusConsentsSent

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)
	ledgerDAO.On("CountsWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(&models.ConsentCounts{Sent: 2, Pending: 2}, nil)

	updated, err := svc.ConfirmSchedule(context.Background(), "CAMPAIGN-1", "")

	assert.Nil(t, updated)
	assert.True(t, apperrors.IsInvalidTransition(err))
	campaignDAO.AssertNotCalled(t, "UpdateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmSchedule_WithApproval(t *testing.T) {
	svc, campaignDAO, ledgerDAO, auditDAO := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")
	campaign.Status = models.CampaignStatusConsentsSent

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)
	ledgerDAO.On("CountsWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(&models.ConsentCounts{Sent: 2, Approved: 1, Pending: 1}, nil)
	campaignDAO.On("UpdateWithTx", mock.Anything, mock.Anything, campaign).Return(nil)
	auditDAO.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.ConfirmSchedule(context.Background(), "CAMPAIGN-1", "nurse-1")

	assert.NoError(t, err)
	assert.Equal(t, models.CampaignStatusConfirmed, updated.Status)
}

func TestConfirmSchedule_FromDraft(t *testing.T) {
	svc, campaignDAO, _, _ := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-2")

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-2").Return(campaign, nil)

	_, err := svc.ConfirmSchedule(context.Background(), "CAMPAIGN-2", "")

	assert.True(t, apperrors.IsInvalidTransition(err))
	var transitionErr *apperrors.InvalidTransitionError
	assert.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, models.CampaignStatusDraft, transitionErr.Current)
	assert.Equal(t, models.CampaignStatusConfirmed, transitionErr.Attempted)
}

func TestConfirmSchedule_Twice(t *testing.T) {
	svc, campaignDAO, _, _ := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")
	campaign.Status = models.CampaignStatusConfirmed

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)

	_, err := svc.ConfirmSchedule(context.Background(), "CAMPAIGN-1", "")

	assert.True(t, apperrors.IsInvalidTransition(err))
}

func TestConfirmSchedule_ConfigurableThreshold(t *testing.T) {
	campaignDAO := &mocks.MockCampaignDAO{}
	ledgerDAO := &mocks.MockConsentLedgerDAO{}
	auditDAO := &mocks.MockStatusAuditDAO{}
	svc := NewWorkflowService(
		campaignDAO, ledgerDAO, auditDAO,
		&mocks.StubTxManager{}, newTestLogger(),
		config.WorkflowConfig{MinApprovalsToConfirm: 3},
	)
	campaign := draftCampaign("CAMPAIGN-1")
	campaign.Status = models.CampaignStatusConsentsSent

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)
	ledgerDAO.On("CountsWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(&models.ConsentCounts{Sent: 5, Approved: 2, Pending: 3}, nil)

	_, err := svc.ConfirmSchedule(context.Background(), "CAMPAIGN-1", "")

	assert.True(t, apperrors.IsInvalidTransition(err))
}

func TestCompleteCampaign_FromConfirmed(t *testing.T) {
	svc, campaignDAO, _, auditDAO := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")
	campaign.Status = models.CampaignStatusConfirmed

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)
	campaignDAO.On("UpdateWithTx", mock.Anything, mock.Anything, campaign).Return(nil)
	auditDAO.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.CompleteCampaign(context.Background(), "CAMPAIGN-1", 42, "nurse-1")

	assert.NoError(t, err)
	assert.Equal(t, models.CampaignStatusCompleted, updated.Status)
	if assert.NotNil(t, updated.ActualStudentCount) {
		assert.Equal(t, 42, *updated.ActualStudentCount)
	}
}

func TestCompleteCampaign_NegativeCount(t *testing.T) {
	svc, campaignDAO, _, _ := newWorkflowServiceForTest()

	_, err := svc.CompleteCampaign(context.Background(), "CAMPAIGN-1", -1, "")

	assert.True(t, apperrors.IsValidation(err))
	campaignDAO.AssertNotCalled(t, "GetByIDForUpdateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteCampaign_BeforeConfirm(t *testing.T) {
	svc, campaignDAO, _, _ := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")
	campaign.Status = models.CampaignStatusConsentsSent

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)

	_, err := svc.CompleteCampaign(context.Background(), "CAMPAIGN-1", 10, "")

	assert.True(t, apperrors.IsInvalidTransition(err))
}

func TestCancelCampaign_FromEachNonTerminalState(t *testing.T) {
	for _, status := range []string{
		models.CampaignStatusDraft,
		models.CampaignStatusConsentsSent,
		models.CampaignStatusConfirmed,
	} {
		t.Run(status, func(t *testing.T) {
			svc, campaignDAO, _, auditDAO := newWorkflowServiceForTest()
			campaign := draftCampaign("CAMPAIGN-1")
			campaign.Status = status

			campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)
			campaignDAO.On("UpdateWithTx", mock.Anything, mock.Anything, campaign).Return(nil)
			auditDAO.On("CreateWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(audit *models.CampaignStatusAudit) bool {
				return audit.Reason != nil && *audit.Reason == "budget cut" &&
					audit.PreviousStatus != nil && *audit.PreviousStatus == status
			})).Return(nil)

			updated, err := svc.CancelCampaign(context.Background(), "CAMPAIGN-1", "budget cut", "admin-1")

			assert.NoError(t, err)
			assert.Equal(t, models.CampaignStatusCancelled, updated.Status)
			auditDAO.AssertExpectations(t)
		})
	}
}

func TestCancelCampaign_Terminal(t *testing.T) {
	svc, campaignDAO, _, _ := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")
	campaign.Status = models.CampaignStatusCompleted

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)

	_, err := svc.CancelCampaign(context.Background(), "CAMPAIGN-1", "late", "")

	assert.True(t, apperrors.IsInvalidTransition(err))
}

func TestSendConsents_AuditFailureAborts(t *testing.T) {
	svc, campaignDAO, ledgerDAO, auditDAO := newWorkflowServiceForTest()
	campaign := draftCampaign("CAMPAIGN-1")

	campaignDAO.On("GetByIDForUpdateWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(campaign, nil)
	ledgerDAO.On("CountByCampaignWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1").Return(0, nil)
	ledgerDAO.On("BulkInsertWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ledgerDAO.On("MarkSentWithTx", mock.Anything, mock.Anything, "CAMPAIGN-1", mock.AnythingOfType("int64")).Return(nil)
	campaignDAO.On("UpdateWithTx", mock.Anything, mock.Anything, campaign).Return(nil)
	auditDAO.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	updated, err := svc.SendConsents(context.Background(), "CAMPAIGN-1", []string{"S1"}, "")

	assert.Error(t, err)
	assert.Nil(t, updated)
}
