package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/schoolhealth/campaign-management-api/internal/database"
	"github.com/schoolhealth/campaign-management-api/internal/models"
)

// MockConsentLedgerDAO is a mock implementation of ConsentLedgerDAOInterface
type MockConsentLedgerDAO struct {
	mock.Mock
}

func (m *MockConsentLedgerDAO) CountByCampaignWithTx(ctx context.Context, tx *database.Transaction, campaignID string) (int, error) {
	args := m.Called(ctx, tx, campaignID)
	return args.Int(0), args.Error(1)
}

func (m *MockConsentLedgerDAO) BulkInsertWithTx(ctx context.Context, tx *database.Transaction, records []models.ConsentRecord) error {
	args := m.Called(ctx, tx, records)
	return args.Error(0)
}

func (m *MockConsentLedgerDAO) MarkSentWithTx(ctx context.Context, tx *database.Transaction, campaignID string, sentTime int64) error {
	args := m.Called(ctx, tx, campaignID, sentTime)
	return args.Error(0)
}

func (m *MockConsentLedgerDAO) GetByRecipientWithTx(ctx context.Context, tx *database.Transaction, campaignID, recipientID string) (*models.ConsentRecord, error) {
	args := m.Called(ctx, tx, campaignID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsentRecord), args.Error(1)
}

func (m *MockConsentLedgerDAO) UpdateResponseWithTx(ctx context.Context, tx *database.Transaction, consentID, response string, respondedTime int64) error {
	args := m.Called(ctx, tx, consentID, response, respondedTime)
	return args.Error(0)
}

func (m *MockConsentLedgerDAO) Counts(ctx context.Context, campaignID string) (*models.ConsentCounts, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsentCounts), args.Error(1)
}

func (m *MockConsentLedgerDAO) CountsWithTx(ctx context.Context, tx *database.Transaction, campaignID string) (*models.ConsentCounts, error) {
	args := m.Called(ctx, tx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsentCounts), args.Error(1)
}

func (m *MockConsentLedgerDAO) ListByCampaign(ctx context.Context, campaignID string) ([]models.ConsentRecord, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConsentRecord), args.Error(1)
}

func (m *MockConsentLedgerDAO) DeleteByCampaignWithTx(ctx context.Context, tx *database.Transaction, campaignID string) error {
	args := m.Called(ctx, tx, campaignID)
	return args.Error(0)
}

func (m *MockConsentLedgerDAO) PendingTotal(ctx context.Context, statuses []string) (int, error) {
	args := m.Called(ctx, statuses)
	return args.Int(0), args.Error(1)
}
