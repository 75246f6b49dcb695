package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/schoolhealth/campaign-management-api/internal/database"
	"github.com/schoolhealth/campaign-management-api/internal/models"
)

// MockStatusAuditDAO is a mock implementation of StatusAuditDAOInterface
type MockStatusAuditDAO struct {
	mock.Mock
}

func (m *MockStatusAuditDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, audit *models.CampaignStatusAudit) error {
	args := m.Called(ctx, tx, audit)
	return args.Error(0)
}

func (m *MockStatusAuditDAO) ListByCampaign(ctx context.Context, campaignID string) ([]models.CampaignStatusAudit, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CampaignStatusAudit), args.Error(1)
}

func (m *MockStatusAuditDAO) DeleteByCampaignWithTx(ctx context.Context, tx *database.Transaction, campaignID string) error {
	args := m.Called(ctx, tx, campaignID)
	return args.Error(0)
}
