package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/schoolhealth/campaign-management-api/internal/database"
	"github.com/schoolhealth/campaign-management-api/internal/models"
)

// MockCampaignDAO is a mock implementation of CampaignDAOInterface
type MockCampaignDAO struct {
	mock.Mock
}

func (m *MockCampaignDAO) Create(ctx context.Context, campaign *models.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, campaign *models.Campaign) error {
	args := m.Called(ctx, tx, campaign)
	return args.Error(0)
}

func (m *MockCampaignDAO) GetByID(ctx context.Context, campaignID string) (*models.Campaign, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Campaign), args.Error(1)
}

func (m *MockCampaignDAO) GetByIDForUpdateWithTx(ctx context.Context, tx *database.Transaction, campaignID string) (*models.Campaign, error) {
	args := m.Called(ctx, tx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Campaign), args.Error(1)
}

func (m *MockCampaignDAO) UpdateWithTx(ctx context.Context, tx *database.Transaction, campaign *models.Campaign) error {
	args := m.Called(ctx, tx, campaign)
	return args.Error(0)
}

func (m *MockCampaignDAO) List(ctx context.Context, filter *models.CampaignFilter) ([]models.Campaign, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Campaign), args.Int(1), args.Error(2)
}

func (m *MockCampaignDAO) ListUpcoming(ctx context.Context, kind, fromDate string, limit int) ([]models.Campaign, error) {
	args := m.Called(ctx, kind, fromDate, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Campaign), args.Error(1)
}

func (m *MockCampaignDAO) DeleteWithTx(ctx context.Context, tx *database.Transaction, campaignID string) (bool, error) {
	args := m.Called(ctx, tx, campaignID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCampaignDAO) CountByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}
