package service

import (
	"context"

	"github.com/schoolhealth/campaign-management-api/internal/database"
	"github.com/schoolhealth/campaign-management-api/internal/models"
)

// CampaignDAOInterface abstracts campaign persistence for the services
type CampaignDAOInterface interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	CreateWithTx(ctx context.Context, tx *database.Transaction, campaign *models.Campaign) error
	GetByID(ctx context.Context, campaignID string) (*models.Campaign, error)
	GetByIDForUpdateWithTx(ctx context.Context, tx *database.Transaction, campaignID string) (*models.Campaign, error)
	UpdateWithTx(ctx context.Context, tx *database.Transaction, campaign *models.Campaign) error
	List(ctx context.Context, filter *models.CampaignFilter) ([]models.Campaign, int, error)
	ListUpcoming(ctx context.Context, kind, fromDate string, limit int) ([]models.Campaign, error)
	DeleteWithTx(ctx context.Context, tx *database.Transaction, campaignID string) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// ConsentLedgerDAOInterface abstracts consent record persistence
type ConsentLedgerDAOInterface interface {
	CountByCampaignWithTx(ctx context.Context, tx *database.Transaction, campaignID string) (int, error)
	BulkInsertWithTx(ctx context.Context, tx *database.Transaction, records []models.ConsentRecord) error
	MarkSentWithTx(ctx context.Context, tx *database.Transaction, campaignID string, sentTime int64) error
	GetByRecipientWithTx(ctx context.Context, tx *database.Transaction, campaignID, recipientID string) (*models.ConsentRecord, error)
	UpdateResponseWithTx(ctx context.Context, tx *database.Transaction, consentID, response string, respondedTime int64) error
	Counts(ctx context.Context, campaignID string) (*models.ConsentCounts, error)
	CountsWithTx(ctx context.Context, tx *database.Transaction, campaignID string) (*models.ConsentCounts, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]models.ConsentRecord, error)
	DeleteByCampaignWithTx(ctx context.Context, tx *database.Transaction, campaignID string) error
	PendingTotal(ctx context.Context, statuses []string) (int, error)
}

// StatusAuditDAOInterface abstracts status audit persistence
type StatusAuditDAOInterface interface {
	CreateWithTx(ctx context.Context, tx *database.Transaction, audit *models.CampaignStatusAudit) error
	ListByCampaign(ctx context.Context, campaignID string) ([]models.CampaignStatusAudit, error)
	DeleteByCampaignWithTx(ctx context.Context, tx *database.Transaction, campaignID string) error
}

// TxManager runs a function inside a database transaction
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(*database.Transaction) error) error
}
