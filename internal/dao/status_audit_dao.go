package dao

import (
	"context"
	"fmt"

	"github.com/schoolhealth/campaign-management-api/internal/database"
	"github.com/schoolhealth/campaign-management-api/internal/models"
)

// StatusAuditDAO handles database operations for campaign status audit
type StatusAuditDAO struct {
	db *database.DB
}

// NewStatusAuditDAO creates a new StatusAuditDAO instance
func NewStatusAuditDAO(db *database.DB) *StatusAuditDAO {
	return &StatusAuditDAO{db: db}
}

// CreateWithTx inserts a new status audit record using a transaction
func (dao *StatusAuditDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, audit *models.CampaignStatusAudit) error {
	query := `
		INSERT INTO CM_CAMPAIGN_STATUS_AUDIT (
			AUDIT_ID, CAMPAIGN_ID, CURRENT_STATUS, PREVIOUS_STATUS,
			ACTION_TIME, ACTION_BY, REASON
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		audit.AuditID,
		audit.CampaignID,
		audit.CurrentStatus,
		audit.PreviousStatus,
		audit.ActionTime,
		audit.ActionBy,
		audit.Reason,
	)

	if err != nil {
		return fmt.Errorf("failed to create status audit: %w", err)
	}

	return nil
}

// ListByCampaign retrieves the audit trail of a campaign, newest first
func (dao *StatusAuditDAO) ListByCampaign(ctx context.Context, campaignID string) ([]models.CampaignStatusAudit, error) {
	query := `
		SELECT AUDIT_ID, CAMPAIGN_ID, CURRENT_STATUS, PREVIOUS_STATUS,
		       ACTION_TIME, ACTION_BY, REASON
		FROM CM_CAMPAIGN_STATUS_AUDIT
		WHERE CAMPAIGN_ID = ?
		ORDER BY ACTION_TIME DESC, AUDIT_ID DESC
	`

	audits := []models.CampaignStatusAudit{}
	if err := dao.db.SelectContext(ctx, &audits, query, campaignID); err != nil {
		return nil, fmt.Errorf("failed to list status audits: %w", err)
	}

	return audits, nil
}

// DeleteByCampaignWithTx removes all audit rows of a campaign
func (dao *StatusAuditDAO) DeleteByCampaignWithTx(ctx context.Context, tx *database.Transaction, campaignID string) error {
	query := `DELETE FROM CM_CAMPAIGN_STATUS_AUDIT WHERE CAMPAIGN_ID = ?`

	if _, err := tx.ExecContext(ctx, query, campaignID); err != nil {
		return fmt.Errorf("failed to delete status audits: %w", err)
	}

	return nil
}
