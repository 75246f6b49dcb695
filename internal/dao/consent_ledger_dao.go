package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/schoolhealth/campaign-management-api/internal/database"
	"github.com/schoolhealth/campaign-management-api/internal/models"
)

// ConsentLedgerDAO handles database operations for per-recipient consent
// records. The ledger owns the records; campaigns reference them only by ID.
type ConsentLedgerDAO struct {
	db *database.DB
}

// NewConsentLedgerDAO creates a new ConsentLedgerDAO instance
func NewConsentLedgerDAO(db *database.DB) *ConsentLedgerDAO {
	return &ConsentLedgerDAO{db: db}
}

// CountByCampaignWithTx returns the number of consent records for a campaign
func (dao *ConsentLedgerDAO) CountByCampaignWithTx(ctx context.Context, tx *database.Transaction, campaignID string) (int, error) {
	query := `SELECT COUNT(*) FROM CM_CONSENT_RECORD WHERE CAMPAIGN_ID = ?`

	var count int
	if err := tx.GetContext(ctx, &count, query, campaignID); err != nil {
		return 0, fmt.Errorf("failed to count consent records: %w", err)
	}

	return count, nil
}

// BulkInsertWithTx inserts one consent record per recipient
func (dao *ConsentLedgerDAO) BulkInsertWithTx(ctx context.Context, tx *database.Transaction, records []models.ConsentRecord) error {
	query := `
		INSERT INTO CM_CONSENT_RECORD (
			CONSENT_ID, CAMPAIGN_ID, RECIPIENT_ID, SENT_TIME, RESPONSE, RESPONDED_TIME
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	for i := range records {
		record := &records[i]
		_, err := tx.ExecContext(
			ctx,
			query,
			record.ConsentID,
			record.CampaignID,
			record.RecipientID,
			record.SentTime,
			record.Response,
			record.RespondedTime,
		)
		if err != nil {
			return fmt.Errorf("failed to insert consent record for recipient %s: %w", record.RecipientID, err)
		}
	}

	return nil
}

// MarkSentWithTx stamps the sent time on every record of the campaign that
// is still pending and unsent. Already-sent records are left untouched.
func (dao *ConsentLedgerDAO) MarkSentWithTx(ctx context.Context, tx *database.Transaction, campaignID string, sentTime int64) error {
	query := `
		UPDATE CM_CONSENT_RECORD
		SET SENT_TIME = ?
		WHERE CAMPAIGN_ID = ? AND SENT_TIME IS NULL AND RESPONSE = ?
	`

	_, err := tx.ExecContext(ctx, query, sentTime, campaignID, models.ConsentResponsePending)
	if err != nil {
		return fmt.Errorf("failed to mark consent records sent: %w", err)
	}

	return nil
}

// GetByRecipientWithTx retrieves the consent record for a (campaign, recipient)
// pair inside a transaction. Returns (nil, nil) when no record exists.
func (dao *ConsentLedgerDAO) GetByRecipientWithTx(ctx context.Context, tx *database.Transaction, campaignID, recipientID string) (*models.ConsentRecord, error) {
	query := `
		SELECT CONSENT_ID, CAMPAIGN_ID, RECIPIENT_ID, SENT_TIME, RESPONSE, RESPONDED_TIME
		FROM CM_CONSENT_RECORD
		WHERE CAMPAIGN_ID = ? AND RECIPIENT_ID = ?
	`

	var record models.ConsentRecord
	err := tx.GetContext(ctx, &record, query, campaignID, recipientID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get consent record: %w", err)
	}

	return &record, nil
}

// UpdateResponseWithTx records a recipient's response. Re-recording is
// allowed and overwrites the responded time.
func (dao *ConsentLedgerDAO) UpdateResponseWithTx(ctx context.Context, tx *database.Transaction, consentID, response string, respondedTime int64) error {
	query := `
		UPDATE CM_CONSENT_RECORD
		SET RESPONSE = ?, RESPONDED_TIME = ?
		WHERE CONSENT_ID = ?
	`

	_, err := tx.ExecContext(ctx, query, response, respondedTime, consentID)
	if err != nil {
		return fmt.Errorf("failed to update consent response: %w", err)
	}

	return nil
}

const countsQuery = `
	SELECT
		COALESCE(SUM(CASE WHEN SENT_TIME IS NOT NULL THEN 1 ELSE 0 END), 0) AS SENT,
		COALESCE(SUM(CASE WHEN RESPONSE = 'APPROVED' THEN 1 ELSE 0 END), 0) AS APPROVED,
		COALESCE(SUM(CASE WHEN RESPONSE = 'DECLINED' THEN 1 ELSE 0 END), 0) AS DECLINED,
		COALESCE(SUM(CASE WHEN RESPONSE = 'PENDING' THEN 1 ELSE 0 END), 0) AS PENDING
	FROM CM_CONSENT_RECORD
	WHERE CAMPAIGN_ID = ?
`

// Counts aggregates the ledger for a campaign. Pure read, no mutation.
func (dao *ConsentLedgerDAO) Counts(ctx context.Context, campaignID string) (*models.ConsentCounts, error) {
	var counts models.ConsentCounts
	if err := dao.db.GetContext(ctx, &counts, countsQuery, campaignID); err != nil {
		return nil, fmt.Errorf("failed to aggregate consent counts: %w", err)
	}
	return &counts, nil
}

// CountsWithTx aggregates the ledger inside a transaction, so transition
// guards evaluate against the same snapshot they commit with.
func (dao *ConsentLedgerDAO) CountsWithTx(ctx context.Context, tx *database.Transaction, campaignID string) (*models.ConsentCounts, error) {
	var counts models.ConsentCounts
	if err := tx.GetContext(ctx, &counts, countsQuery, campaignID); err != nil {
		return nil, fmt.Errorf("failed to aggregate consent counts: %w", err)
	}
	return &counts, nil
}

// ListByCampaign retrieves all consent records for a campaign
func (dao *ConsentLedgerDAO) ListByCampaign(ctx context.Context, campaignID string) ([]models.ConsentRecord, error) {
	query := `
		SELECT CONSENT_ID, CAMPAIGN_ID, RECIPIENT_ID, SENT_TIME, RESPONSE, RESPONDED_TIME
		FROM CM_CONSENT_RECORD
		WHERE CAMPAIGN_ID = ?
		ORDER BY RECIPIENT_ID ASC
	`

	records := []models.ConsentRecord{}
	if err := dao.db.SelectContext(ctx, &records, query, campaignID); err != nil {
		return nil, fmt.Errorf("failed to list consent records: %w", err)
	}

	return records, nil
}

// DeleteByCampaignWithTx removes all consent records of a campaign
func (dao *ConsentLedgerDAO) DeleteByCampaignWithTx(ctx context.Context, tx *database.Transaction, campaignID string) error {
	query := `DELETE FROM CM_CONSENT_RECORD WHERE CAMPAIGN_ID = ?`

	if _, err := tx.ExecContext(ctx, query, campaignID); err != nil {
		return fmt.Errorf("failed to delete consent records: %w", err)
	}

	return nil
}

// PendingTotal returns the number of pending consent records across all
// campaigns whose status is in the given set.
func (dao *ConsentLedgerDAO) PendingTotal(ctx context.Context, statuses []string) (int, error) {
	query, args, err := sqlx.In(`
		SELECT COUNT(*)
		FROM CM_CONSENT_RECORD r
		INNER JOIN CM_CAMPAIGN c ON c.CAMPAIGN_ID = r.CAMPAIGN_ID
		WHERE r.RESPONSE = ? AND c.STATUS IN (?)
	`, models.ConsentResponsePending, statuses)
	if err != nil {
		return 0, fmt.Errorf("failed to build pending total query: %w", err)
	}

	var total int
	if err := dao.db.GetContext(ctx, &total, dao.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to aggregate pending consents: %w", err)
	}

	return total, nil
}
