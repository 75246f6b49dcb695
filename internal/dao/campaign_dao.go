package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/schoolhealth/campaign-management-api/internal/database"
	"github.com/schoolhealth/campaign-management-api/internal/models"
)

// CampaignDAO handles database operations for campaigns
type CampaignDAO struct {
	db *database.DB
}

// NewCampaignDAO creates a new CampaignDAO instance
func NewCampaignDAO(db *database.DB) *CampaignDAO {
	return &CampaignDAO{db: db}
}

const campaignColumns = `CAMPAIGN_ID, KIND, SUBJECT, SCHEDULED_DATE, LOCATION,
	       TARGET_STUDENT_COUNT, STATUS, CONSENTS_SENT, ACTUAL_STUDENT_COUNT,
	       CREATED_TIME, UPDATED_TIME`

// Create inserts a new campaign into the database
func (dao *CampaignDAO) Create(ctx context.Context, campaign *models.Campaign) error {
	query := `
		INSERT INTO CM_CAMPAIGN (
			CAMPAIGN_ID, KIND, SUBJECT, SCHEDULED_DATE, LOCATION,
			TARGET_STUDENT_COUNT, STATUS, CONSENTS_SENT, ACTUAL_STUDENT_COUNT,
			CREATED_TIME, UPDATED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := dao.db.ExecContext(
		ctx,
		query,
		campaign.CampaignID,
		campaign.Kind,
		campaign.Subject,
		campaign.ScheduledDate,
		campaign.Location,
		campaign.TargetStudentCount,
		campaign.Status,
		campaign.ConsentsSent,
		campaign.ActualStudentCount,
		campaign.CreatedTime,
		campaign.UpdatedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

// CreateWithTx inserts a new campaign using a transaction
func (dao *CampaignDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, campaign *models.Campaign) error {
	query := `
		INSERT INTO CM_CAMPAIGN (
			CAMPAIGN_ID, KIND, SUBJECT, SCHEDULED_DATE, LOCATION,
			TARGET_STUDENT_COUNT, STATUS, CONSENTS_SENT, ACTUAL_STUDENT_COUNT,
			CREATED_TIME, UPDATED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		campaign.CampaignID,
		campaign.Kind,
		campaign.Subject,
		campaign.ScheduledDate,
		campaign.Location,
		campaign.TargetStudentCount,
		campaign.Status,
		campaign.ConsentsSent,
		campaign.ActualStudentCount,
		campaign.CreatedTime,
		campaign.UpdatedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create campaign with transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a campaign by ID. Returns (nil, nil) when no campaign exists.
func (dao *CampaignDAO) GetByID(ctx context.Context, campaignID string) (*models.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + `
		FROM CM_CAMPAIGN
		WHERE CAMPAIGN_ID = ?
	`

	var campaign models.Campaign
	err := dao.db.GetContext(ctx, &campaign, query, campaignID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &campaign, nil
}

// GetByIDForUpdateWithTx retrieves a campaign by ID inside a transaction,
// locking its row. The lock is the per-campaign unit of mutual exclusion:
// concurrent workflow commands against the same campaign serialize here.
func (dao *CampaignDAO) GetByIDForUpdateWithTx(ctx context.Context, tx *database.Transaction, campaignID string) (*models.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + `
		FROM CM_CAMPAIGN
		WHERE CAMPAIGN_ID = ?
		FOR UPDATE
	`

	var campaign models.Campaign
	err := tx.GetContext(ctx, &campaign, query, campaignID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get campaign for update: %w", err)
	}

	return &campaign, nil
}

// UpdateWithTx writes every mutable campaign field back to the database
func (dao *CampaignDAO) UpdateWithTx(ctx context.Context, tx *database.Transaction, campaign *models.Campaign) error {
	query := `
		UPDATE CM_CAMPAIGN
		SET SUBJECT = ?, SCHEDULED_DATE = ?, LOCATION = ?,
		    TARGET_STUDENT_COUNT = ?, STATUS = ?, CONSENTS_SENT = ?,
		    ACTUAL_STUDENT_COUNT = ?, UPDATED_TIME = ?
		WHERE CAMPAIGN_ID = ?
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		campaign.Subject,
		campaign.ScheduledDate,
		campaign.Location,
		campaign.TargetStudentCount,
		campaign.Status,
		campaign.ConsentsSent,
		campaign.ActualStudentCount,
		campaign.UpdatedTime,
		campaign.CampaignID,
	)

	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	return nil
}

// List retrieves campaigns matching the filter, ordered by scheduled date
// ascending with campaign ID as a stable tie-break, plus the total count.
func (dao *CampaignDAO) List(ctx context.Context, filter *models.CampaignFilter) ([]models.Campaign, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if filter.Kind != "" {
		where += " AND KIND = ?"
		args = append(args, filter.Kind)
	}
	if filter.Status != "" {
		where += " AND STATUS = ?"
		args = append(args, filter.Status)
	}

	countQuery := "SELECT COUNT(*) FROM CM_CAMPAIGN" + where

	var total int
	if err := dao.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	query := "SELECT " + campaignColumns + " FROM CM_CAMPAIGN" + where +
		" ORDER BY SCHEDULED_DATE ASC, CAMPAIGN_ID ASC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	campaigns := []models.Campaign{}
	if err := dao.db.SelectContext(ctx, &campaigns, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return campaigns, total, nil
}

// ListUpcoming retrieves active campaigns scheduled on or after fromDate,
// optionally filtered by kind, ordered by scheduled date ascending.
func (dao *CampaignDAO) ListUpcoming(ctx context.Context, kind, fromDate string, limit int) ([]models.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + `
		FROM CM_CAMPAIGN
		WHERE STATUS IN (?, ?, ?) AND SCHEDULED_DATE >= ?
	`
	args := []interface{}{
		models.CampaignStatusConsentsPending,
		models.CampaignStatusConsentsSent,
		models.CampaignStatusConfirmed,
		fromDate,
	}

	if kind != "" {
		query += " AND KIND = ?"
		args = append(args, kind)
	}

	query += " ORDER BY SCHEDULED_DATE ASC, CAMPAIGN_ID ASC LIMIT ?"
	args = append(args, limit)

	campaigns := []models.Campaign{}
	if err := dao.db.SelectContext(ctx, &campaigns, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list upcoming campaigns: %w", err)
	}

	return campaigns, nil
}

// DeleteWithTx removes a campaign row. Returns false when no row matched.
func (dao *CampaignDAO) DeleteWithTx(ctx context.Context, tx *database.Transaction, campaignID string) (bool, error) {
	query := `DELETE FROM CM_CAMPAIGN WHERE CAMPAIGN_ID = ?`

	result, err := tx.ExecContext(ctx, query, campaignID)
	if err != nil {
		return false, fmt.Errorf("failed to delete campaign: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return rows > 0, nil
}

// CountByStatus returns the number of campaigns per lifecycle status
func (dao *CampaignDAO) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT STATUS, COUNT(*) AS CNT
		FROM CM_CAMPAIGN
		GROUP BY STATUS
	`

	rows, err := dao.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count campaigns by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status counts: %w", err)
	}

	return counts, nil
}
