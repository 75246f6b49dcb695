package mocks

import (
	"context"

	"github.com/schoolhealth/campaign-management-api/internal/database"
)

// StubTxManager runs the transactional function directly against an empty
// transaction handle. Mock DAOs never touch the handle, so service logic can
// be exercised without a database.
type StubTxManager struct{}

func (m *StubTxManager) WithTransaction(ctx context.Context, fn func(*database.Transaction) error) error {
	return fn(&database.Transaction{})
}
