package utils

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/herventures/HerVentures/models"
)

func newSweepDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create sqlmock")

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err, "Failed to open GORM connection")

	t.Cleanup(func() { mockDB.Close() })
	return gormDB, mock
}

func sweepSubscriptionRows(id, userID uint, expiresAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "plan_id", "amount", "status", "expires_at"}).
		AddRow(id, userID, 1, 4999.0, models.SubscriptionStatusActive, expiresAt)
}

func TestRunConsistencySweepExpiresOverdueSubscription(t *testing.T) {
	db, mock := newSweepDB(t)

	overdue := time.Now().AddDate(0, 0, -1)

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(sweepSubscriptionRows(5, 7, overdue))

	// Conditional active -> expired transition
	mock.ExpectExec(`UPDATE "subscriptions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// No other active subscription covers the owner, so the listings go dark
	mock.ExpectQuery(`SELECT count\(\*\) FROM "subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE "business_listings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	// No active subscriptions left to re-mirror
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	expired, repaired := RunConsistencySweep(db)

	assert.Equal(t, int64(1), expired)
	assert.Equal(t, int64(0), repaired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunConsistencySweepKeepsListingsCoveredByAnotherSubscription(t *testing.T) {
	db, mock := newSweepDB(t)

	overdue := time.Now().AddDate(0, 0, -1)
	stillActive := time.Now().AddDate(0, 6, 0)

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(sweepSubscriptionRows(5, 7, overdue))

	mock.ExpectExec(`UPDATE "subscriptions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// A second active subscription still covers the owner, so no downgrade runs
	mock.ExpectQuery(`SELECT count\(\*\) FROM "subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	// Re-mirror pass finds the covering subscription; listings already in
	// lockstep, nothing to repair
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(sweepSubscriptionRows(6, 7, stillActive))
	mock.ExpectExec(`UPDATE "business_listings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	expired, repaired := RunConsistencySweep(db)

	assert.Equal(t, int64(1), expired)
	assert.Equal(t, int64(0), repaired)
	assert.NoError(t, mock.ExpectationsWereMet(),
		"listings covered by a remaining active subscription must not go dark")
}

func TestRunConsistencySweepRepairsDriftedListings(t *testing.T) {
	db, mock := newSweepDB(t)

	stillActive := time.Now().AddDate(0, 6, 0)

	// Nothing overdue
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// One active subscription whose listings drifted (e.g. the activation
	// mirror failed mid-flight)
	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WillReturnRows(sweepSubscriptionRows(6, 7, stillActive))
	mock.ExpectExec(`UPDATE "business_listings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	expired, repaired := RunConsistencySweep(db)

	assert.Equal(t, int64(0), expired)
	assert.Equal(t, int64(2), repaired)
	assert.NoError(t, mock.ExpectationsWereMet())
}
