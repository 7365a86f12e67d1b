package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
)

// setupWebhookTest swaps config.DB for a sqlmock-backed gorm handle
func setupWebhookTest(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	previous := config.DB
	config.DB = gormDB
	t.Cleanup(func() {
		config.DB = previous
		mockDB.Close()
	})

	return mock
}

func postWebhook(body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	HandlePaymentWebhook(c)
	return w
}

func subscriptionRows(id, userID uint, status, referralCode string, amount float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "plan_id", "amount", "status",
		"external_payment_id", "referral_code", "expires_at",
	}).AddRow(id, userID, 1, amount, status, "pay_test123", referralCode, time.Now().AddDate(0, 1, 0))
}

func TestHandlePaymentWebhookMalformedPayload(t *testing.T) {
	mock := setupWebhookTest(t)

	w := postWebhook(`{"payment": {"id": "pay_test123"}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet(), "malformed payload must not touch the database")
}

func TestHandlePaymentWebhookIgnoredEvent(t *testing.T) {
	mock := setupWebhookTest(t)

	w := postWebhook(`{"event": "PAYMENT_FAILED", "payment": {"id": "pay_test123"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ignored":true`)
	assert.NoError(t, mock.ExpectationsWereMet(), "ignored events must not touch the database")
}

func TestHandlePaymentWebhookMissingPaymentID(t *testing.T) {
	mock := setupWebhookTest(t)

	w := postWebhook(`{"event": "PAYMENT_CONFIRMED", "payment": {}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePaymentWebhookUnknownPayment(t *testing.T) {
	mock := setupWebhookTest(t)

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WithArgs("pay_unknown", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := postWebhook(`{"event": "PAYMENT_CONFIRMED", "payment": {"id": "pay_unknown"}}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePaymentWebhookActivatesPendingSubscription(t *testing.T) {
	mock := setupWebhookTest(t)

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WithArgs("pay_test123", 1).
		WillReturnRows(subscriptionRows(42, 7, models.SubscriptionStatusPending, "", 4999))

	// Conditional pending -> active transition
	mock.ExpectExec(`UPDATE "subscriptions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Listing mirror for the owner
	mock.ExpectExec(`UPDATE "business_listings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	// Payment confirmed notification
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	// Owner lookup for the confirmation email; no row means the email send
	// is skipped and activation still succeeds
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := postWebhook(`{"event": "PAYMENT_CONFIRMED", "payment": {"id": "pay_test123"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subscription_id":42`)
	assert.Contains(t, w.Body.String(), `"businesses_activated":2`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePaymentWebhookRedeliveryIsIdempotent(t *testing.T) {
	mock := setupWebhookTest(t)

	mock.ExpectQuery(`SELECT \* FROM "subscriptions"`).
		WithArgs("pay_test123", 1).
		WillReturnRows(subscriptionRows(42, 7, models.SubscriptionStatusActive, "HV7F2A", 4999))

	// Guard matches zero rows, so no commission or notification follows
	mock.ExpectExec(`UPDATE "subscriptions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// The mirror re-runs but only overwrites to the same values
	mock.ExpectExec(`UPDATE "business_listings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	w := postWebhook(`{"event": "PAYMENT_RECEIVED", "payment": {"id": "pay_test123"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet(),
		"a redelivered webhook must not accrue a second commission")
}

func TestActivateSubscriptionAccruesCommissionOnce(t *testing.T) {
	mock := setupWebhookTest(t)

	sub := &models.Subscription{
		ID:           42,
		UserID:       7,
		PlanID:       1,
		Amount:       4999,
		Status:       models.SubscriptionStatusPending,
		ReferralCode: "HV7F2A",
		ExpiresAt:    time.Now().AddDate(1, 0, 0),
	}

	mock.ExpectExec(`UPDATE "subscriptions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "business_listings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Payment confirmed notification for the buyer
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	// Buyer lookup fails, email skipped
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Referral code resolves to an approved ambassador owned by another user
	mock.ExpectQuery(`SELECT \* FROM "ambassadors"`).
		WithArgs("HV7F2A", models.AmbassadorStatusApproved, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "referral_code", "commission_rate", "status"}).
			AddRow(3, 9, "HV7F2A", 15.0, models.AmbassadorStatusApproved))

	// Commission captured at the ambassador's current rate
	mock.ExpectQuery(`INSERT INTO "commissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

	// Commission earned notification for the ambassador
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	// Ambassador lookup fails, email skipped
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	result, err := ActivateSubscription(config.DB, sub)
	require.NoError(t, err)
	assert.True(t, result.Activated)
	assert.Equal(t, int64(1), result.BusinessesActivated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActivateSubscriptionLeavesExpiredSubscriptionAlone(t *testing.T) {
	mock := setupWebhookTest(t)

	sub := &models.Subscription{
		ID:        44,
		UserID:    7,
		PlanID:    1,
		Amount:    4999,
		Status:    models.SubscriptionStatusExpired,
		ExpiresAt: time.Now().AddDate(0, -1, 0),
	}

	// Guard matches zero rows; the listing mirror must not run, or a late
	// redelivery would put the owner's lapsed listings back in the directory
	mock.ExpectExec(`UPDATE "subscriptions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	result, err := ActivateSubscription(config.DB, sub)
	require.NoError(t, err)
	assert.False(t, result.Activated)
	assert.Equal(t, int64(0), result.BusinessesActivated)
	assert.NoError(t, mock.ExpectationsWereMet(),
		"an expired subscription must not re-activate listings")
}

func TestActivateSubscriptionSkipsSelfReferral(t *testing.T) {
	mock := setupWebhookTest(t)

	sub := &models.Subscription{
		ID:           43,
		UserID:       9,
		PlanID:       1,
		Amount:       499,
		Status:       models.SubscriptionStatusPending,
		ReferralCode: "HV7F2A",
		ExpiresAt:    time.Now().AddDate(0, 1, 0),
	}

	mock.ExpectExec(`UPDATE "subscriptions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "business_listings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// The code belongs to the buyer's own ambassador profile
	mock.ExpectQuery(`SELECT \* FROM "ambassadors"`).
		WithArgs("HV7F2A", models.AmbassadorStatusApproved, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "referral_code", "commission_rate", "status"}).
			AddRow(3, 9, "HV7F2A", 15.0, models.AmbassadorStatusApproved))

	result, err := ActivateSubscription(config.DB, sub)
	require.NoError(t, err)
	assert.True(t, result.Activated)
	assert.NoError(t, mock.ExpectationsWereMet(),
		"self-referral must not create a commission")
}
