package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// CheckoutRequest starts a membership purchase
type CheckoutRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

// POST /user/checkout
// Creates a pending subscription for the chosen plan, opens a payment order
// with the provider and stamps the sale with the attributed referral code.
func Checkout(c *gin.Context) {
	utils.LogInfo("Checkout called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)
	utils.LogInfo("Processing checkout for user ID: %d", user.ID)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid checkout request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request. plan_id is required", err.Error())
		return
	}

	db := config.DB
	var plan models.Plan
	if err := db.Where("id = ? AND is_active = ?", req.PlanID, true).First(&plan).Error; err != nil {
		utils.LogError("Plan not found for ID: %d", req.PlanID)
		utils.NotFound(c, "Plan not found")
		return
	}

	// One open payment per plan at a time
	var pending models.Subscription
	if err := db.Where("user_id = ? AND plan_id = ? AND status = ?",
		user.ID, plan.ID, models.SubscriptionStatusPending).First(&pending).Error; err == nil {
		utils.LogError("Payment already in progress for user ID: %d, plan ID: %d", user.ID, plan.ID)
		utils.BadRequest(c, "A payment is already in progress for this plan", nil)
		return
	}

	amountPaise := int(math.Round(plan.Price * 100))
	utils.LogInfo("Processing payment amount: %d paise for plan %s", amountPaise, plan.Slug)

	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
	orderData := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         "sub_rcpt_" + uuid.New().String(),
		"payment_capture": 1,
	}
	rzOrder, err := client.Order.Create(orderData, nil)
	if err != nil {
		utils.LogError("Failed to create payment order for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create payment order", err.Error())
		return
	}
	externalPaymentID := fmt.Sprintf("%v", rzOrder["id"])
	utils.LogInfo("Created payment order %s for user ID: %d", externalPaymentID, user.ID)

	// Stamp the sale with the attributed referral code, if any
	referralCode, attributed := utils.GetReferralCode(c)

	sub := models.Subscription{
		UserID:            user.ID,
		PlanID:            plan.ID,
		Amount:            plan.Price,
		Status:            models.SubscriptionStatusPending,
		ExternalPaymentID: externalPaymentID,
		ReferralCode:      referralCode,
		ExpiresAt:         time.Now().AddDate(0, plan.DurationMonths, 0),
	}
	if err := db.Create(&sub).Error; err != nil {
		utils.LogError("Failed to create subscription for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create subscription", err.Error())
		return
	}
	utils.LogInfo("Created pending subscription %d for user ID: %d", sub.ID, user.ID)

	notifyUser(db, user.ID, models.NotificationPaymentRegistered,
		"Payment registered",
		fmt.Sprintf("Your %s membership payment has been registered and is awaiting confirmation.", plan.Name))

	// The conversion is stamped; the same attribution must not credit a
	// second, unrelated purchase.
	if attributed {
		utils.ClearReferralCode(c)
		utils.LogDebug("Cleared attribution cookie for user ID: %d (code %s)", user.ID, referralCode)
	}

	utils.Success(c, "Checkout initiated successfully", gin.H{
		"subscription": gin.H{
			"id":         sub.ID,
			"plan":       plan.Name,
			"amount":     fmt.Sprintf("%.2f", sub.Amount),
			"expires_at": sub.ExpiresAt.Format("2006-01-02"),
		},
		"payment_order_id": externalPaymentID,
		"key":              os.Getenv("RAZORPAY_KEY"),
		"user": gin.H{
			"name":  user.Username,
			"email": user.Email,
		},
	})
}

// VerifyCheckoutRequest carries the provider's signed payment confirmation
type VerifyCheckoutRequest struct {
	PaymentOrderID    string `json:"payment_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// POST /user/checkout/verify
// Client-side confirmation path. Verifies the provider signature and runs the
// same activation routine the webhook uses, so both paths stay idempotent.
func VerifyCheckoutPayment(c *gin.Context) {
	utils.LogInfo("VerifyCheckoutPayment called")
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req VerifyCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid verify request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	keySecret := os.Getenv("RAZORPAY_SECRET")
	data := req.PaymentOrderID + "|" + req.RazorpayPaymentID
	h := hmac.New(sha256.New, []byte(keySecret))
	h.Write([]byte(data))
	generatedSignature := hex.EncodeToString(h.Sum(nil))
	if generatedSignature != req.RazorpaySignature {
		utils.LogError("Payment signature mismatch for user ID: %d", user.ID)
		utils.BadRequest(c, "Payment verification failed", gin.H{"retry": true})
		return
	}
	utils.LogInfo("Payment signature verified for order %s", req.PaymentOrderID)

	db := config.DB
	var sub models.Subscription
	if err := db.Where("external_payment_id = ? AND user_id = ?", req.PaymentOrderID, user.ID).
		First(&sub).Error; err != nil {
		utils.LogError("Subscription not found for order %s, user ID: %d", req.PaymentOrderID, user.ID)
		utils.NotFound(c, "Subscription not found")
		return
	}

	result, err := ActivateSubscription(db, &sub)
	if err != nil {
		utils.InternalServerError(c, "Failed to activate subscription", err.Error())
		return
	}

	utils.LogInfo("Checkout verified for subscription %d (user ID: %d)", sub.ID, user.ID)
	utils.Success(c, "Thank you for your payment! Your membership is active.", gin.H{
		"subscription_id":      sub.ID,
		"status":               models.SubscriptionStatusActive,
		"expires_at":           sub.ExpiresAt.Format("2006-01-02"),
		"businesses_activated": result.BusinessesActivated,
	})
}
