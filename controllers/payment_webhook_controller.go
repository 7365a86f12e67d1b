package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// PaymentWebhookRequest is the payment provider's event payload
type PaymentWebhookRequest struct {
	Event   string `json:"event" binding:"required"`
	Payment struct {
		ID string `json:"id"`
	} `json:"payment"`
}

// activationEvents are the only event types that trigger activation. Every
// other type is answered 200 so the provider does not retry ignorable events.
var activationEvents = map[string]bool{
	"PAYMENT_RECEIVED":  true,
	"PAYMENT_CONFIRMED": true,
}

// POST /webhooks/payment
func HandlePaymentWebhook(c *gin.Context) {
	utils.LogInfo("HandlePaymentWebhook called")

	var req PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Malformed webhook payload: %v", err)
		utils.BadRequest(c, "Invalid webhook payload", err.Error())
		return
	}

	if !activationEvents[req.Event] {
		utils.LogInfo("Ignoring webhook event type: %s", req.Event)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"ignored": true,
			"event":   req.Event,
		})
		return
	}

	if req.Payment.ID == "" {
		utils.LogError("Webhook event %s missing payment id", req.Event)
		utils.BadRequest(c, "Missing payment id", nil)
		return
	}
	utils.LogDebug("Processing %s for payment %s", req.Event, req.Payment.ID)

	db := config.DB
	var sub models.Subscription
	if err := db.Where("external_payment_id = ?", req.Payment.ID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Expected for unrelated or test payments, not an internal error.
			utils.LogInfo("No subscription for payment %s", req.Payment.ID)
			utils.NotFound(c, "Subscription not found")
			return
		}
		utils.LogError("Failed to look up subscription for payment %s: %v", req.Payment.ID, err)
		utils.InternalServerError(c, "Failed to look up subscription", err.Error())
		return
	}
	utils.LogDebug("Payment %s matched subscription %d", req.Payment.ID, sub.ID)

	result, err := ActivateSubscription(db, &sub)
	if err != nil {
		utils.InternalServerError(c, "Failed to activate subscription", err.Error())
		return
	}

	utils.LogInfo("Webhook processed for subscription %d (activated=%t, listings=%d)",
		sub.ID, result.Activated, result.BusinessesActivated)
	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"subscription_id":      sub.ID,
		"businesses_activated": result.BusinessesActivated,
	})
}
