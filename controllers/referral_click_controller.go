package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// TrackClickRequest is the referral click RPC payload
type TrackClickRequest struct {
	ReferralCode string `json:"referral_code" binding:"required"`
	UTMSource    string `json:"utm_source"`
	UTMMedium    string `json:"utm_medium"`
	UTMCampaign  string `json:"utm_campaign"`
}

// POST /referral/click
func TrackReferralClick(c *gin.Context) {
	utils.LogInfo("TrackReferralClick called")

	var req TrackClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid click payload: %v", err)
		utils.BadRequest(c, "Invalid request. referral_code is required", err.Error())
		return
	}

	// Click logging is best-effort: losing a counter is tolerable, losing
	// attribution is not, so the cookie is written regardless.
	recordClickEvent(req.ReferralCode, req.UTMSource, req.UTMMedium, req.UTMCampaign)

	written := utils.SetReferralCode(c, req.ReferralCode)
	utils.LogDebug("Click recorded for code %s (cookie written: %t)", req.ReferralCode, written)

	utils.Success(c, "Referral click recorded", gin.H{
		"referral_code":       req.ReferralCode,
		"attribution_written": written,
	})
}

// GET /r/:code
// Link click-through: logs the click, sets the attribution cookie and
// redirects to the marketing site.
func ReferralLinkRedirect(c *gin.Context) {
	code := c.Param("code")
	utils.LogInfo("ReferralLinkRedirect called for code %s", code)

	recordClickEvent(code, c.Query("utm_source"), c.Query("utm_medium"), c.Query("utm_campaign"))
	utils.SetReferralCode(c, code)

	target := os.Getenv("FRONTEND_URL")
	if target == "" {
		target = "/"
	}
	c.Redirect(http.StatusFound, target)
}

// recordClickEvent appends a row to the click log. Unknown codes are still
// recorded; the ambassador link is attached only when the code resolves.
func recordClickEvent(code, source, medium, campaign string) {
	event := models.ReferralClickEvent{
		ReferralCode: code,
		UTMSource:    source,
		UTMMedium:    medium,
		UTMCampaign:  campaign,
	}

	var ambassador models.Ambassador
	if err := config.DB.Where("referral_code = ?", code).First(&ambassador).Error; err == nil {
		event.AmbassadorID = &ambassador.ID
	} else {
		utils.LogDebug("Click for unresolved referral code %s", code)
	}

	if err := config.DB.Create(&event).Error; err != nil {
		utils.LogWarn("Failed to record click for code %s: %v", code, err)
	}
}
