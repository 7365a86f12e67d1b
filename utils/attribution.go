package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ReferralCookieName is the attribution cookie. Its value is
// "<code>|<firstSeenUnix>" so expiry can be validated server-side even if a
// client replays a stale cookie past its Max-Age.
const ReferralCookieName = "hv_ref"

// ReferralAttributionDays is the attribution window
const ReferralAttributionDays = 30

// SetReferralCode writes the attribution cookie with first-click semantics:
// if a non-expired attribution already exists it is a no-op, so the earliest
// referrer keeps the credit. Returns true when the cookie was written.
func SetReferralCode(c *gin.Context, code string) bool {
	if code == "" {
		return false
	}
	if existing, ok := GetReferralCode(c); ok {
		LogDebug("Attribution cookie already set to %s, ignoring code %s", existing, code)
		return false
	}

	value := code + "|" + strconv.FormatInt(time.Now().Unix(), 10)
	maxAge := ReferralAttributionDays * 24 * 60 * 60
	c.SetCookie(ReferralCookieName, value, maxAge, "/", "", false, true)
	return true
}

// GetReferralCode returns the current attributed referral code, if any.
// Cookies older than the attribution window are treated as absent.
func GetReferralCode(c *gin.Context) (string, bool) {
	value, err := c.Cookie(ReferralCookieName)
	if err != nil || value == "" {
		return "", false
	}

	parts := strings.SplitN(value, "|", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", false
	}

	firstSeen, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", false
	}

	expiresAt := time.Unix(firstSeen, 0).AddDate(0, 0, ReferralAttributionDays)
	if time.Now().After(expiresAt) {
		return "", false
	}

	return parts[0], true
}

// ClearReferralCode expires the attribution cookie. Called once a conversion
// has been stamped so the same attribution cannot credit a second purchase.
func ClearReferralCode(c *gin.Context) {
	c.SetCookie(ReferralCookieName, "", -1, "/", "", false, true)
}
