package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttributionContext(t *testing.T, cookieValue string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookieValue != "" {
		c.Request.Header.Set("Cookie", ReferralCookieName+"="+url.QueryEscape(cookieValue))
	}
	return c, w
}

func attributionValue(code string, firstSeen time.Time) string {
	return code + "|" + strconv.FormatInt(firstSeen.Unix(), 10)
}

func TestSetReferralCodeFirstClick(t *testing.T) {
	c, w := newAttributionContext(t, "")

	written := SetReferralCode(c, "ABC123")
	require.True(t, written)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ReferralCookieName, cookies[0].Name)

	// gin URL-encodes cookie values on write and unescapes on read
	value, err := url.QueryUnescape(cookies[0].Value)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(value, "ABC123|"))
	assert.Equal(t, ReferralAttributionDays*24*60*60, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSetReferralCodeDoesNotOverwriteExisting(t *testing.T) {
	c, w := newAttributionContext(t, attributionValue("FIRST1", time.Now()))

	written := SetReferralCode(c, "SECOND")
	assert.False(t, written)
	assert.Empty(t, w.Result().Cookies(), "existing attribution must not be replaced")

	code, ok := GetReferralCode(c)
	require.True(t, ok)
	assert.Equal(t, "FIRST1", code)
}

func TestSetReferralCodeReplacesExpiredAttribution(t *testing.T) {
	stale := time.Now().AddDate(0, 0, -(ReferralAttributionDays + 1))
	c, w := newAttributionContext(t, attributionValue("OLD123", stale))

	_, ok := GetReferralCode(c)
	require.False(t, ok, "attribution past the window must read as absent")

	written := SetReferralCode(c, "NEW456")
	require.True(t, written)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	value, err := url.QueryUnescape(cookies[0].Value)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(value, "NEW456|"))
}

func TestSetReferralCodeEmptyCode(t *testing.T) {
	c, w := newAttributionContext(t, "")

	assert.False(t, SetReferralCode(c, ""))
	assert.Empty(t, w.Result().Cookies())
}

func TestGetReferralCode(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantCode string
		wantOK   bool
	}{
		{
			name:     "valid attribution",
			value:    attributionValue("HV7F2A", time.Now().AddDate(0, 0, -5)),
			wantCode: "HV7F2A",
			wantOK:   true,
		},
		{
			name:   "no cookie",
			value:  "",
			wantOK: false,
		},
		{
			name:   "missing timestamp",
			value:  "HV7F2A",
			wantOK: false,
		},
		{
			name:   "empty code",
			value:  "|" + strconv.FormatInt(time.Now().Unix(), 10),
			wantOK: false,
		},
		{
			name:   "garbage timestamp",
			value:  "HV7F2A|notaunixtime",
			wantOK: false,
		},
		{
			name:   "replayed stale cookie",
			value:  attributionValue("HV7F2A", time.Now().AddDate(0, 0, -40)),
			wantOK: false,
		},
		{
			name:     "last day of the window",
			value:    attributionValue("HV7F2A", time.Now().AddDate(0, 0, -ReferralAttributionDays).Add(time.Hour)),
			wantCode: "HV7F2A",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newAttributionContext(t, tt.value)

			code, ok := GetReferralCode(c)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestClearReferralCode(t *testing.T) {
	c, w := newAttributionContext(t, attributionValue("HV7F2A", time.Now()))

	ClearReferralCode(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, ReferralCookieName, cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0 || cookies[0].MaxAge == 0,
		fmt.Sprintf("expected expiring cookie, got MaxAge=%d", cookies[0].MaxAge))
}
