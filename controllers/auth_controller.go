package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	"github.com/herventures/HerVentures/config"
	"github.com/herventures/HerVentures/models"
	"github.com/herventures/HerVentures/utils"
)

// RegisterRequest is the member signup payload
type RegisterRequest struct {
	Username     string `json:"username" binding:"required,min=3"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BusinessName string `json:"business_name"`
	ReferralCode string `json:"referral_code"`
}

// POST /register
func RegisterUser(c *gin.Context) {
	utils.LogInfo("RegisterUser called")

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid registration request: %v", err)
		utils.BadRequest(c, "Invalid registration details", err.Error())
		return
	}

	db := config.DB
	var existing models.User
	if err := db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		utils.LogError("Registration conflict for email %s / username %s", req.Email, req.Username)
		utils.Conflict(c, "An account with this email or username already exists", nil)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		Password:     hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BusinessName: req.BusinessName,
	}
	if err := db.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Failed to create account", err.Error())
		return
	}
	utils.LogInfo("Created user %d (%s)", user.ID, user.Email)

	// Signup-time referral link; a bad code must not block registration
	if req.ReferralCode != "" {
		recordReferralSignup(user.ID, req.ReferralCode)
	}

	if err := utils.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
		utils.LogWarn("Failed to send welcome email to %s: %v", user.Email, err)
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.Created(c, "Account created successfully", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// recordReferralSignup links a new member to the ambassador whose code they
// signed up with
func recordReferralSignup(userID uint, code string) {
	var ambassador models.Ambassador
	if err := config.DB.Where("referral_code = ? AND status = ?", code, models.AmbassadorStatusApproved).
		First(&ambassador).Error; err != nil {
		utils.LogWarn("Signup with unknown or unapproved referral code %s", code)
		return
	}

	signup := models.ReferralSignup{
		UserID:       userID,
		ReferralCode: code,
	}
	if err := config.DB.Create(&signup).Error; err != nil {
		utils.LogWarn("Failed to record referral signup for user %d: %v", userID, err)
	}
}

// LoginRequest is the member login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /login
func LoginUser(c *gin.Context) {
	utils.LogInfo("LoginUser called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("User not found for email: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if user.IsBlocked {
		utils.LogError("Blocked user attempted login: %d", user.ID)
		utils.Forbidden(c, "Account is blocked")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		utils.LogError("Invalid password for user: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	user.LastLoginAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogWarn("Failed to update last login for user %d: %v", user.ID, err)
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("User login successful: %s", user.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// POST /user/logout
func LogoutUser(c *gin.Context) {
	utils.LogInfo("LogoutUser called")

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		utils.Success(c, "Logged out successfully", nil)
		return
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	expiresAt := time.Now().Add(24 * time.Hour)
	if token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	}); err == nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				expiresAt = time.Unix(int64(exp), 0)
			}
		}
	}

	blacklisted := models.BlacklistedToken{
		Token:     tokenString,
		ExpiresAt: expiresAt,
	}
	if err := config.DB.Create(&blacklisted).Error; err != nil {
		utils.LogWarn("Failed to blacklist token on logout: %v", err)
	}

	utils.Success(c, "Logged out successfully", nil)
}

// GoogleUserInfo is the profile returned by Google's userinfo endpoint
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// GET /auth/google/login
func GoogleLogin(c *gin.Context) {
	state := uuid.New().String()
	session := sessions.Default(c)
	session.Set("oauth_state", state)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save OAuth state: %v", err)
		utils.InternalServerError(c, "Failed to start Google login", nil)
		return
	}

	url := config.GoogleOAuthConfig.AuthCodeURL(state)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GET /auth/google/callback
func GoogleCallback(c *gin.Context) {
	utils.LogInfo("GoogleCallback called")

	session := sessions.Default(c)
	expectedState, _ := session.Get("oauth_state").(string)
	session.Delete("oauth_state")
	if err := session.Save(); err != nil {
		utils.LogWarn("Failed to clear OAuth state: %v", err)
	}
	if expectedState == "" || c.Query("state") != expectedState {
		utils.LogError("OAuth state mismatch")
		utils.BadRequest(c, "Invalid OAuth state", nil)
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c, code)
	if err != nil {
		utils.LogError("Failed to exchange OAuth code: %v", err)
		utils.InternalServerError(c, "Failed to exchange token", err.Error())
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		utils.InternalServerError(c, "Failed to get user info", err.Error())
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.InternalServerError(c, "Failed to read response", err.Error())
		return
	}

	var googleUser GoogleUserInfo
	if err := json.Unmarshal(data, &googleUser); err != nil {
		utils.InternalServerError(c, "Failed to parse user info", err.Error())
		return
	}

	db := config.DB
	var user models.User
	if err := db.Where("google_id = ? OR email = ?", googleUser.ID, googleUser.Email).First(&user).Error; err != nil {
		// First Google sign-in creates the account
		user = models.User{
			Username:     fmt.Sprintf("%s_%s", strings.Split(googleUser.Email, "@")[0], googleUser.ID[:6]),
			Email:        googleUser.Email,
			FirstName:    googleUser.GivenName,
			LastName:     googleUser.FamilyName,
			ProfileImage: googleUser.Picture,
			GoogleID:     googleUser.ID,
			IsVerified:   googleUser.VerifiedEmail,
		}
		if err := db.Create(&user).Error; err != nil {
			utils.LogError("Failed to create Google user: %v", err)
			utils.InternalServerError(c, "Failed to create account", err.Error())
			return
		}
		utils.LogInfo("Created user %d via Google sign-in", user.ID)
	} else if user.GoogleID == "" {
		if err := db.Model(&user).Update("google_id", googleUser.ID).Error; err != nil {
			utils.LogWarn("Failed to link Google account for user %d: %v", user.ID, err)
		}
	}

	if user.IsBlocked {
		utils.Forbidden(c, "Account is blocked")
		return
	}

	jwtToken, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"token": jwtToken,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}
