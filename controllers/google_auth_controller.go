package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gdevgproject/shopsphere/config"
	"github.com/gdevgproject/shopsphere/models"
	"github.com/gdevgproject/shopsphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleLogin redirects the browser to Google's consent screen
func GoogleLogin(c *gin.Context) {
	state := uuid.New().String()
	url := config.GoogleOAuthConfig.AuthCodeURL(state)
	c.Redirect(302, url)
}

// GoogleCallback completes the OAuth flow and logs the user in,
// creating an account on first sight.
func GoogleCallback(c *gin.Context) {
	utils.LogInfo("GoogleCallback called")

	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "Missing authorization code", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c.Request.Context(), code)
	if err != nil {
		utils.LogError("Failed to exchange OAuth code: %v", err)
		utils.Unauthorized(c, "Google authentication failed")
		return
	}

	client := config.GoogleOAuthConfig.Client(c.Request.Context(), token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		utils.LogError("Failed to fetch Google user info: %v", err)
		utils.InternalServerError(c, "Failed to fetch user info", nil)
		return
	}
	defer resp.Body.Close()

	var info struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		GivenName string `json:"given_name"`
		LastName  string `json:"family_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		utils.LogError("Failed to decode Google user info: %v", err)
		utils.InternalServerError(c, "Failed to decode user info", nil)
		return
	}

	var user models.User
	err = config.DB.Where("google_id = ? OR email = ?", info.ID, info.Email).First(&user).Error
	if err != nil {
		user = models.User{
			Username:  fmt.Sprintf("user_%s", uuid.New().String()[:8]),
			Email:     info.Email,
			FirstName: info.GivenName,
			LastName:  info.LastName,
			GoogleID:  info.ID,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			utils.LogError("Failed to create user from Google login: %v", err)
			utils.InternalServerError(c, "Failed to create account", nil)
			return
		}
		utils.LogInfo("Created user ID: %d from Google login", user.ID)
	} else if user.GoogleID == "" {
		config.DB.Model(&user).UpdateColumn("google_id", info.ID)
	}

	if user.IsBlocked {
		utils.Forbidden(c, "Account is blocked")
		return
	}

	jwtToken, err := utils.GenerateUserToken(user.ID)
	if err != nil {
		utils.LogError("Failed to issue token for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to login", nil)
		return
	}

	user.LastLoginAt = time.Now()
	config.DB.Model(&user).UpdateColumn("last_login_at", user.LastLoginAt)

	if err := utils.MergeGuestCartOnLogin(c, config.DB, user.ID); err != nil {
		utils.LogError("Guest cart merge failed for user ID: %d: %v", user.ID, err)
	}

	utils.Success(c, "Login successful", gin.H{
		"token": jwtToken,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}
