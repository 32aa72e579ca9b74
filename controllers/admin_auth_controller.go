package controllers

import (
	"os"
	"strings"
	"time"

	"github.com/gdevgproject/shopsphere/config"
	"github.com/gdevgproject/shopsphere/models"
	"github.com/gdevgproject/shopsphere/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AdminLogin authenticates a back-office administrator
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid admin login request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&admin).Error; err != nil {
		utils.LogError("Admin login failed, unknown email: %s", req.Email)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		utils.LogError("Admin login failed, wrong password for admin ID: %d", admin.ID)
		utils.Unauthorized(c, "Invalid email or password")
		return
	}
	if !admin.IsActive {
		utils.LogError("Inactive admin attempted login: %d", admin.ID)
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	token, err := utils.GenerateAdminToken(admin.ID)
	if err != nil {
		utils.LogError("Failed to issue admin token for ID: %d: %v", admin.ID, err)
		utils.InternalServerError(c, "Failed to login", nil)
		return
	}

	admin.LastLogin = time.Now()
	config.DB.Model(&admin).UpdateColumn("last_login", admin.LastLogin)

	utils.LogInfo("Admin %d logged in successfully", admin.ID)
	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
		},
	})
}

// CreateSampleAdmin creates a bootstrap admin account on first start so
// the back office is reachable on a fresh database.
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogInfo("No admin exists and ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping bootstrap admin")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Email:     strings.ToLower(email),
		Password:  string(hashed),
		FirstName: "Store",
		LastName:  "Admin",
		IsActive:  true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}
	utils.LogInfo("Created bootstrap admin ID: %d", admin.ID)
	return nil
}
