package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gdevgproject/shopsphere/config"
	"github.com/gdevgproject/shopsphere/models"
	"github.com/gdevgproject/shopsphere/utils"
	"github.com/gin-gonic/gin"
)

// DiscountRequest represents the request body for creating a discount.
// Exactly one of DiscountPercentage or a flat MaxDiscountAmount must be
// set; in percentage mode MaxDiscountAmount becomes an optional cap.
type DiscountRequest struct {
	Code               string     `json:"code" binding:"required"`
	Description        string     `json:"description"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	MaxUses            *int       `json:"max_uses"`
	MinOrderValue      *float64   `json:"min_order_value"`
	DiscountPercentage *float64   `json:"discount_percentage"`
	MaxDiscountAmount  *float64   `json:"max_discount_amount"`
}

func validateDiscountShape(req DiscountRequest) (string, bool) {
	if req.DiscountPercentage != nil {
		if *req.DiscountPercentage <= 0 || *req.DiscountPercentage > 100 {
			return "Discount percentage must be between 0 and 100", false
		}
	} else if req.MaxDiscountAmount == nil || *req.MaxDiscountAmount <= 0 {
		return "Either a discount percentage or a positive flat amount is required", false
	}
	if req.MaxDiscountAmount != nil && *req.MaxDiscountAmount <= 0 {
		return "Maximum discount amount must be positive", false
	}
	if req.MinOrderValue != nil && *req.MinOrderValue < 0 {
		return "Minimum order value cannot be negative", false
	}
	if req.MaxUses != nil && *req.MaxUses <= 0 {
		return "Maximum uses must be positive", false
	}
	if req.StartDate != nil && req.EndDate != nil && !req.EndDate.After(*req.StartDate) {
		return "End date must be after start date", false
	}
	return "", true
}

// CreateDiscount adds a discount code
func CreateDiscount(c *gin.Context) {
	utils.LogInfo("CreateDiscount called")

	admin, ok := adminFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	code := utils.NormalizeDiscountCode(req.Code)
	if !utils.ValidateDiscountCode(code) {
		utils.ValidationError(c, "Code may only contain A-Z, 0-9, dash and underscore (max 50 chars)", nil)
		return
	}
	if msg, ok := validateDiscountShape(req); !ok {
		utils.ValidationError(c, msg, nil)
		return
	}

	discount := models.Discount{
		Code:               code,
		Description:        req.Description,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		MaxUses:            req.MaxUses,
		MinOrderValue:      req.MinOrderValue,
		DiscountPercentage: req.DiscountPercentage,
		MaxDiscountAmount:  req.MaxDiscountAmount,
		IsActive:           true,
	}
	if req.MaxUses != nil {
		remaining := *req.MaxUses
		discount.RemainingUses = &remaining
	}

	if err := config.DB.Create(&discount).Error; err != nil {
		utils.LogError("Failed to create discount %s: %v", code, err)
		utils.Conflict(c, "Discount code already exists or could not be created", nil)
		return
	}

	utils.RecordActivity(models.ActorAdmin, admin.ID, utils.ActivityDiscountCreated,
		fmt.Sprintf("Discount %s created", discount.Code), "discount", discount.ID, nil)
	utils.LogInfo("Created discount ID: %d, code: %s", discount.ID, discount.Code)
	utils.Created(c, "Discount created successfully", discount)
}

// ListDiscounts returns all discounts, active and disabled
func ListDiscounts(c *gin.Context) {
	if _, ok := adminFromContext(c); !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := config.DB.Model(&models.Discount{})
	if active := c.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count discounts: %v", err)
		utils.InternalServerError(c, "Failed to fetch discounts", nil)
		return
	}

	var discounts []models.Discount
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&discounts).Error; err != nil {
		utils.LogError("Failed to fetch discounts: %v", err)
		utils.InternalServerError(c, "Failed to fetch discounts", nil)
		return
	}

	utils.SuccessWithPagination(c, "Discounts retrieved successfully", discounts, total, page, perPage)
}

// UpdateDiscountRequest allows partial edits of a discount's terms
type UpdateDiscountRequest struct {
	Description       *string    `json:"description"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	MinOrderValue     *float64   `json:"min_order_value"`
	MaxDiscountAmount *float64   `json:"max_discount_amount"`
	IsActive          *bool      `json:"is_active"`
}

// UpdateDiscount edits a discount's terms. The code and the discount
// mode are immutable once created; disable the code and issue a new one
// instead of repurposing it.
func UpdateDiscount(c *gin.Context) {
	utils.LogInfo("UpdateDiscount called")

	admin, ok := adminFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	discountID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid discount ID", nil)
		return
	}

	var req UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var discount models.Discount
	if err := config.DB.First(&discount, discountID).Error; err != nil {
		utils.NotFound(c, "Discount not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.MinOrderValue != nil {
		if *req.MinOrderValue < 0 {
			utils.ValidationError(c, "Minimum order value cannot be negative", nil)
			return
		}
		updates["min_order_value"] = *req.MinOrderValue
	}
	if req.MaxDiscountAmount != nil {
		if *req.MaxDiscountAmount <= 0 {
			utils.ValidationError(c, "Maximum discount amount must be positive", nil)
			return
		}
		updates["max_discount_amount"] = *req.MaxDiscountAmount
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	if err := config.DB.Model(&discount).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update discount ID: %d: %v", discount.ID, err)
		utils.InternalServerError(c, "Failed to update discount", nil)
		return
	}

	utils.RecordActivity(models.ActorAdmin, admin.ID, utils.ActivityDiscountUpdated,
		fmt.Sprintf("Discount %s updated", discount.Code), "discount", discount.ID, updates)
	utils.Success(c, "Discount updated successfully", discount)
}

// DisableDiscount deactivates a discount code. Codes are never
// hard-deleted so that placed orders keep a valid reference.
func DisableDiscount(c *gin.Context) {
	utils.LogInfo("DisableDiscount called")

	admin, ok := adminFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	discountID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid discount ID", nil)
		return
	}

	var discount models.Discount
	if err := config.DB.First(&discount, discountID).Error; err != nil {
		utils.NotFound(c, "Discount not found")
		return
	}

	if err := config.DB.Model(&discount).Update("is_active", false).Error; err != nil {
		utils.LogError("Failed to disable discount ID: %d: %v", discount.ID, err)
		utils.InternalServerError(c, "Failed to disable discount", nil)
		return
	}

	utils.RecordActivity(models.ActorAdmin, admin.ID, utils.ActivityDiscountDisabled,
		fmt.Sprintf("Discount %s disabled", discount.Code), "discount", discount.ID, nil)
	utils.Success(c, "Discount disabled successfully", nil)
}
