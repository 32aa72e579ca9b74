package controllers

import (
	"fmt"
	"strconv"

	"github.com/gdevgproject/shopsphere/config"
	"github.com/gdevgproject/shopsphere/models"
	"github.com/gdevgproject/shopsphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func adminFromContext(c *gin.Context) (models.Admin, bool) {
	adminVal, exists := c.Get("admin")
	if !exists {
		return models.Admin{}, false
	}
	admin, ok := adminVal.(models.Admin)
	return admin, ok
}

// VariantRequest is one purchasable unit of a product
type VariantRequest struct {
	Volume        int     `json:"volume" binding:"required,gt=0"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	SalePrice     float64 `json:"sale_price"`
	StockQuantity int     `json:"stock_quantity" binding:"gte=0"`
}

// ProductRequest represents the request body for creating a product
type ProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Brand       string           `json:"brand"`
	Description string           `json:"description"`
	CategoryID  uint             `json:"category_id" binding:"required"`
	ImageURL    string           `json:"image_url"`
	Variants    []VariantRequest `json:"variants" binding:"required,min=1,dive"`
}

// CreateProduct adds a product with its variants
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")

	admin, ok := adminFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.BadRequest(c, "Category not found", nil)
		return
	}
	for _, v := range req.Variants {
		if v.SalePrice > 0 && v.SalePrice >= v.Price {
			utils.ValidationError(c, "Sale price must be below the list price", nil)
			return
		}
	}

	product := models.Product{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	for _, v := range req.Variants {
		product.Variants = append(product.Variants, models.ProductVariant{
			Volume:        v.Volume,
			Price:         v.Price,
			SalePrice:     v.SalePrice,
			StockQuantity: v.StockQuantity,
			IsActive:      true,
		})
	}

	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", nil)
		return
	}

	utils.RecordActivity(models.ActorAdmin, admin.ID, utils.ActivityProductCreated,
		fmt.Sprintf("Product %q created", product.Name), "product", product.ID, nil)
	utils.LogInfo("Created product ID: %d with %d variants", product.ID, len(product.Variants))
	utils.Created(c, "Product created successfully", product)
}

// UpdateProductRequest allows partial updates of the product head
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Brand       *string `json:"brand"`
	Description *string `json:"description"`
	CategoryID  *uint   `json:"category_id"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateProduct edits product fields; variants are managed separately
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")

	admin, ok := adminFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			utils.BadRequest(c, "Category not found", nil)
			return
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	if err := config.DB.Model(&product).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update product ID: %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", nil)
		return
	}

	utils.RecordActivity(models.ActorAdmin, admin.ID, utils.ActivityProductUpdated,
		fmt.Sprintf("Product %q updated", product.Name), "product", product.ID, updates)
	utils.Success(c, "Product updated successfully", product)
}

// UpdateVariantRequest allows partial updates of one variant
type UpdateVariantRequest struct {
	Price         *float64 `json:"price"`
	SalePrice     *float64 `json:"sale_price"`
	StockQuantity *int     `json:"stock_quantity"`
	IsActive      *bool    `json:"is_active"`
}

// UpdateProductVariant edits price, sale price, stock or active flag
func UpdateProductVariant(c *gin.Context) {
	utils.LogInfo("UpdateProductVariant called")

	admin, ok := adminFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	variantID, err := strconv.ParseUint(c.Param("variantId"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid variant ID", nil)
		return
	}

	var req UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var variant models.ProductVariant
	if err := config.DB.First(&variant, variantID).Error; err != nil {
		utils.NotFound(c, "Variant not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.ValidationError(c, "Price must be positive", nil)
			return
		}
		updates["price"] = *req.Price
	}
	if req.SalePrice != nil {
		updates["sale_price"] = *req.SalePrice
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			utils.ValidationError(c, "Stock quantity cannot be negative", nil)
			return
		}
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "Nothing to update", nil)
		return
	}

	if err := config.DB.Model(&variant).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update variant ID: %d: %v", variant.ID, err)
		utils.InternalServerError(c, "Failed to update variant", nil)
		return
	}

	utils.RecordActivity(models.ActorAdmin, admin.ID, utils.ActivityProductUpdated,
		fmt.Sprintf("Variant %d updated", variant.ID), "variant", variant.ID, updates)
	utils.Success(c, "Variant updated successfully", variant)
}

// DeleteProduct soft-deletes a product by deactivating it and its
// variants. Order snapshots keep referencing the old data, so history
// is unaffected; the storefront and carts simply stop offering it.
func DeleteProduct(c *gin.Context) {
	utils.LogInfo("DeleteProduct called")

	admin, ok := adminFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&product).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.ProductVariant{}).
			Where("product_id = ?", product.ID).
			Update("is_active", false).Error
	})
	if err != nil {
		utils.LogError("Failed to deactivate product ID: %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to delete product", nil)
		return
	}

	utils.RecordActivity(models.ActorAdmin, admin.ID, utils.ActivityProductDeleted,
		fmt.Sprintf("Product %q deactivated", product.Name), "product", product.ID, nil)
	utils.LogInfo("Deactivated product ID: %d", product.ID)
	utils.Success(c, "Product deleted successfully", nil)
}

// CategoryRequest represents the request body for creating a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory adds a category
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")

	if _, ok := adminFromContext(c); !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	category := models.Category{Name: req.Name, Description: req.Description}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.Conflict(c, "Category already exists or could not be created", nil)
		return
	}
	utils.Created(c, "Category created successfully", category)
}
