package controllers

import (
	"fmt"

	"github.com/gdevgproject/shopsphere/config"
	"github.com/gdevgproject/shopsphere/models"
	"github.com/gdevgproject/shopsphere/utils"
	"github.com/gin-gonic/gin"
)

// PreviewDiscountRequest represents the request body for a discount preview
type PreviewDiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

// PreviewDiscount prices a discount code against the current cart.
// The result is advisory only: order placement re-runs the same
// evaluator against the committed subtotal and never trusts this number.
func PreviewDiscount(c *gin.Context) {
	utils.LogInfo("PreviewDiscount called")

	store, derr := cartStoreFor(c)
	if derr != nil {
		utils.DomainFailure(c, derr)
		return
	}

	var req PreviewDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	lines, err := store.Items()
	if err != nil {
		respondDomainError(c, err)
		return
	}

	var subtotal float64
	for _, line := range lines {
		var variant models.ProductVariant
		if err := config.DB.First(&variant, line.VariantID).Error; err != nil {
			continue
		}
		subtotal += variant.UnitPrice() * float64(line.Quantity)
	}
	subtotal = utils.RoundMoney(subtotal)

	priced, derr := utils.ValidateAndPriceCode(config.DB, req.Code, subtotal)
	if derr != nil {
		if derr.Kind == utils.ErrUnknown {
			utils.LogError("Discount preview failed: %v", derr)
		}
		utils.DomainFailure(c, derr)
		return
	}

	utils.LogInfo("Previewed discount %s: %.2f off %.2f", priced.Discount.Code, priced.Amount, subtotal)
	utils.Success(c, "Discount applied", gin.H{
		"code":            priced.Discount.Code,
		"description":     priced.Discount.Description,
		"subtotal":        fmt.Sprintf("%.2f", subtotal),
		"discount_amount": fmt.Sprintf("%.2f", priced.Amount),
		"total":           fmt.Sprintf("%.2f", utils.RoundMoney(subtotal-priced.Amount)),
	})
}
