package controllers

import (
	"fmt"

	"github.com/gdevgproject/shopsphere/config"
	"github.com/gdevgproject/shopsphere/models"
	"github.com/gdevgproject/shopsphere/utils"
	"github.com/gin-gonic/gin"
)

// cartStoreFor selects the cart backend once per request: the
// authenticated store when a user is in context, otherwise the guest
// store keyed by the device header. Handlers below never branch on
// authentication again.
func cartStoreFor(c *gin.Context) (utils.CartStore, *utils.DomainError) {
	if userVal, exists := c.Get("user"); exists {
		if user, ok := userVal.(models.User); ok {
			return utils.NewUserCartStore(config.DB, user.ID), nil
		}
	}
	deviceID := c.GetHeader("X-Device-ID")
	if deviceID == "" {
		return nil, utils.NewDomainError(utils.ErrUnauthorized, "Login or provide X-Device-ID for a guest cart")
	}
	return utils.NewGuestCartStore(config.DB, deviceID), nil
}

func respondDomainError(c *gin.Context, err error) {
	if de := utils.AsDomainError(err); de != nil {
		if de.Kind == utils.ErrUnknown {
			utils.LogError("Unexpected failure: %v", de)
		}
		utils.DomainFailure(c, de)
		return
	}
	utils.LogError("Unexpected failure: %v", err)
	utils.InternalServerError(c, "Something went wrong", nil)
}

// cartView loads variant details for each line and totals the cart.
func cartView(store utils.CartStore) (gin.H, float64, error) {
	lines, err := store.Items()
	if err != nil {
		return nil, 0, err
	}

	var items []gin.H
	var subtotal float64
	for _, line := range lines {
		var variant models.ProductVariant
		if err := config.DB.Preload("Product").First(&variant, line.VariantID).Error; err != nil {
			continue
		}
		unitPrice := variant.UnitPrice()
		itemTotal := utils.RoundMoney(unitPrice * float64(line.Quantity))
		subtotal += itemTotal

		items = append(items, gin.H{
			"key":          line.Key,
			"variant_id":   line.VariantID,
			"product_name": variant.Product.Name,
			"volume":       variant.Volume,
			"quantity":     line.Quantity,
			"list_price":   fmt.Sprintf("%.2f", variant.Price),
			"unit_price":   fmt.Sprintf("%.2f", unitPrice),
			"item_total":   fmt.Sprintf("%.2f", itemTotal),
			"in_stock":     variant.StockQuantity >= line.Quantity,
		})
	}

	subtotal = utils.RoundMoney(subtotal)
	return gin.H{
		"items":    items,
		"subtotal": fmt.Sprintf("%.2f", subtotal),
	}, subtotal, nil
}

// GetCart returns the current cart with totals
func GetCart(c *gin.Context) {
	store, derr := cartStoreFor(c)
	if derr != nil {
		utils.DomainFailure(c, derr)
		return
	}

	view, _, err := cartView(store)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Cart retrieved successfully", view)
}

// AddToCart adds a variant to the cart, incrementing quantity on repeats
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")

	store, derr := cartStoreFor(c)
	if derr != nil {
		utils.DomainFailure(c, derr)
		return
	}

	var req struct {
		VariantID uint `json:"variant_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if err := store.Add(req.VariantID, req.Quantity); err != nil {
		respondDomainError(c, err)
		return
	}

	view, _, err := cartView(store)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Item added to cart", view)
}

// UpdateCartItem sets the quantity of one line; zero or less removes it
func UpdateCartItem(c *gin.Context) {
	utils.LogInfo("UpdateCartItem called")

	store, derr := cartStoreFor(c)
	if derr != nil {
		utils.DomainFailure(c, derr)
		return
	}

	var req struct {
		ItemKey  uint `json:"item_key" binding:"required"`
		Quantity int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if err := store.SetQuantity(req.ItemKey, req.Quantity); err != nil {
		respondDomainError(c, err)
		return
	}

	view, _, err := cartView(store)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Cart updated", view)
}

// RemoveCartItem deletes one line from the cart
func RemoveCartItem(c *gin.Context) {
	store, derr := cartStoreFor(c)
	if derr != nil {
		utils.DomainFailure(c, derr)
		return
	}

	var req struct {
		ItemKey uint `json:"item_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if err := store.Remove(req.ItemKey); err != nil {
		respondDomainError(c, err)
		return
	}

	view, _, err := cartView(store)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Item removed from cart", view)
}

// ClearCart removes every line from the cart
func ClearCart(c *gin.Context) {
	store, derr := cartStoreFor(c)
	if derr != nil {
		utils.DomainFailure(c, derr)
		return
	}

	if err := store.Clear(); err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Cart cleared", nil)
}
