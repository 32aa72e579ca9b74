package controllers

import (
	"fmt"
	"strings"

	"github.com/gdevgproject/shopsphere/config"
	"github.com/gdevgproject/shopsphere/models"
	"github.com/gdevgproject/shopsphere/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShippingAddressRequest is the address snapshot captured at order time
type ShippingAddressRequest struct {
	RecipientName  string `json:"recipient_name" binding:"required"`
	RecipientPhone string `json:"recipient_phone" binding:"required"`
	Line1          string `json:"line1" binding:"required"`
	Line2          string `json:"line2"`
	City           string `json:"city" binding:"required"`
	PostalCode     string `json:"postal_code"`
}

// GuestItemRequest is one line of a guest checkout
type GuestItemRequest struct {
	VariantID uint `json:"variant_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

// PlaceOrderRequest represents the request body for placing an order.
// Authenticated buyers select a subset of their cart rows by id; guests
// send the items directly since they hold no server cart rows to select.
type PlaceOrderRequest struct {
	ItemIDs       []uint                 `json:"item_ids"`
	Items         []GuestItemRequest     `json:"items"`
	Address       ShippingAddressRequest `json:"address" binding:"required"`
	PaymentMethod string                 `json:"payment_method" binding:"required"`
	DiscountCode  string                 `json:"discount_code"`
	GuestName     string                 `json:"guest_name"`
	GuestEmail    string                 `json:"guest_email"`
	GuestPhone    string                 `json:"guest_phone"`
}

// GetCheckoutSummary prices the current cart ahead of placement
func GetCheckoutSummary(c *gin.Context) {
	utils.LogInfo("GetCheckoutSummary called")

	store, derr := cartStoreFor(c)
	if derr != nil {
		utils.DomainFailure(c, derr)
		return
	}

	view, subtotal, err := cartView(store)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	shippingFee := utils.CalculateShippingFee(subtotal)

	utils.Success(c, "Checkout summary retrieved successfully", gin.H{
		"cart":         view["items"],
		"can_checkout": view["items"] != nil,
		"subtotal":     fmt.Sprintf("%.2f", subtotal),
		"shipping_fee": fmt.Sprintf("%.2f", shippingFee),
		"total":        fmt.Sprintf("%.2f", utils.RoundMoney(subtotal+shippingFee)),
	})
}

// PlaceOrder atomically creates an order, its item snapshots and its
// payment record from the selected items, then removes only those items
// from the source cart. Stock is checked under row locks inside the same
// transaction; it is decremented later by fulfilment, never here.
func PlaceOrder(c *gin.Context) {
	utils.LogInfo("PlaceOrder called")

	var user *models.User
	if userVal, exists := c.Get("user"); exists {
		if u, ok := userVal.(models.User); ok {
			user = &u
		}
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid place order request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	paymentMethod := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if paymentMethod != models.PaymentMethodCOD && paymentMethod != models.PaymentMethodOnline {
		utils.BadRequest(c, "Invalid payment method. Must be one of: cod, online", nil)
		return
	}

	if user == nil {
		if req.GuestName == "" || !utils.ValidateEmail(req.GuestEmail) || !utils.ValidatePhone(req.GuestPhone) {
			utils.ValidationError(c, "Guest name, a valid email and phone are required", nil)
			return
		}
		if len(req.Items) == 0 {
			utils.BadRequest(c, "No items to order", nil)
			return
		}
	} else if len(req.ItemIDs) == 0 {
		utils.BadRequest(c, "Select at least one cart item to order", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	// Resolve the selection into (variant, quantity) pairs
	type selection struct {
		variantID uint
		quantity  int
	}
	var selections []selection

	if user != nil {
		var cartRows []models.CartItem
		if err := tx.Where("id IN ? AND user_id = ?", req.ItemIDs, user.ID).Find(&cartRows).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to load cart items for user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, "Failed to load cart items", nil)
			return
		}
		if len(cartRows) != len(req.ItemIDs) {
			tx.Rollback()
			utils.NotFound(c, "One or more selected cart items were not found")
			return
		}
		for _, row := range cartRows {
			selections = append(selections, selection{variantID: row.VariantID, quantity: row.Quantity})
		}
	} else {
		for _, item := range req.Items {
			selections = append(selections, selection{variantID: item.VariantID, quantity: item.Quantity})
		}
	}

	// Re-validate existence and stock under row locks, collecting every
	// offender instead of stopping at the first.
	var selected []utils.SelectedItem
	var missing []uint
	for _, sel := range selections {
		var variant models.ProductVariant
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&variant, sel.variantID).Error; err != nil {
			missing = append(missing, sel.variantID)
			continue
		}
		if err := tx.First(&variant.Product, variant.ProductID).Error; err != nil {
			missing = append(missing, sel.variantID)
			continue
		}
		selected = append(selected, utils.SelectedItem{Variant: variant, Quantity: sel.quantity})
	}
	if len(missing) > 0 {
		tx.Rollback()
		derr := utils.NewDomainError(utils.ErrInsufficientStock, "Some items are no longer available").
			WithMeta("missing_variants", missing)
		utils.DomainFailure(c, derr)
		return
	}
	if derr := utils.CheckStock(selected); derr != nil {
		tx.Rollback()
		utils.DomainFailure(c, derr)
		return
	}

	subtotal := utils.ComputeSubtotal(selected)

	// Authoritative discount evaluation against the committed subtotal;
	// the preview amount from the client is never used.
	var discountAmount float64
	var discountID *uint
	var discountCode string
	if req.DiscountCode != "" {
		priced, derr := utils.ValidateAndPriceCode(tx, req.DiscountCode, subtotal)
		if derr != nil {
			tx.Rollback()
			if derr.Kind == utils.ErrUnknown {
				utils.LogError("Discount evaluation failed: %v", derr)
			}
			utils.DomainFailure(c, derr)
			return
		}
		discountAmount = priced.Amount
		discountID = &priced.Discount.ID
		discountCode = priced.Discount.Code

		if priced.Discount.MaxUses != nil {
			res := tx.Model(&models.Discount{}).
				Where("id = ? AND remaining_uses > 0", priced.Discount.ID).
				UpdateColumn("remaining_uses", gorm.Expr("remaining_uses - 1"))
			if res.Error != nil {
				tx.Rollback()
				utils.LogError("Failed to consume discount use for code %s: %v", discountCode, res.Error)
				utils.InternalServerError(c, "Failed to apply discount", nil)
				return
			}
			if res.RowsAffected == 0 {
				tx.Rollback()
				utils.DomainFailure(c, utils.NewDomainError(utils.ErrExhaustedUses, "Discount has no uses left"))
				return
			}
		}
	}

	shippingFee := utils.CalculateShippingFee(subtotal)
	totalAmount := utils.RoundMoney(subtotal - discountAmount + shippingFee)

	accessToken, err := utils.GenerateOrderToken()
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to generate order token: %v", err)
		utils.InternalServerError(c, "Failed to create order", nil)
		return
	}

	order := models.Order{
		AccessToken:    accessToken,
		RecipientName:  req.Address.RecipientName,
		RecipientPhone: req.Address.RecipientPhone,
		Line1:          req.Address.Line1,
		Line2:          req.Address.Line2,
		City:           req.Address.City,
		PostalCode:     req.Address.PostalCode,
		SubtotalAmount: subtotal,
		DiscountAmount: discountAmount,
		ShippingFee:    shippingFee,
		TotalAmount:    totalAmount,
		PaymentMethod:  paymentMethod,
		PaymentStatus:  models.PaymentStatusPending,
		Status:         models.OrderStatusPending,
		DiscountID:     discountID,
		DiscountCode:   discountCode,
		OrderItems:     utils.BuildOrderItems(selected),
	}
	if user != nil {
		order.UserID = &user.ID
	} else {
		order.GuestName = req.GuestName
		order.GuestEmail = strings.ToLower(strings.TrimSpace(req.GuestEmail))
		order.GuestPhone = req.GuestPhone
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order: %v", err)
		utils.InternalServerError(c, "Failed to create order", nil)
		return
	}
	utils.LogInfo("Created order ID: %d, total: %.2f", order.ID, order.TotalAmount)

	payment := models.Payment{
		OrderID: order.ID,
		Method:  paymentMethod,
		Amount:  totalAmount,
		Status:  models.PaymentStatusPending,
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create payment for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to create payment record", nil)
		return
	}

	// Remove only the successfully ordered rows from the source cart
	if user != nil {
		if err := tx.Where("id IN ? AND user_id = ?", req.ItemIDs, user.ID).Delete(&models.CartItem{}).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to remove ordered items from cart for user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, "Failed to update cart", nil)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit order transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	actorType, actorID := models.ActorGuest, uint(0)
	if user != nil {
		actorType, actorID = models.ActorUser, user.ID
	}
	utils.RecordActivity(actorType, actorID, utils.ActivityOrderPlaced,
		fmt.Sprintf("Order #%d placed, total %.2f", order.ID, order.TotalAmount),
		"order", order.ID, gin.H{"payment_method": paymentMethod, "discount_code": discountCode})

	email := order.GuestEmail
	if user != nil {
		email = user.Email
	}
	if email != "" {
		go func() {
			if err := utils.SendOrderConfirmation(email, order.ID, order.TotalAmount, order.AccessToken); err != nil {
				utils.LogError("Failed to send order confirmation for order ID: %d: %v", order.ID, err)
			}
		}()
	}

	utils.LogInfo("Order placed successfully, ID: %d, payment method: %s", order.ID, paymentMethod)
	utils.Created(c, "Thank you for shopping with us! Your order has been placed successfully.", gin.H{
		"order_id":        order.ID,
		"access_token":    order.AccessToken,
		"status":          order.Status,
		"payment_status":  order.PaymentStatus,
		"payment_method":  order.PaymentMethod,
		"subtotal":        fmt.Sprintf("%.2f", order.SubtotalAmount),
		"discount_amount": fmt.Sprintf("%.2f", order.DiscountAmount),
		"shipping_fee":    fmt.Sprintf("%.2f", order.ShippingFee),
		"total":           fmt.Sprintf("%.2f", order.TotalAmount),
	})
}
