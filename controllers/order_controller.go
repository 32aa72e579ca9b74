package controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdevgproject/shopsphere/config"
	"github.com/gdevgproject/shopsphere/models"
	"github.com/gdevgproject/shopsphere/utils"
	"github.com/gin-gonic/gin"
)

// orderSummaryView renders one row of an order listing
func orderSummaryView(order models.Order) gin.H {
	return gin.H{
		"id":             order.ID,
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
		"payment_method": order.PaymentMethod,
		"item_count":     len(order.OrderItems),
		"total":          fmt.Sprintf("%.2f", order.TotalAmount),
		"created_at":     order.CreatedAt,
	}
}

// orderDetailView renders a full order. Item lines come from the
// placement-time snapshots; the live catalog is consulted only to flag
// lines whose variant has since been removed or deactivated.
func orderDetailView(order models.Order) gin.H {
	var items []gin.H
	for _, item := range order.OrderItems {
		isDeleted := false
		var variant models.ProductVariant
		if err := config.DB.First(&variant, item.VariantID).Error; err != nil {
			isDeleted = true
		} else if !variant.IsActive {
			isDeleted = true
		} else {
			var product models.Product
			if err := config.DB.First(&product, variant.ProductID).Error; err != nil || !product.IsActive {
				isDeleted = true
			}
		}

		items = append(items, gin.H{
			"variant_id":   item.VariantID,
			"product_name": item.ProductName,
			"volume":       item.Volume,
			"unit_price":   fmt.Sprintf("%.2f", item.UnitPrice),
			"quantity":     item.Quantity,
			"total":        fmt.Sprintf("%.2f", item.Total),
			"is_deleted":   isDeleted,
		})
	}

	view := gin.H{
		"id":             order.ID,
		"status":         order.Status,
		"payment_status": order.PaymentStatus,
		"payment_method": order.PaymentMethod,
		"items":          items,
		"subtotal":       fmt.Sprintf("%.2f", order.SubtotalAmount),
		"discount":       fmt.Sprintf("%.2f", order.DiscountAmount),
		"shipping_fee":   fmt.Sprintf("%.2f", order.ShippingFee),
		"total":          fmt.Sprintf("%.2f", order.TotalAmount),
		"address": gin.H{
			"recipient_name":  order.RecipientName,
			"recipient_phone": order.RecipientPhone,
			"line1":           order.Line1,
			"line2":           order.Line2,
			"city":            order.City,
			"postal_code":     order.PostalCode,
		},
		"created_at": order.CreatedAt,
	}
	if order.DiscountCode != "" {
		view["discount_code"] = order.DiscountCode
	}
	if order.Status == models.OrderStatusCancelled {
		view["cancellation_reason"] = order.CancellationReason
		view["cancelled_by"] = order.CancelledBy
	}
	if order.CompletedAt != nil {
		view["completed_at"] = order.CompletedAt
	}
	return view
}

// ListOrders returns the authenticated user's orders, newest first
func ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")

	userVal, exists := c.Get("user")
	user, ok := userVal.(models.User)
	if !exists || !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	query := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	var orders []models.Order
	if err := query.Preload("OrderItems").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	views := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		views = append(views, orderSummaryView(order))
	}
	utils.SuccessWithPagination(c, "Orders retrieved successfully", views, total, page, perPage)
}

// GetOrderDetails returns one of the authenticated user's orders
func GetOrderDetails(c *gin.Context) {
	utils.LogInfo("GetOrderDetails called")

	userVal, exists := c.Get("user")
	user, ok := userVal.(models.User)
	if !exists || !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").
		Where("id = ? AND user_id = ?", orderID, user.ID).
		First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order retrieved successfully", orderDetailView(order))
}

// CancelOrderRequest carries the mandatory free-text reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// cancelOrder applies the customer-side cancellation rules and persists
// the state change. Shared by the authenticated and token-based paths.
func cancelOrder(order *models.Order, actorType, reason string) *utils.DomainError {
	if !utils.ValidateCancellationReason(reason) {
		return utils.NewDomainError(utils.ErrValidationFailed,
			fmt.Sprintf("Cancellation reason must be at least %d characters", utils.MinCancellationReasonLength))
	}
	if models.CancellationBlocked(order.PaymentStatus, order.PaymentMethod) {
		return utils.NewDomainError(utils.ErrAlreadyPaidOnline,
			"This order was already paid online. Please contact support to cancel it.")
	}
	if !order.Status.Cancellable() {
		return utils.NewDomainError(utils.ErrInvalidStatus,
			fmt.Sprintf("Order in status %s can no longer be cancelled", order.Status)).
			WithMeta("status", order.Status)
	}

	updates := map[string]interface{}{
		"status":              models.OrderStatusCancelled,
		"cancellation_reason": strings.TrimSpace(reason),
		"cancelled_by":        actorType,
	}
	if err := config.DB.Model(order).Updates(updates).Error; err != nil {
		return utils.WrapUnknown("Failed to cancel order", err)
	}
	order.Status = models.OrderStatusCancelled
	order.CancellationReason = strings.TrimSpace(reason)
	order.CancelledBy = actorType
	return nil
}

// confirmReceipt moves a delivered order to its terminal Completed state.
func confirmReceipt(order *models.Order) *utils.DomainError {
	if order.Status != models.OrderStatusDelivered {
		return utils.NewDomainError(utils.ErrInvalidStatus,
			fmt.Sprintf("Only delivered orders can be confirmed, current status is %s", order.Status)).
			WithMeta("status", order.Status)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       models.OrderStatusCompleted,
		"completed_at": now,
	}
	if err := config.DB.Model(order).Updates(updates).Error; err != nil {
		return utils.WrapUnknown("Failed to confirm receipt", err)
	}
	order.Status = models.OrderStatusCompleted
	order.CompletedAt = &now
	return nil
}

// finishCancellation records the audit entry and mails the buyer. Both
// are best-effort and never affect the response.
func finishCancellation(order models.Order, actorType string, actorID uint) {
	utils.RecordActivity(actorType, actorID, utils.ActivityOrderCancelled,
		fmt.Sprintf("Order #%d cancelled: %s", order.ID, order.CancellationReason),
		"order", order.ID, gin.H{"reason": order.CancellationReason})

	email := order.GuestEmail
	if order.User != nil {
		email = order.User.Email
	}
	if email != "" {
		go func() {
			if err := utils.SendOrderCancellation(email, order.ID, order.CancellationReason); err != nil {
				utils.LogError("Failed to send cancellation email for order ID: %d: %v", order.ID, err)
			}
		}()
	}
}

// CancelOrder cancels one of the authenticated user's orders
func CancelOrder(c *gin.Context) {
	utils.LogInfo("CancelOrder called")

	userVal, exists := c.Get("user")
	user, ok := userVal.(models.User)
	if !exists || !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").
		Where("id = ? AND user_id = ?", orderID, user.ID).
		First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if derr := cancelOrder(&order, models.ActorUser, req.Reason); derr != nil {
		utils.DomainFailure(c, derr)
		return
	}
	finishCancellation(order, models.ActorUser, user.ID)

	utils.LogInfo("Order ID: %d cancelled by user ID: %d", order.ID, user.ID)
	utils.Success(c, "Order cancelled successfully", gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// ConfirmOrderReceipt marks a delivered order as received by the buyer
func ConfirmOrderReceipt(c *gin.Context) {
	utils.LogInfo("ConfirmOrderReceipt called")

	userVal, exists := c.Get("user")
	user, ok := userVal.(models.User)
	if !exists || !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if derr := confirmReceipt(&order); derr != nil {
		utils.DomainFailure(c, derr)
		return
	}
	utils.RecordActivity(models.ActorUser, user.ID, utils.ActivityOrderCompleted,
		fmt.Sprintf("Order #%d confirmed as received", order.ID), "order", order.ID, nil)

	utils.LogInfo("Order ID: %d completed by user ID: %d", order.ID, user.ID)
	utils.Success(c, "Thank you! Order marked as completed.", gin.H{
		"order_id":     order.ID,
		"status":       order.Status,
		"completed_at": order.CompletedAt,
	})
}
