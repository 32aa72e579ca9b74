package controllers

import (
	"fmt"
	"strconv"

	"github.com/gdevgproject/shopsphere/config"
	"github.com/gdevgproject/shopsphere/models"
	"github.com/gdevgproject/shopsphere/utils"
	"github.com/gin-gonic/gin"
)

// AdminListOrders returns all orders with status filter and pagination
func AdminListOrders(c *gin.Context) {
	utils.LogInfo("AdminListOrders called")

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

	query := config.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	var orders []models.Order
	if err := query.Preload("OrderItems").Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", nil)
		return
	}

	views := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		view := orderSummaryView(order)
		if order.UserID != nil {
			view["user_id"] = *order.UserID
		} else {
			view["guest_email"] = order.GuestEmail
		}
		views = append(views, view)
	}
	utils.SuccessWithPagination(c, "Orders retrieved successfully", views, total, page, perPage)
}

// AdminGetOrder returns any order in full
func AdminGetOrder(c *gin.Context) {
	if _, ok := adminFromContext(c); !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").Preload("User").First(&order, orderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	view := orderDetailView(order)
	if order.UserID != nil {
		view["user_id"] = *order.UserID
	} else {
		view["guest_name"] = order.GuestName
		view["guest_email"] = order.GuestEmail
		view["guest_phone"] = order.GuestPhone
	}
	utils.Success(c, "Order retrieved successfully", view)
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// UpdateOrderStatus advances an order along the fulfilment path, or
// cancels it while cancellation is still allowed. Illegal jumps are
// rejected against the transition table.
func UpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("UpdateOrderStatus called")

	admin, ok := adminFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	next := models.OrderStatus(req.Status)
	if !next.Valid() {
		utils.BadRequest(c, "Unknown order status", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("User").First(&order, orderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if next == models.OrderStatusCancelled {
		if derr := cancelOrder(&order, models.ActorAdmin, req.Reason); derr != nil {
			utils.DomainFailure(c, derr)
			return
		}
		finishCancellation(order, models.ActorAdmin, admin.ID)
		utils.Success(c, "Order cancelled successfully", gin.H{
			"order_id": order.ID,
			"status":   order.Status,
		})
		return
	}

	if !order.Status.CanTransitionTo(next) {
		derr := utils.NewDomainError(utils.ErrInvalidStatus,
			fmt.Sprintf("Cannot move order from %s to %s", order.Status, next)).
			WithMeta("current", order.Status).
			WithMeta("requested", next)
		utils.DomainFailure(c, derr)
		return
	}

	previous := order.Status
	updates := map[string]interface{}{"status": next}
	// COD orders settle on delivery
	if next == models.OrderStatusDelivered && order.PaymentMethod == models.PaymentMethodCOD &&
		order.PaymentStatus == models.PaymentStatusPending {
		updates["payment_status"] = models.PaymentStatusPaid
	}
	if err := config.DB.Model(&order).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update status for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update order status", nil)
		return
	}
	order.Status = next

	utils.RecordActivity(models.ActorAdmin, admin.ID, utils.ActivityOrderStatusSet,
		fmt.Sprintf("Order #%d moved from %s to %s", order.ID, previous, next),
		"order", order.ID, gin.H{"from": previous, "to": next})
	utils.LogInfo("Order ID: %d moved from %s to %s by admin ID: %d", order.ID, previous, next, admin.ID)
	utils.Success(c, "Order status updated successfully", gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// UpdatePaymentStatusRequest represents the request body for marking a
// payment state
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// UpdatePaymentStatus records an out-of-band payment state change, such
// as a confirmed bank transfer or a refund.
func UpdatePaymentStatus(c *gin.Context) {
	utils.LogInfo("UpdatePaymentStatus called")

	admin, ok := adminFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Admin authentication required")
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	next := models.PaymentStatus(req.PaymentStatus)
	switch next {
	case models.PaymentStatusPending, models.PaymentStatusPaid,
		models.PaymentStatusFailed, models.PaymentStatusRefunded:
	default:
		utils.BadRequest(c, "Unknown payment status", nil)
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	if err := config.DB.Model(&order).Update("payment_status", next).Error; err != nil {
		utils.LogError("Failed to update payment status for order ID: %d: %v", order.ID, err)
		utils.InternalServerError(c, "Failed to update payment status", nil)
		return
	}
	config.DB.Model(&models.Payment{}).Where("order_id = ?", order.ID).Update("status", next)

	utils.RecordActivity(models.ActorAdmin, admin.ID, utils.ActivityOrderStatusSet,
		fmt.Sprintf("Order #%d payment marked %s", order.ID, next), "order", order.ID,
		gin.H{"payment_status": next})
	utils.Success(c, "Payment status updated successfully", gin.H{
		"order_id":       order.ID,
		"payment_status": next,
	})
}
