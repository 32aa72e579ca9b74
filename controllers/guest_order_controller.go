package controllers

import (
	"fmt"

	"github.com/gdevgproject/shopsphere/config"
	"github.com/gdevgproject/shopsphere/models"
	"github.com/gdevgproject/shopsphere/utils"
	"github.com/gin-gonic/gin"
)

// loadOrderByToken resolves an order from its opaque access token and
// decides who the caller acts as. Lookup is an exact match on the stored
// token; there is no prefix or fuzzy form. A logged-in owner arriving on
// this path is attributed as the owner, not as a token holder.
func loadOrderByToken(c *gin.Context) (*models.Order, string, uint, *utils.DomainError) {
	token := c.Param("token")
	if token == "" {
		return nil, "", 0, utils.NewDomainError(utils.ErrNotFound, "Order not found")
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").Preload("User").
		Where("access_token = ?", token).First(&order).Error; err != nil {
		return nil, "", 0, utils.NewDomainError(utils.ErrNotFound, "Order not found")
	}

	var authedUserID *uint
	if userVal, exists := c.Get("user"); exists {
		if user, ok := userVal.(models.User); ok {
			authedUserID = &user.ID
		}
	}

	actorType, actorID, derr := utils.ResolveOrderActor(order, authedUserID, true)
	if derr != nil {
		return nil, "", 0, derr
	}
	return &order, actorType, actorID, nil
}

// GetOrderByToken returns an order to whoever holds its access token
func GetOrderByToken(c *gin.Context) {
	utils.LogInfo("GetOrderByToken called")

	order, _, _, derr := loadOrderByToken(c)
	if derr != nil {
		utils.DomainFailure(c, derr)
		return
	}
	utils.Success(c, "Order retrieved successfully", orderDetailView(*order))
}

// CancelOrderByToken cancels an order through its access token
func CancelOrderByToken(c *gin.Context) {
	utils.LogInfo("CancelOrderByToken called")

	order, actorType, actorID, derr := loadOrderByToken(c)
	if derr != nil {
		utils.DomainFailure(c, derr)
		return
	}

	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if derr := cancelOrder(order, actorType, req.Reason); derr != nil {
		utils.DomainFailure(c, derr)
		return
	}
	finishCancellation(*order, actorType, actorID)

	utils.LogInfo("Order ID: %d cancelled via access token as %s", order.ID, actorType)
	utils.Success(c, "Order cancelled successfully", gin.H{
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// ConfirmOrderReceiptByToken completes a delivered order through its
// access token
func ConfirmOrderReceiptByToken(c *gin.Context) {
	utils.LogInfo("ConfirmOrderReceiptByToken called")

	order, actorType, actorID, derr := loadOrderByToken(c)
	if derr != nil {
		utils.DomainFailure(c, derr)
		return
	}

	if derr := confirmReceipt(order); derr != nil {
		utils.DomainFailure(c, derr)
		return
	}
	utils.RecordActivity(actorType, actorID, utils.ActivityOrderCompleted,
		fmt.Sprintf("Order #%d confirmed as received", order.ID), "order", order.ID, nil)

	utils.LogInfo("Order ID: %d completed via access token as %s", order.ID, actorType)
	utils.Success(c, "Thank you! Order marked as completed.", gin.H{
		"order_id":     order.ID,
		"status":       order.Status,
		"completed_at": order.CompletedAt,
	})
}
