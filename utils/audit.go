package utils

import (
	"encoding/json"

	"github.com/gdevgproject/shopsphere/config"
	"github.com/gdevgproject/shopsphere/models"
)

// Activity types recorded in the audit log
const (
	ActivityOrderPlaced      = "order_placed"
	ActivityOrderCancelled   = "order_cancelled"
	ActivityOrderCompleted   = "order_completed"
	ActivityOrderStatusSet   = "order_status_set"
	ActivityDiscountCreated  = "discount_created"
	ActivityDiscountUpdated  = "discount_updated"
	ActivityDiscountDisabled = "discount_disabled"
	ActivityProductCreated   = "product_created"
	ActivityProductUpdated   = "product_updated"
	ActivityProductDeleted   = "product_deleted"
	ActivityCartMerged       = "cart_merged"
)

// RecordActivity appends an entry to the activity log. It is strictly
// best-effort: failures are logged and swallowed, never propagated into
// the calling operation's result.
func RecordActivity(actorType string, actorID uint, activityType, description, entityType string, entityID uint, details interface{}) {
	var detailsJSON string
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			detailsJSON = string(raw)
		}
	}

	entry := models.ActivityLog{
		ActorType:    actorType,
		ActorID:      actorID,
		ActivityType: activityType,
		Description:  description,
		EntityType:   entityType,
		EntityID:     entityID,
		Details:      detailsJSON,
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		LogError("Failed to record activity %s for %s %d: %v", activityType, entityType, entityID, err)
	}
}
