package utils

import (
	"github.com/gdevgproject/shopsphere/models"
)

// ResolveOrderActor decides who a state-machine action is attributed to.
// A logged-in owner always takes the owner path, even when arriving
// through the order's access token, so audit attribution stays correct.
// A token holder who is not the owner acts as a guest. Anyone else is
// refused.
func ResolveOrderActor(order models.Order, authedUserID *uint, viaToken bool) (string, uint, *DomainError) {
	if authedUserID != nil && order.UserID != nil && *order.UserID == *authedUserID {
		return models.ActorUser, *authedUserID, nil
	}
	if viaToken {
		return models.ActorGuest, 0, nil
	}
	if authedUserID != nil {
		// Authenticated but not the owner: do not reveal that the
		// order exists.
		return "", 0, NewDomainError(ErrNotFound, "Order not found")
	}
	return "", 0, NewDomainError(ErrUnauthorized, "Authentication required")
}
