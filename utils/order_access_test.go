package utils

import (
	"testing"

	"github.com/gdevgproject/shopsphere/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrUint(v uint) *uint { return &v }

func TestResolveOrderActorOwner(t *testing.T) {
	order := models.Order{UserID: ptrUint(42)}

	actorType, actorID, derr := ResolveOrderActor(order, ptrUint(42), false)
	require.Nil(t, derr)
	assert.Equal(t, models.ActorUser, actorType)
	assert.Equal(t, uint(42), actorID)
}

func TestResolveOrderActorOwnerPrecedenceOverToken(t *testing.T) {
	// A logged-in owner arriving via the access token is still the owner
	order := models.Order{UserID: ptrUint(42)}

	actorType, actorID, derr := ResolveOrderActor(order, ptrUint(42), true)
	require.Nil(t, derr)
	assert.Equal(t, models.ActorUser, actorType)
	assert.Equal(t, uint(42), actorID)
}

func TestResolveOrderActorTokenHolder(t *testing.T) {
	order := models.Order{UserID: ptrUint(42)}

	actorType, actorID, derr := ResolveOrderActor(order, nil, true)
	require.Nil(t, derr)
	assert.Equal(t, models.ActorGuest, actorType)
	assert.Equal(t, uint(0), actorID)
}

func TestResolveOrderActorNonOwnerWithToken(t *testing.T) {
	// A different logged-in user holding the token acts as a guest
	order := models.Order{UserID: ptrUint(42)}

	actorType, _, derr := ResolveOrderActor(order, ptrUint(7), true)
	require.Nil(t, derr)
	assert.Equal(t, models.ActorGuest, actorType)
}

func TestResolveOrderActorNonOwnerWithoutToken(t *testing.T) {
	// Without the token a non-owner learns nothing, not even existence
	order := models.Order{UserID: ptrUint(42)}

	_, _, derr := ResolveOrderActor(order, ptrUint(7), false)
	require.NotNil(t, derr)
	assert.Equal(t, ErrNotFound, derr.Kind)
}

func TestResolveOrderActorAnonymousWithoutToken(t *testing.T) {
	order := models.Order{UserID: ptrUint(42)}

	_, _, derr := ResolveOrderActor(order, nil, false)
	require.NotNil(t, derr)
	assert.Equal(t, ErrUnauthorized, derr.Kind)
}

func TestResolveOrderActorGuestOrder(t *testing.T) {
	order := models.Order{UserID: nil}

	actorType, _, derr := ResolveOrderActor(order, nil, true)
	require.Nil(t, derr)
	assert.Equal(t, models.ActorGuest, actorType)

	// A logged-in user holding a guest order's token is a guest actor
	actorType, _, derr = ResolveOrderActor(order, ptrUint(7), true)
	require.Nil(t, derr)
	assert.Equal(t, models.ActorGuest, actorType)
}
