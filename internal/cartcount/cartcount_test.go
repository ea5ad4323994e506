package cartcount_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letteringshop/storefront/internal/cartcount"
)

func TestCache_GetDefaultsToZero(t *testing.T) {
	c := cartcount.New()
	assert.Zero(t, c.Get(uuid.New()))
}

func TestCache_SetAndGet(t *testing.T) {
	c := cartcount.New()
	userID := uuid.New()

	c.Set(userID, 7)
	assert.Equal(t, 7, c.Get(userID))

	c.Set(userID, 2)
	assert.Equal(t, 2, c.Get(userID))
}

func TestCache_ClearResetsToZero(t *testing.T) {
	c := cartcount.New()
	userID := uuid.New()

	c.Set(userID, 3)
	c.Clear(userID)
	assert.Zero(t, c.Get(userID))
}

func TestCache_IsolatedPerUser(t *testing.T) {
	c := cartcount.New()
	alice := uuid.New()
	bob := uuid.New()

	c.Set(alice, 4)
	c.Set(bob, 9)

	assert.Equal(t, 4, c.Get(alice))
	assert.Equal(t, 9, c.Get(bob))

	c.Clear(alice)
	assert.Zero(t, c.Get(alice))
	assert.Equal(t, 9, c.Get(bob))
}

func TestCache_SubscribeNotifiesOnSetAndClear(t *testing.T) {
	c := cartcount.New()
	userID := uuid.New()

	ch, cancel := c.Subscribe(userID)
	defer cancel()

	c.Set(userID, 1)
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected notification after Set")
	}
	require.Equal(t, 1, c.Get(userID))

	c.Clear(userID)
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected notification after Clear")
	}
	assert.Zero(t, c.Get(userID))
}

func TestCache_SubscribeOtherUserNotNotified(t *testing.T) {
	c := cartcount.New()
	alice := uuid.New()
	bob := uuid.New()

	ch, cancel := c.Subscribe(alice)
	defer cancel()

	c.Set(bob, 5)
	select {
	case <-ch:
		t.Fatal("alice must not be notified about bob's cart")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCache_CancelStopsNotifications(t *testing.T) {
	c := cartcount.New()
	userID := uuid.New()

	ch, cancel := c.Subscribe(userID)
	cancel()

	c.Set(userID, 1)
	select {
	case <-ch:
		t.Fatal("cancelled subscriber must not be notified")
	case <-time.After(50 * time.Millisecond):
	}
}
