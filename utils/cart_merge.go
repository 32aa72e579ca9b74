package utils

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MergeMarker is the one-shot completion flag for the login-time cart
// merge. It lives alongside the session, not in module state, so it
// survives across component instances and dies with the session.
type MergeMarker interface {
	Done() bool
	MarkDone() error
}

const mergeDoneSessionKey = "cart_merged"

type sessionMergeMarker struct {
	c *gin.Context
}

// NewSessionMergeMarker returns a MergeMarker backed by the request's
// session cookie.
func NewSessionMergeMarker(c *gin.Context) MergeMarker {
	return &sessionMergeMarker{c: c}
}

func (m *sessionMergeMarker) Done() bool {
	session := sessions.Default(m.c)
	done, _ := session.Get(mergeDoneSessionKey).(bool)
	return done
}

func (m *sessionMergeMarker) MarkDone() error {
	session := sessions.Default(m.c)
	session.Set(mergeDoneSessionKey, true)
	return session.Save()
}

// MergeCarts combines the guest cart into the authenticated cart once.
// Matching variants have their quantities summed, missing ones are
// inserted; on any write failure the merge aborts without clearing the
// guest cart so a retry can resume. The marker is set before the guest
// cart is cleared: a retry after a failed clear short-circuits instead of
// double-counting the same snapshot.
func MergeCarts(guest, auth CartStore, marker MergeMarker) error {
	if marker.Done() {
		return nil
	}

	items, err := guest.Items()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return marker.MarkDone()
	}

	for _, item := range items {
		if err := auth.Add(item.VariantID, item.Quantity); err != nil {
			return err
		}
	}

	if err := marker.MarkDone(); err != nil {
		return err
	}
	if err := guest.Clear(); err != nil {
		LogError("Failed to clear guest cart after merge: %v", err)
	}
	return nil
}

// MergeGuestCartOnLogin runs the reconciler for a freshly authenticated
// user. The item writes run in one transaction so a partial merge never
// commits; the session marker bounds the merge to one attempt per login.
func MergeGuestCartOnLogin(c *gin.Context, db *gorm.DB, userID uint) error {
	deviceID := c.GetHeader("X-Device-ID")
	if deviceID == "" {
		return nil
	}

	marker := NewSessionMergeMarker(c)
	return db.Transaction(func(tx *gorm.DB) error {
		return MergeCarts(NewGuestCartStore(tx, deviceID), NewUserCartStore(tx, userID), marker)
	})
}
