package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCartStore is an in-memory CartStore used to exercise the merge
// logic without a database. Keys are the variant IDs.
type memCartStore struct {
	lines   map[uint]int
	failAdd bool
}

func newMemCartStore(lines map[uint]int) *memCartStore {
	if lines == nil {
		lines = map[uint]int{}
	}
	return &memCartStore{lines: lines}
}

func (s *memCartStore) Items() ([]CartLine, error) {
	var out []CartLine
	for variantID, qty := range s.lines {
		out = append(out, CartLine{Key: variantID, VariantID: variantID, Quantity: qty})
	}
	return out, nil
}

func (s *memCartStore) Add(variantID uint, quantity int) error {
	if s.failAdd {
		return fmt.Errorf("write failed")
	}
	s.lines[variantID] += quantity
	return nil
}

func (s *memCartStore) SetQuantity(itemKey uint, quantity int) error {
	if quantity <= 0 {
		delete(s.lines, itemKey)
		return nil
	}
	s.lines[itemKey] = quantity
	return nil
}

func (s *memCartStore) Remove(itemKey uint) error {
	delete(s.lines, itemKey)
	return nil
}

func (s *memCartStore) Clear() error {
	s.lines = map[uint]int{}
	return nil
}

type memMarker struct {
	done bool
}

func (m *memMarker) Done() bool { return m.done }

func (m *memMarker) MarkDone() error {
	m.done = true
	return nil
}

func TestMergeCartsSumsQuantities(t *testing.T) {
	guest := newMemCartStore(map[uint]int{5: 2, 7: 1})
	auth := newMemCartStore(map[uint]int{5: 1})
	marker := &memMarker{}

	require.NoError(t, MergeCarts(guest, auth, marker))

	assert.Equal(t, 3, auth.lines[5])
	assert.Equal(t, 1, auth.lines[7])
	assert.Empty(t, guest.lines)
	assert.True(t, marker.done)
}

func TestMergeCartsIdempotent(t *testing.T) {
	guest := newMemCartStore(map[uint]int{5: 2})
	auth := newMemCartStore(map[uint]int{5: 1})
	marker := &memMarker{}

	require.NoError(t, MergeCarts(guest, auth, marker))
	assert.Equal(t, 3, auth.lines[5])

	// A second run must not add the snapshot again, even if the guest
	// cart still held items.
	guest.lines[5] = 2
	require.NoError(t, MergeCarts(guest, auth, marker))
	assert.Equal(t, 3, auth.lines[5])
}

func TestMergeCartsAbortsOnWriteFailure(t *testing.T) {
	guest := newMemCartStore(map[uint]int{5: 2})
	auth := newMemCartStore(nil)
	auth.failAdd = true
	marker := &memMarker{}

	err := MergeCarts(guest, auth, marker)
	require.Error(t, err)

	// The guest cart survives and the marker stays unset so a retry can
	// run the merge again.
	assert.Equal(t, 2, guest.lines[5])
	assert.False(t, marker.done)
}

func TestMergeCartsEmptyGuestCart(t *testing.T) {
	guest := newMemCartStore(nil)
	auth := newMemCartStore(map[uint]int{5: 1})
	marker := &memMarker{}

	require.NoError(t, MergeCarts(guest, auth, marker))
	assert.Equal(t, 1, auth.lines[5])
	assert.True(t, marker.done)
}
