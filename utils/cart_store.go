package utils

import (
	"errors"
	"fmt"

	"github.com/gdevgproject/shopsphere/models"
	"gorm.io/gorm"
)

// CartLine is a backend-agnostic view of one cart row. Key identifies the
// line for SetQuantity/Remove: the persisted row id for user carts, the
// variant id for guest carts (which have no stable row identity).
type CartLine struct {
	Key       uint `json:"key"`
	VariantID uint `json:"variant_id"`
	Quantity  int  `json:"quantity"`
}

// CartStore is the common contract over the authenticated and the guest
// cart backends. Consumers never branch on which backend they hold; the
// implementation is selected once, at the composition boundary.
type CartStore interface {
	Items() ([]CartLine, error)
	Add(variantID uint, quantity int) error
	SetQuantity(itemKey uint, quantity int) error
	Remove(itemKey uint) error
	Clear() error
}

// NewUserCartStore returns the cart backend for an authenticated user.
func NewUserCartStore(db *gorm.DB, userID uint) CartStore {
	return &userCartStore{db: db, userID: userID}
}

// NewGuestCartStore returns the cart backend for an anonymous device.
func NewGuestCartStore(db *gorm.DB, deviceID string) CartStore {
	return &guestCartStore{db: db, deviceID: deviceID}
}

// checkVariantStock loads a sellable variant and verifies the cumulative
// requested quantity fits the available stock.
func checkVariantStock(db *gorm.DB, variantID uint, requested int) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := db.Where("id = ? AND is_active = ?", variantID, true).First(&variant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewDomainError(ErrNotFound, "Product variant not found")
		}
		return nil, WrapUnknown("Failed to load product variant", err)
	}
	if requested > variant.StockQuantity {
		return nil, NewDomainError(ErrInsufficientStock,
			fmt.Sprintf("Not enough stock. Available: %d", variant.StockQuantity)).
			WithMeta("available", variant.StockQuantity)
	}
	return &variant, nil
}

type userCartStore struct {
	db     *gorm.DB
	userID uint
}

func (s *userCartStore) Items() ([]CartLine, error) {
	var rows []models.CartItem
	if err := s.db.Where("user_id = ?", s.userID).Order("id").Find(&rows).Error; err != nil {
		return nil, WrapUnknown("Failed to fetch cart items", err)
	}
	lines := make([]CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, CartLine{Key: row.ID, VariantID: row.VariantID, Quantity: row.Quantity})
	}
	return lines, nil
}

func (s *userCartStore) Add(variantID uint, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	var existing models.CartItem
	found := s.db.Where("user_id = ? AND variant_id = ?", s.userID, variantID).
		First(&existing).Error == nil

	cumulative := quantity
	if found {
		cumulative += existing.Quantity
	}
	if _, err := checkVariantStock(s.db, variantID, cumulative); err != nil {
		return err
	}

	if found {
		existing.Quantity = cumulative
		if err := s.db.Save(&existing).Error; err != nil {
			return WrapUnknown("Failed to update cart item", err)
		}
		return nil
	}
	item := models.CartItem{UserID: s.userID, VariantID: variantID, Quantity: quantity}
	if err := s.db.Create(&item).Error; err != nil {
		return WrapUnknown("Failed to add cart item", err)
	}
	return nil
}

func (s *userCartStore) SetQuantity(itemKey uint, quantity int) error {
	var item models.CartItem
	if err := s.db.Where("id = ? AND user_id = ?", itemKey, s.userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewDomainError(ErrNotFound, "Cart item not found")
		}
		return WrapUnknown("Failed to load cart item", err)
	}
	if quantity <= 0 {
		return s.Remove(itemKey)
	}
	if _, err := checkVariantStock(s.db, item.VariantID, quantity); err != nil {
		return err
	}
	item.Quantity = quantity
	if err := s.db.Save(&item).Error; err != nil {
		return WrapUnknown("Failed to update cart item", err)
	}
	return nil
}

func (s *userCartStore) Remove(itemKey uint) error {
	result := s.db.Where("id = ? AND user_id = ?", itemKey, s.userID).Delete(&models.CartItem{})
	if result.Error != nil {
		return WrapUnknown("Failed to remove cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewDomainError(ErrNotFound, "Cart item not found")
	}
	return nil
}

func (s *userCartStore) Clear() error {
	if err := s.db.Where("user_id = ?", s.userID).Delete(&models.CartItem{}).Error; err != nil {
		return WrapUnknown("Failed to clear cart", err)
	}
	return nil
}

type guestCartStore struct {
	db       *gorm.DB
	deviceID string
}

func (s *guestCartStore) Items() ([]CartLine, error) {
	var rows []models.GuestCartItem
	if err := s.db.Where("device_id = ?", s.deviceID).Order("id").Find(&rows).Error; err != nil {
		return nil, WrapUnknown("Failed to fetch guest cart items", err)
	}
	lines := make([]CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, CartLine{Key: row.VariantID, VariantID: row.VariantID, Quantity: row.Quantity})
	}
	return lines, nil
}

func (s *guestCartStore) Add(variantID uint, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	var existing models.GuestCartItem
	found := s.db.Where("device_id = ? AND variant_id = ?", s.deviceID, variantID).
		First(&existing).Error == nil

	cumulative := quantity
	if found {
		cumulative += existing.Quantity
	}
	// Stock snapshot at add-time; the guest backend holds no lock and
	// cannot re-validate at read-time.
	if _, err := checkVariantStock(s.db, variantID, cumulative); err != nil {
		return err
	}

	if found {
		existing.Quantity = cumulative
		if err := s.db.Save(&existing).Error; err != nil {
			return WrapUnknown("Failed to update guest cart item", err)
		}
		return nil
	}
	item := models.GuestCartItem{DeviceID: s.deviceID, VariantID: variantID, Quantity: quantity}
	if err := s.db.Create(&item).Error; err != nil {
		return WrapUnknown("Failed to add guest cart item", err)
	}
	return nil
}

func (s *guestCartStore) SetQuantity(itemKey uint, quantity int) error {
	var item models.GuestCartItem
	if err := s.db.Where("device_id = ? AND variant_id = ?", s.deviceID, itemKey).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewDomainError(ErrNotFound, "Cart item not found")
		}
		return WrapUnknown("Failed to load guest cart item", err)
	}
	if quantity <= 0 {
		return s.Remove(itemKey)
	}
	if _, err := checkVariantStock(s.db, item.VariantID, quantity); err != nil {
		return err
	}
	item.Quantity = quantity
	if err := s.db.Save(&item).Error; err != nil {
		return WrapUnknown("Failed to update guest cart item", err)
	}
	return nil
}

func (s *guestCartStore) Remove(itemKey uint) error {
	result := s.db.Where("device_id = ? AND variant_id = ?", s.deviceID, itemKey).Delete(&models.GuestCartItem{})
	if result.Error != nil {
		return WrapUnknown("Failed to remove guest cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return NewDomainError(ErrNotFound, "Cart item not found")
	}
	return nil
}

func (s *guestCartStore) Clear() error {
	if err := s.db.Where("device_id = ?", s.deviceID).Delete(&models.GuestCartItem{}).Error; err != nil {
		return WrapUnknown("Failed to clear guest cart", err)
	}
	return nil
}
