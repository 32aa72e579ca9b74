package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a regular user in the system
type User struct {
	gorm.Model
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	IsBlocked   bool      `json:"is_blocked"`
	IsAdmin     bool      `json:"is_admin" gorm:"default:false"`
	LastLoginAt time.Time `json:"last_login_at"`
	GoogleID    string    `gorm:"unique;default:null" json:"google_id"`
}

// Admin represents an administrator in the system
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// Category represents a product category
type Category struct {
	gorm.Model
	Name        string    `json:"name" gorm:"uniqueIndex"`
	Description string    `json:"description"`
	Products    []Product `json:"products,omitempty"`
}

// Product represents a catalog product; purchasable units are its variants
type Product struct {
	gorm.Model
	Name        string           `json:"name"`
	Brand       string           `json:"brand"`
	Description string           `json:"description"`
	CategoryID  uint             `json:"category_id"`
	Category    Category         `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	ImageURL    string           `json:"image_url"`
	IsActive    bool             `json:"is_active" gorm:"default:true"`
	Variants    []ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductVariant is a purchasable SKU of a product, carrying its own
// price and stock. Volume is in milliliters.
type ProductVariant struct {
	gorm.Model
	ProductID     uint    `json:"product_id" gorm:"index"`
	Product       Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Volume        int     `json:"volume"`
	Price         float64 `json:"price"`
	SalePrice     float64 `json:"sale_price"`
	StockQuantity int     `json:"stock_quantity"`
	IsActive      bool    `json:"is_active" gorm:"default:true"`
}

// UnitPrice returns the price a buyer actually pays for the variant:
// the sale price when one is set and lower than the list price.
func (v ProductVariant) UnitPrice() float64 {
	if v.SalePrice > 0 && v.SalePrice < v.Price {
		return v.SalePrice
	}
	return v.Price
}
