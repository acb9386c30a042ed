package models

import (
	"time"
)

type Product struct {
	ID           int     `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name         string  `gorm:"not null"                  json:"name"`
	Description  string  `gorm:"not null"                  json:"description"`
	Price        float64 `gorm:"not null"                  json:"price"`
	UnitsInStock uint    `json:"units_in_stock"`
	CategoryID   int     `gorm:"index"                     json:"category_id"`
	SupplierID   int     `json:"supplier_id"`
	Image        string  `json:"image"`
}

type Category struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
}

type Supplier struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
	City string `json:"city"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null"                 json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

// UserDetail is the shipping profile attached to a user account. Checkout
// copies its fields into the order and never references it afterwards.
type UserDetail struct {
	UserID    uint   `gorm:"primaryKey" json:"user_id"`
	FirstName string `gorm:"not null"   json:"first_name"`
	LastName  string `gorm:"not null"   json:"last_name"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

type Order struct {
	ID         uint        `gorm:"primaryKey"     json:"id"`
	UserID     uint        `gorm:"index;not null" json:"user_id"`
	OrderDate  time.Time   `gorm:"not null"       json:"order_date"`
	ShipToName string      `gorm:"not null"       json:"ship_to_name"`
	ShipCity   string      `json:"ship_city"`
	ShipState  string      `json:"ship_state"`
	ShipZip    string      `json:"ship_zip"`
	Lines      []OrderLine `gorm:"constraint:OnDelete:CASCADE" json:"lines"`
}

// OrderLine carries the price read from the catalog at checkout time, later
// catalog price changes do not affect it.
type OrderLine struct {
	ID           uint    `gorm:"primaryKey"     json:"id"`
	OrderID      uint    `gorm:"index;not null" json:"order_id"`
	ProductID    int     `gorm:"not null"       json:"product_id"`
	Quantity     int     `gorm:"not null"       json:"quantity"`
	ProductPrice float64 `gorm:"not null"       json:"product_price"`
}
