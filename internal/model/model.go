package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string // bcrypt hash, never serialized
	Phone     *string
	Address   *string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Image       string
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CartItem is one (user, product) row; Product is populated on joined reads.
type CartItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
	Product   *Product
}

type WishlistItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	CreatedAt time.Time
	Product   *Product
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              int64
	UserID          int64
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	ShippingAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []OrderItem
}

// OrderItem freezes the product price at purchase time. The Product* fields
// are filled from the products join on reads.
type OrderItem struct {
	ID              int64
	OrderID         int64
	ProductID       int64
	Quantity        int
	Price           decimal.Decimal
	CreatedAt       time.Time
	ProductName     string
	ProductImage    string
	ProductCategory string
}

type CategoryCount struct {
	Category string
	Count    int
}
