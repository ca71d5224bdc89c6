package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. The lifecycle is linear (pending → processing → shipped →
// delivered) with cancellation possible from pending or processing.
// Delivered and cancelled are terminal.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment statuses for the order header.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// orderTransitions lists the allowed next statuses per current status.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusShipped, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// CanTransitionOrderStatus reports whether an order (or order item) may move
// from one status to another. Terminal states admit no transition.
func CanTransitionOrderStatus(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus reports whether a status admits no further transition.
func IsTerminalOrderStatus(s string) bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Address is a structured shipping or billing address, stored as JSONB.
type Address struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Order is the header of a placed order. The monetary identity
// TotalAmount = Subtotal + TaxAmount + ShippingCost - DiscountAmount is
// upheld by the checkout transaction, not by the database.
type Order struct {
	ID              string
	OrderNumber     string // unique, never reused
	CustomerID      string
	Status          string
	PaymentStatus   string
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	ShippingCost    decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	ShippingAddress Address
	BillingAddress  *Address
	PaymentMethod   string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
