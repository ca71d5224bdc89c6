package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Verification and account states for artisan shops.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"

	ArtisanStatusActive    = "active"
	ArtisanStatusInactive  = "inactive"
	ArtisanStatusSuspended = "suspended"
)

// DefaultCommissionRate applies to newly created shops (percent).
var DefaultCommissionRate = decimal.NewFromFloat(10.0)

// ArtisanProfile represents an artisan's shop (1:1 with User, unique user_id).
// It does not exist until the user completes onboarding; TotalSales and
// TotalOrders are maintained by the checkout transaction.
type ArtisanProfile struct {
	ID                 string
	UserID             string
	ShopName           string
	Description        *string
	Location           *string
	Specialties        []string
	YearsOfExperience  *int
	WebsiteURL         *string
	InstagramHandle    *string
	ShippingPolicy     *string
	ReturnPolicy       *string
	VerificationStatus string
	Status             string
	CommissionRate     decimal.Decimal
	TotalSales         decimal.Decimal
	TotalOrders        int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
