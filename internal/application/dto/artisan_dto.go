package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateArtisanProfileRequest partial patch for PUT /api/artisans/profile.
// Absent fields are left untouched; on first submission a full shop record is
// created and ShopName becomes required.
type UpdateArtisanProfileRequest struct {
	ShopName          *string   `json:"shop_name" validate:"omitempty,min=1,max=120"`
	Description       *string   `json:"description"`
	Location          *string   `json:"location"`
	Specialties       *[]string `json:"specialties"`
	YearsOfExperience *int      `json:"years_of_experience" validate:"omitempty,min=0,max=100"`
	WebsiteURL        *string   `json:"website_url" validate:"omitempty,url"`
	InstagramHandle   *string   `json:"instagram_handle"`
	ShippingPolicy    *string   `json:"shipping_policy"`
	ReturnPolicy      *string   `json:"return_policy"`
}

// ArtisanProfileResponse full view of an artisan shop.
type ArtisanProfileResponse struct {
	ID                 string          `json:"id"`
	UserID             string          `json:"user_id"`
	ShopName           string          `json:"shop_name"`
	Description        *string         `json:"description,omitempty"`
	Location           *string         `json:"location,omitempty"`
	Specialties        []string        `json:"specialties"`
	YearsOfExperience  *int            `json:"years_of_experience,omitempty"`
	WebsiteURL         *string         `json:"website_url,omitempty"`
	InstagramHandle    *string         `json:"instagram_handle,omitempty"`
	ShippingPolicy     *string         `json:"shipping_policy,omitempty"`
	ReturnPolicy       *string         `json:"return_policy,omitempty"`
	VerificationStatus string          `json:"verification_status"`
	Status             string          `json:"status"`
	CommissionRate     decimal.Decimal `json:"commission_rate"`
	TotalSales         decimal.Decimal `json:"total_sales"`
	TotalOrders        int             `json:"total_orders"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
