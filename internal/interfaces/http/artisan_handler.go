package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karigarverse/karigarverse-api/internal/application/artisan"
	"github.com/karigarverse/karigarverse-api/internal/application/dto"
)

// ArtisanHandler handles artisan shop profiles. The write endpoint is
// upsert-style: the first PUT creates the shop, later PUTs patch it.
type ArtisanHandler struct {
	uc *artisan.ReconcileUseCase
}

func NewArtisanHandler(uc *artisan.ReconcileUseCase) *ArtisanHandler {
	return &ArtisanHandler{uc: uc}
}

// UpdateProfile PUT /api/artisans/profile (artisan only)
func (h *ArtisanHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateArtisanProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Reconcile(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetOwnProfile GET /api/artisans/profile (artisan only)
func (h *ArtisanHandler) GetOwnProfile(c *fiber.Ctx) error {
	out, err := h.uc.GetByUserID(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/artisans/:id (public shop page)
func (h *ArtisanHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
