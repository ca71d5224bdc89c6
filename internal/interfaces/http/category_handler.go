package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karigarverse/karigarverse-api/internal/application/usecase"
)

// CategoryHandler handles the category catalog (public, read only).
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListActive(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
