package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/karigarverse/karigarverse-api/internal/application/dto"
	"github.com/karigarverse/karigarverse-api/internal/application/usecase"
)

// CartHandler handles the caller's cart (protected).
type CartHandler struct {
	uc *usecase.CartUseCase
}

func NewCartHandler(uc *usecase.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get GET /api/cart
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddItem POST /api/cart/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Add(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem PUT /api/cart/items/:productID
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	productID := c.Params("productID")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "product id is required"})
	}
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateQuantity(c.Context(), GetUserID(c), productID, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem DELETE /api/cart/items/:productID
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID := c.Params("productID")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "product id is required"})
	}
	out, err := h.uc.Remove(c.Context(), GetUserID(c), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clear DELETE /api/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.Context(), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
