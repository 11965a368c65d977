package server

import (
	"errors"

	"vitrine/internal/models"

	"github.com/gofiber/fiber/v2"
)

type checkoutRequest struct {
	Plano string `json:"plano"`
	Email string `json:"email"`
}

// CreatePixSimulado handles POST /api/pix/create through the default
// provider, which is the simulated gateway unless PIX_PROVIDER says otherwise.
func (s *Server) CreatePixSimulado(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	checkout, err := s.checkoutService.Create(c.Context(), req.Plano, req.Email)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(checkout)
}

// CreatePixBestfy handles POST /api/pix/bestfy. Ships enabled; the
// pix_bestfy flag is an emergency shutoff.
func (s *Server) CreatePixBestfy(c *fiber.Ctx) error {
	if !s.featureFlags.EnabledOrDefault("pix_bestfy", true, 0) {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			errors.New("Bestfy checkout is temporarily disabled"))
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	checkout, err := s.checkoutService.CreateBestfy(c.Context(), req.Plano, req.Email)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(checkout)
}
