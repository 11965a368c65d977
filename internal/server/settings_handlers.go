package server

import (
	"vitrine/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSettings handles GET /api/settings
func (s *Server) GetSettings(c *fiber.Ctx) error {
	settings, err := s.settingsService.Get(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(settings)
}

// UpdateSettings handles POST /api/settings. Empty fields in the body leave
// the stored values untouched.
func (s *Server) UpdateSettings(c *fiber.Ctx) error {
	var patch models.SettingsPatch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	settings, err := s.settingsService.Patch(c.Context(), patch)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(settings)
}
