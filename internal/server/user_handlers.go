package server

import (
	"context"
	"net/url"
	"time"

	"vitrine/internal/models"
	"vitrine/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateUser handles POST /api/create-user
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		Login string `json:"login"`
		Senha string `json:"senha"`
		Plano string `json:"plano"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CreateUser(c.Context(), service.CreateUserInput{
		Email: req.Email,
		Login: req.Login,
		Senha: req.Senha,
		Plano: req.Plano,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		Senha string `json:"senha"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, token, err := s.userService.Login(c.Context(), req.Email, req.Senha)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/logout
func (s *Server) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals("sessionToken").(string)
	if err := s.userService.Logout(c.Context(), token); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// ListUsers handles GET /api/list-users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	users, err := s.userService.ListUsers(ctx)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(users)
}

// EditUser handles POST /api/edit-user/:email
func (s *Server) EditUser(c *fiber.Ctx) error {
	// Fiber leaves route params percent-encoded.
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid email parameter"))
	}

	var req struct {
		Email  string `json:"email"`
		Login  string `json:"login"`
		Senha  string `json:"senha"`
		Plano  string `json:"plano"`
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.EditByEmail(c.Context(), email, service.EditUserInput{
		Email:  req.Email,
		Login:  req.Login,
		Senha:  req.Senha,
		Plano:  req.Plano,
		Status: req.Status,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}
