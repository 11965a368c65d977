package server

import (
	"errors"

	"vitrine/internal/models"
	"vitrine/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendChatMessage handles POST /api/chat. Regular users always write into
// their own conversation; admins address a user's conversation explicitly.
func (s *Server) SendChatMessage(c *fiber.Ctx) error {
	var req struct {
		User     string `json:"user"`
		Mensagem string `json:"mensagem"`
		From     string `json:"from"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	sender := currentUser(c)
	in := service.SendMessageInput{
		UserID:   req.User,
		Mensagem: req.Mensagem,
	}
	if sender != nil {
		if sender.IsAdmin && req.From == "admin" {
			in.From = "admin"
			in.AdminID = sender.Login
		} else {
			in.UserID = sender.Login
		}
	}

	msg, err := s.chatService.SendMessage(c.Context(), in)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetChatList handles GET /api/chat/list. It returns one row per user with
// that user's latest message, newest conversation first. Admin only: the
// summaries span every subscriber's private conversation.
func (s *Server) GetChatList(c *fiber.Ctx) error {
	if sender := currentUser(c); sender == nil || !sender.IsAdmin {
		return models.RespondWithAppError(c,
			models.NewForbiddenError("admin access required"))
	}

	summaries, err := s.chatService.Summaries(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(summaries)
}

// GetChatHistory handles GET /api/chat/:user. Subscribers only read their own
// transcript regardless of the path param; admins read any conversation.
func (s *Server) GetChatHistory(c *fiber.Ctx) error {
	userID := c.Params("user")
	if sender := currentUser(c); sender != nil && !sender.IsAdmin {
		userID = sender.Login
	}

	history, err := s.chatService.History(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(history)
}

// AIChatReply handles POST /api/chat/ia. Ships enabled; the chat_ia flag is
// an emergency shutoff.
func (s *Server) AIChatReply(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	if !s.featureFlags.EnabledOrDefault("chat_ia", true, userID) {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			errors.New("AI replies are temporarily disabled"))
	}

	var req struct {
		User     string `json:"user"`
		Mensagem string `json:"mensagem"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Regular users only get replies in their own conversation.
	if sender := currentUser(c); sender != nil && !sender.IsAdmin {
		req.User = sender.Login
	}

	msg, err := s.chatService.AIReply(c.Context(), req.User, req.Mensagem)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
