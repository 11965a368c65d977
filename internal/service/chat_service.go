package service

import (
	"context"
	"strings"

	"vitrine/internal/models"
	"vitrine/internal/repository"
)

// CompletionProvider drafts assistant replies from a persona and a
// conversation transcript.
type CompletionProvider interface {
	Complete(ctx context.Context, apiKey, persona, transcript string) (string, error)
}

type ChatService struct {
	chatRepo     repository.ChatRepository
	settingsRepo repository.SettingsRepository
	completion   CompletionProvider
}

func NewChatService(chatRepo repository.ChatRepository, settingsRepo repository.SettingsRepository, completion CompletionProvider) *ChatService {
	return &ChatService{chatRepo: chatRepo, settingsRepo: settingsRepo, completion: completion}
}

type SendMessageInput struct {
	UserID   string
	AdminID  string
	Mensagem string
	From     string
}

// SendMessage appends one message to a user's conversation. Messages sent by
// the admin are recorded with the assistant role so the transcript reads as
// one two-party conversation regardless of who typed the reply.
func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (*models.ChatMessage, error) {
	mensagem := strings.TrimSpace(in.Mensagem)
	if in.UserID == "" || mensagem == "" {
		return nil, models.NewValidationError("UserID and mensagem are required")
	}

	role := models.ChatRoleUser
	if in.From == "admin" {
		role = models.ChatRoleAssistant
	}

	msg := &models.ChatMessage{
		UserID:   in.UserID,
		AdminID:  in.AdminID,
		Mensagem: mensagem,
		Role:     role,
	}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ChatService) History(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	if userID == "" {
		return nil, models.NewValidationError("UserID is required")
	}
	return s.chatRepo.History(ctx, userID)
}

func (s *ChatService) Summaries(ctx context.Context) ([]models.ChatSummary, error) {
	return s.chatRepo.Summaries(ctx)
}

// AIReply records the user's message and asks the completion provider for an
// assistant reply over the full conversation, persisting both sides. The
// persona and API key come from the profile settings.
func (s *ChatService) AIReply(ctx context.Context, userID, mensagem string) (*models.ChatMessage, error) {
	mensagem = strings.TrimSpace(mensagem)
	if userID == "" || mensagem == "" {
		return nil, models.NewValidationError("UserID and mensagem are required")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings.IAKey == "" || settings.IAPersona == "" {
		return nil, models.NewConfigMissingError("IA persona or key not configured")
	}

	inbound := &models.ChatMessage{
		UserID:   userID,
		Mensagem: mensagem,
		Role:     models.ChatRoleUser,
	}
	if err := s.chatRepo.CreateMessage(ctx, inbound); err != nil {
		return nil, err
	}

	history, err := s.chatRepo.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	reply, err := s.completion.Complete(ctx, settings.IAKey, settings.IAPersona, buildTranscript(history))
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	msg := &models.ChatMessage{
		UserID:   userID,
		Mensagem: reply,
		Role:     models.ChatRoleAssistant,
	}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func buildTranscript(history []models.ChatMessage) string {
	var b strings.Builder
	for _, msg := range history {
		b.WriteString(msg.Role)
		b.WriteString(": ")
		b.WriteString(msg.Mensagem)
		b.WriteString("\n")
	}
	return b.String()
}
