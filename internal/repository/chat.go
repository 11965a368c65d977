package repository

import (
	"context"

	"vitrine/internal/models"

	"gorm.io/gorm"
)

// ChatRepository defines persistence operations for support chat messages.
type ChatRepository interface {
	CreateMessage(ctx context.Context, msg *models.ChatMessage) error
	History(ctx context.Context, userID string) ([]models.ChatMessage, error)
	Summaries(ctx context.Context) ([]models.ChatSummary, error)
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository returns a new ChatRepository implementation.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// History returns the full transcript for one user, oldest first.
func (r *chatRepository) History(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

// Summaries returns the latest message per user, most recent conversation
// first. The aggregation runs in SQL rather than scanning the whole log in
// process; the log is append-only, so the max id per user is the latest row.
func (r *chatRepository) Summaries(ctx context.Context) ([]models.ChatSummary, error) {
	var rows []models.ChatSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT m.user_id, m.mensagem, m.role, m.created_at
		FROM chat_messages m
		JOIN (
			SELECT user_id, MAX(id) AS id
			FROM chat_messages
			GROUP BY user_id
		) latest ON latest.id = m.id
		ORDER BY m.created_at DESC, m.id DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}
