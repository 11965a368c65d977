package repository

import (
	"context"
	"testing"
	"time"

	"vitrine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedChatMessage(t *testing.T, repo ChatRepository, userID, mensagem, role string, at time.Time) {
	t.Helper()
	msg := models.ChatMessage{
		UserID:    userID,
		Mensagem:  mensagem,
		Role:      role,
		CreatedAt: at,
	}
	require.NoError(t, repo.CreateMessage(context.Background(), &msg))
}

func TestChatRepository_HistoryOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)

	base := time.Now().UTC().Add(-time.Hour)
	seedChatMessage(t, repo, "alice", "oi", models.ChatRoleUser, base)
	seedChatMessage(t, repo, "alice", "tudo bem?", models.ChatRoleUser, base.Add(time.Minute))
	seedChatMessage(t, repo, "alice", "sim!", models.ChatRoleAssistant, base.Add(2*time.Minute))
	seedChatMessage(t, repo, "bob", "ola", models.ChatRoleUser, base.Add(30*time.Second))

	history, err := repo.History(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "oi", history[0].Mensagem)
	assert.Equal(t, "sim!", history[2].Mensagem)
}

func TestChatRepository_SummariesLatestPerUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)

	base := time.Now().UTC().Add(-time.Hour)
	// user A at t=1 and t=3, user B at t=2
	seedChatMessage(t, repo, "a", "primeira", models.ChatRoleUser, base.Add(1*time.Minute))
	seedChatMessage(t, repo, "b", "oi", models.ChatRoleUser, base.Add(2*time.Minute))
	seedChatMessage(t, repo, "a", "ultima", models.ChatRoleUser, base.Add(3*time.Minute))

	rows, err := repo.Summaries(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "a", rows[0].UserID)
	assert.Equal(t, "ultima", rows[0].Mensagem)
	assert.Equal(t, "b", rows[1].UserID)
	assert.Equal(t, "oi", rows[1].Mensagem)
}

func TestChatRepository_SummariesEmptyLog(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)

	rows, err := repo.Summaries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}
