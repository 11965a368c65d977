package service

import (
	"context"
	"testing"

	"vitrine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedService_AppendPost(t *testing.T) {
	t.Run("derives tipo and seeds reactions", func(t *testing.T) {
		repo := noopFeedRepo()
		var saved *models.Post
		repo.createFn = func(_ context.Context, p *models.Post) error {
			saved = p
			return nil
		}
		svc := NewFeedService(repo)

		post, err := svc.AppendPost(context.Background(), AppendPostInput{
			Texto: "bom dia",
			Foto:  "/uploads/a.jpg",
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, models.PostTipoFotoTexto, post.Tipo)

		for _, emoji := range models.ReactionEmojis {
			assert.Zero(t, post.Reactions[emoji], "live counter for %s starts at zero", emoji)
		}
		heart := post.TargetReactions[models.ReactionHeart]
		assert.GreaterOrEqual(t, heart, 100)
		assert.Less(t, heart, 120)
		inLove := post.TargetReactions[models.ReactionInLove]
		assert.GreaterOrEqual(t, inLove, 60)
		assert.Less(t, inLove, 80)
		thumbs := post.TargetReactions[models.ReactionThumbs]
		assert.GreaterOrEqual(t, thumbs, 40)
		assert.Less(t, thumbs, 60)
	})

	t.Run("rejects empty post", func(t *testing.T) {
		svc := NewFeedService(noopFeedRepo())
		_, err := svc.AppendPost(context.Background(), AppendPostInput{Texto: "   "})
		assertValidationError(t, err)
	})

	t.Run("video only", func(t *testing.T) {
		svc := NewFeedService(noopFeedRepo())
		post, err := svc.AppendPost(context.Background(), AppendPostInput{Video: "/uploads/v.mp4"})
		require.NoError(t, err)
		assert.Equal(t, models.PostTipoVideo, post.Tipo)
	})
}

func TestFeedService_AddComment(t *testing.T) {
	t.Run("unknown post", func(t *testing.T) {
		repo := noopFeedRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := NewFeedService(repo)
		_, err := svc.AddComment(context.Background(), AddCommentInput{PostID: 9, Texto: "oi"})
		assertErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("empty texto", func(t *testing.T) {
		svc := NewFeedService(noopFeedRepo())
		_, err := svc.AddComment(context.Background(), AddCommentInput{PostID: 1, Texto: " "})
		assertValidationError(t, err)
	})

	t.Run("success", func(t *testing.T) {
		repo := noopFeedRepo()
		var saved *models.Comment
		repo.addCommentFn = func(_ context.Context, c *models.Comment) error {
			saved = c
			return nil
		}
		svc := NewFeedService(repo)
		comment, err := svc.AddComment(context.Background(), AddCommentInput{PostID: 1, Autor: " fan ", Texto: "lindo"})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "fan", comment.Autor)
		assert.Equal(t, "lindo", comment.Texto)
	})
}
