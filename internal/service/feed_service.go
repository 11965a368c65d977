package service

import (
	"context"
	"math/rand"
	"strings"

	"vitrine/internal/models"
	"vitrine/internal/repository"
)

// Target reaction ranges seeded onto every new post. The frontend animates
// the live counters toward these values.
const (
	heartTargetMin  = 100
	heartTargetMax  = 120
	inLoveTargetMin = 60
	inLoveTargetMax = 80
	thumbsTargetMin = 40
	thumbsTargetMax = 60
)

type FeedService struct {
	feedRepo repository.FeedRepository
}

func NewFeedService(feedRepo repository.FeedRepository) *FeedService {
	return &FeedService{feedRepo: feedRepo}
}

type AppendPostInput struct {
	Texto string
	Foto  string
	Video string
}

func (s *FeedService) AppendPost(ctx context.Context, in AppendPostInput) (*models.Post, error) {
	texto := strings.TrimSpace(in.Texto)
	if texto == "" && in.Foto == "" && in.Video == "" {
		return nil, models.NewValidationError("Post needs texto, foto or video")
	}

	post := &models.Post{
		Tipo:            models.DerivePostTipo(texto, in.Foto, in.Video),
		Texto:           texto,
		Foto:            in.Foto,
		Video:           in.Video,
		TargetReactions: rollTargetReactions(),
		Reactions: models.ReactionSet{
			models.ReactionHeart:  0,
			models.ReactionInLove: 0,
			models.ReactionThumbs: 0,
		},
	}
	if err := s.feedRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *FeedService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.feedRepo.List(ctx)
}

func (s *FeedService) DeletePost(ctx context.Context, id uint) error {
	return s.feedRepo.Delete(ctx, id)
}

type AddCommentInput struct {
	PostID uint
	Autor  string
	Texto  string
}

func (s *FeedService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	texto := strings.TrimSpace(in.Texto)
	if texto == "" {
		return nil, models.NewValidationError("Comment texto is required")
	}
	if _, err := s.feedRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: in.PostID,
		Autor:  strings.TrimSpace(in.Autor),
		Texto:  texto,
	}
	if err := s.feedRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func rollTargetReactions() models.ReactionSet {
	return models.ReactionSet{
		models.ReactionHeart:  heartTargetMin + rand.Intn(heartTargetMax-heartTargetMin),
		models.ReactionInLove: inLoveTargetMin + rand.Intn(inLoveTargetMax-inLoveTargetMin),
		models.ReactionThumbs: thumbsTargetMin + rand.Intn(thumbsTargetMax-thumbsTargetMin),
	}
}
