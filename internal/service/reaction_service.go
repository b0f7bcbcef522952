package service

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// ReactionService implements the like/unlike toggle and per-article stats.
// At most one like exists per (user, article) pair; the storage layer's
// uniqueness constraint is the serializing point across processes, the
// pre-check here is only a fast path.
type ReactionService struct {
	articleRepo repository.ArticleRepository
	likeRepo    repository.LikeRepository
}

// NewReactionService creates a new reaction service.
func NewReactionService(articleRepo repository.ArticleRepository, likeRepo repository.LikeRepository) *ReactionService {
	return &ReactionService{articleRepo: articleRepo, likeRepo: likeRepo}
}

// Like creates the like row for the pair. A pair that is already liked is a
// Conflict, not a silent success: callers must be able to tell the two apart.
func (s *ReactionService) Like(ctx context.Context, articleID, userID string) (*models.Like, error) {
	span, ctx := observability.NewSpan(ctx, "reaction.like")
	defer span.End()
	span.AddAttributes(attribute.String("article.id", articleID))

	if err := s.ensureArticle(ctx, articleID); err != nil {
		return nil, err
	}

	// Fast path: skip the insert round-trip when the pair is already liked.
	exists, err := s.likeRepo.Exists(ctx, articleID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError("Article already liked by user")
	}

	like := &models.Like{ArticleID: articleID, UserID: userID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		if repository.IsDuplicateKey(err) {
			// Lost the race to a concurrent like; the unique index decides.
			return nil, models.NewConflictError("Article already liked by user")
		}
		return nil, err
	}

	cache.InvalidateArticle(ctx, articleID)
	cache.InvalidateFeed(ctx)
	return like, nil
}

// Unlike deletes the like row for the pair; a pair that was never liked is
// NotFound.
func (s *ReactionService) Unlike(ctx context.Context, articleID, userID string) error {
	span, ctx := observability.NewSpan(ctx, "reaction.unlike")
	defer span.End()
	span.AddAttributes(attribute.String("article.id", articleID))

	if err := s.ensureArticle(ctx, articleID); err != nil {
		return err
	}

	deleted, err := s.likeRepo.Delete(ctx, articleID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Like", articleID)
	}

	cache.InvalidateArticle(ctx, articleID)
	cache.InvalidateFeed(ctx)
	return nil
}

// Stats returns the like count for the article and, when a viewer identity is
// supplied, whether that viewer has liked it. Anonymous stats are served
// cache-aside.
func (s *ReactionService) Stats(ctx context.Context, articleID, viewerID string) (*models.LikeStats, error) {
	if err := s.ensureArticle(ctx, articleID); err != nil {
		return nil, err
	}

	if viewerID == "" {
		var stats models.LikeStats
		err := cache.Aside(ctx, cache.StatsKey(articleID), &stats, cache.StatsTTL, func() error {
			count, countErr := s.likeRepo.CountByArticle(ctx, articleID)
			if countErr != nil {
				return countErr
			}
			stats = models.LikeStats{ArticleID: articleID, LikesCount: count}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &stats, nil
	}

	count, err := s.likeRepo.CountByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	liked, err := s.likeRepo.Exists(ctx, articleID, viewerID)
	if err != nil {
		return nil, err
	}
	return &models.LikeStats{
		ArticleID:     articleID,
		LikesCount:    count,
		IsLikedByUser: &liked,
	}, nil
}

func (s *ReactionService) ensureArticle(ctx context.Context, articleID string) error {
	exists, err := s.articleRepo.Exists(ctx, articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Article", articleID)
		}
		return err
	}
	if !exists {
		return models.NewNotFoundError("Article", articleID)
	}
	return nil
}
