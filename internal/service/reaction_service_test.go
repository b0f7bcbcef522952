package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReactionTestService() (*ReactionService, *MockArticleRepository, *MockLikeRepository) {
	articleRepo := new(MockArticleRepository)
	likeRepo := new(MockLikeRepository)
	return NewReactionService(articleRepo, likeRepo), articleRepo, likeRepo
}

func TestReactionLike(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, articleRepo, likeRepo := newReactionTestService()
		articleRepo.On("Exists", mock.Anything, "a1").Return(true, nil)
		likeRepo.On("Exists", mock.Anything, "a1", "u1").Return(false, nil)
		likeRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		like, err := svc.Like(ctx, "a1", "u1")
		require.NoError(t, err)
		assert.Equal(t, "a1", like.ArticleID)
		assert.Equal(t, "u1", like.UserID)
		likeRepo.AssertExpectations(t)
	})

	t.Run("ArticleMissing", func(t *testing.T) {
		svc, articleRepo, likeRepo := newReactionTestService()
		articleRepo.On("Exists", mock.Anything, "nope").Return(false, nil)

		_, err := svc.Like(ctx, "nope", "u1")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		likeRepo.AssertNotCalled(t, "Create")
	})

	t.Run("AlreadyLiked", func(t *testing.T) {
		svc, articleRepo, likeRepo := newReactionTestService()
		articleRepo.On("Exists", mock.Anything, "a1").Return(true, nil)
		likeRepo.On("Exists", mock.Anything, "a1", "u1").Return(true, nil)

		_, err := svc.Like(ctx, "a1", "u1")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
		likeRepo.AssertNotCalled(t, "Create")
	})

	t.Run("LostInsertRace", func(t *testing.T) {
		// The pre-check misses a concurrent like; the unique index rejects
		// the insert and the duplicate surfaces as a conflict.
		svc, articleRepo, likeRepo := newReactionTestService()
		articleRepo.On("Exists", mock.Anything, "a1").Return(true, nil)
		likeRepo.On("Exists", mock.Anything, "a1", "u1").Return(false, nil)
		likeRepo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

		_, err := svc.Like(ctx, "a1", "u1")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})
}

func TestReactionUnlike(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, articleRepo, likeRepo := newReactionTestService()
		articleRepo.On("Exists", mock.Anything, "a1").Return(true, nil)
		likeRepo.On("Delete", mock.Anything, "a1", "u1").Return(true, nil)

		require.NoError(t, svc.Unlike(ctx, "a1", "u1"))
	})

	t.Run("NeverLiked", func(t *testing.T) {
		svc, articleRepo, likeRepo := newReactionTestService()
		articleRepo.On("Exists", mock.Anything, "a1").Return(true, nil)
		likeRepo.On("Delete", mock.Anything, "a1", "u1").Return(false, nil)

		err := svc.Unlike(ctx, "a1", "u1")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("ArticleMissing", func(t *testing.T) {
		svc, articleRepo, likeRepo := newReactionTestService()
		articleRepo.On("Exists", mock.Anything, "gone").Return(false, nil)

		err := svc.Unlike(ctx, "gone", "u1")
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		likeRepo.AssertNotCalled(t, "Delete")
	})
}

func TestReactionStats(t *testing.T) {
	ctx := context.Background()

	t.Run("Anonymous", func(t *testing.T) {
		svc, articleRepo, likeRepo := newReactionTestService()
		articleRepo.On("Exists", mock.Anything, "a1").Return(true, nil)
		likeRepo.On("CountByArticle", mock.Anything, "a1").Return(int64(7), nil)

		stats, err := svc.Stats(ctx, "a1", "")
		require.NoError(t, err)
		assert.Equal(t, int64(7), stats.LikesCount)
		assert.Nil(t, stats.IsLikedByUser)
	})

	t.Run("WithViewer", func(t *testing.T) {
		svc, articleRepo, likeRepo := newReactionTestService()
		articleRepo.On("Exists", mock.Anything, "a1").Return(true, nil)
		likeRepo.On("CountByArticle", mock.Anything, "a1").Return(int64(3), nil)
		likeRepo.On("Exists", mock.Anything, "a1", "viewer").Return(true, nil)

		stats, err := svc.Stats(ctx, "a1", "viewer")
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.LikesCount)
		require.NotNil(t, stats.IsLikedByUser)
		assert.True(t, *stats.IsLikedByUser)
	})

	t.Run("ZeroLikesIsZeroNotAbsent", func(t *testing.T) {
		svc, articleRepo, likeRepo := newReactionTestService()
		articleRepo.On("Exists", mock.Anything, "a1").Return(true, nil)
		likeRepo.On("CountByArticle", mock.Anything, "a1").Return(int64(0), nil)

		stats, err := svc.Stats(ctx, "a1", "")
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.LikesCount)
	})
}
