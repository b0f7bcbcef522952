package repository

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations. Like rows
// are written here and nowhere else.
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, articleID, userID string) (bool, error)
	Exists(ctx context.Context, articleID, userID string) (bool, error)
	CountByArticle(ctx context.Context, articleID string) (int64, error)
	LikedArticleIDs(ctx context.Context, userID string, articleIDs []string) ([]string, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create inserts the like row. The composite unique index on
// (user_id, article_id) arbitrates concurrent duplicates; callers detect the
// loss of that race with IsDuplicateKey.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	defer observability.ObserveQuery("insert", "likes", time.Now())
	return r.db.WithContext(ctx).Create(like).Error
}

// Delete hard-deletes the like for the pair. Returns false when no row existed.
func (r *likeRepository) Delete(ctx context.Context, articleID, userID string) (bool, error) {
	defer observability.ObserveQuery("delete", "likes", time.Now())
	res := r.db.WithContext(ctx).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Delete(&models.Like{})
	return res.RowsAffected > 0, res.Error
}

func (r *likeRepository) Exists(ctx context.Context, articleID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) CountByArticle(ctx context.Context, articleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("article_id = ?", articleID).
		Count(&count).Error
	return count, err
}

// LikedArticleIDs returns which of the given articles the user has liked,
// with a single IN query. Used to re-enrich cached pages with viewer state.
func (r *likeRepository) LikedArticleIDs(ctx context.Context, userID string, articleIDs []string) ([]string, error) {
	if len(articleIDs) == 0 {
		return nil, nil
	}
	var liked []string
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND article_id IN ?", userID, articleIDs).
		Pluck("article_id", &liked).Error
	return liked, err
}

// IsDuplicateKey reports whether err is a unique-constraint violation, either
// as translated by GORM or as the raw Postgres error code.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
