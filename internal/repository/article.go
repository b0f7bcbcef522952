// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"gorm.io/gorm"
)

// ListQuery describes one feed page request: scope, free-text filter, sort
// and slice bounds. ViewerID, when set, enriches each row with the viewer's
// liked state.
type ListQuery struct {
	Query     string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int

	// Scope predicates; at most one is set.
	AuthorID  string // articles authored by this user
	LikedByID string // articles reachable through this user's likes

	ViewerID string
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id string, viewerID string) (*models.Article, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, q ListQuery) ([]*models.Article, int64, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
}

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) GetByID(ctx context.Context, id string, viewerID string) (*models.Article, error) {
	defer observability.ObserveQuery("select", "articles", time.Now())

	var article models.Article
	err := r.applyEngagement(r.db.WithContext(ctx).Model(&models.Article{}), viewerID).
		Preload("Author").
		Where("articles.id = ?", id).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// List returns one page of articles plus the total match count. The count and
// the page slice are two separate statements, not one snapshot: under heavy
// concurrent writes the total may be stale by the time the items are
// returned. That trade avoids holding a transaction across both reads.
func (r *articleRepository) List(ctx context.Context, q ListQuery) ([]*models.Article, int64, error) {
	defer observability.ObserveQuery("list", "articles", time.Now())

	var total int64
	if err := r.applyScope(r.db.WithContext(ctx).Model(&models.Article{}), q).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []*models.Article
	base := r.applyEngagement(
		r.applyScope(r.db.WithContext(ctx).Model(&models.Article{}), q),
		q.ViewerID,
	).Preload("Author")
	err := r.applySort(base, q.SortBy, q.SortOrder).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// applyScope narrows the query to the requested feed scope and free-text
// filter. Matching is a case-insensitive substring over title or content;
// LOWER/LIKE rather than ILIKE so the same statement runs on Postgres and the
// sqlite test driver.
func (r *articleRepository) applyScope(db *gorm.DB, q ListQuery) *gorm.DB {
	switch {
	case q.AuthorID != "":
		db = db.Where("articles.author_id = ?", q.AuthorID)
	case q.LikedByID != "":
		db = db.Joins("JOIN likes ON likes.article_id = articles.id").
			Where("likes.user_id = ?", q.LikedByID)
	}

	if q.Query != "" {
		like := "%" + strings.ToLower(q.Query) + "%"
		db = db.Where("LOWER(articles.title) LIKE ? OR LOWER(articles.content) LIKE ?", like, like)
	}
	return db
}

// applyEngagement adds subqueries to fetch counts and liked status in a single query.
// An article with zero likes or comments counts as zero, never as absent.
func (r *articleRepository) applyEngagement(db *gorm.DB, viewerID string) *gorm.DB {
	selectQuery := "articles.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.article_id = articles.id) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.article_id = articles.id) as likes_count"

	if viewerID != "" {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.article_id = articles.id AND likes.user_id = ?) as liked", viewerID)
	}

	return db.Select(selectQuery + ", false as liked")
}

// applySort appends the ORDER BY clause. Sort is a refinement, not a
// contract: unrecognized fields fall back to created_at instead of erroring.
func (r *articleRepository) applySort(db *gorm.DB, sortBy, sortOrder string) *gorm.DB {
	var column string
	switch sortBy {
	case "title":
		column = "articles.title"
	case "updatedAt":
		column = "articles.updated_at"
	default: // "createdAt" and anything unrecognized
		column = "articles.created_at"
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}

	return db.Order(column + " " + direction)
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

// Delete removes the article with explicit fan-out to its likes and comments.
// The FK constraints cascade on Postgres, but the fan-out keeps the hard
// ownership semantics on stores that do not enforce them (sqlite in tests).
func (r *articleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Article{}).Error
	})
}
