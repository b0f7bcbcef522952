package service

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// ArticleService covers the plain CRUD paths around the feed core.
type ArticleService struct {
	articleRepo repository.ArticleRepository
}

// CreateArticleInput carries the fields for a new article.
type CreateArticleInput struct {
	AuthorID string
	Title    string
	Content  string
}

// UpdateArticleInput carries a partial update; empty fields are left as-is.
type UpdateArticleInput struct {
	UserID    string
	ArticleID string
	Title     string
	Content   string
}

// NewArticleService creates a new article service.
func NewArticleService(articleRepo repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

const (
	maxTitleLen   = 300
	maxContentLen = 50000
)

func (s *ArticleService) Create(ctx context.Context, in CreateArticleInput) (*models.Article, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	authorID := in.AuthorID
	article := &models.Article{
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: &authorID,
	}
	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	cache.InvalidateFeed(ctx)
	return s.Get(ctx, article.ID, in.AuthorID)
}

// Get loads one article with engagement counts and, for a viewer, liked state.
// Anonymous reads are served cache-aside; viewer reads go to the store so the
// cached entry stays identity-free.
func (s *ArticleService) Get(ctx context.Context, id, viewerID string) (*models.Article, error) {
	if viewerID != "" {
		article, err := s.articleRepo.GetByID(ctx, id, viewerID)
		if err != nil {
			return nil, translateArticleErr(err, id)
		}
		return article, nil
	}

	var article models.Article
	err := cache.Aside(ctx, cache.ArticleKey(id), &article, cache.ArticleTTL, func() error {
		fetched, fetchErr := s.articleRepo.GetByID(ctx, id, "")
		if fetchErr != nil {
			return fetchErr
		}
		article = *fetched
		return nil
	})
	if err != nil {
		return nil, translateArticleErr(err, id)
	}
	return &article, nil
}

func translateArticleErr(err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Article", id)
	}
	return err
}

func (s *ArticleService) Update(ctx context.Context, in UpdateArticleInput) (*models.Article, error) {
	article, err := s.Get(ctx, in.ArticleID, in.UserID)
	if err != nil {
		return nil, err
	}

	if article.AuthorID == nil || *article.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own articles")
	}

	if in.Title != "" {
		article.Title = in.Title
	}
	if in.Content != "" {
		article.Content = in.Content
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	cache.InvalidateArticle(ctx, article.ID)
	cache.InvalidateFeed(ctx)
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, articleID, userID string) error {
	article, err := s.Get(ctx, articleID, userID)
	if err != nil {
		return err
	}

	if article.AuthorID == nil || *article.AuthorID != userID {
		return models.NewForbiddenError("You can only delete your own articles")
	}

	if err := s.articleRepo.Delete(ctx, articleID); err != nil {
		return err
	}

	cache.InvalidateArticle(ctx, articleID)
	cache.InvalidateFeed(ctx)
	return nil
}
