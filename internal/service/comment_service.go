package service

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"gorm.io/gorm"
)

// CommentService covers comment CRUD under an article.
type CommentService struct {
	commentRepo repository.CommentRepository
	articleRepo repository.ArticleRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, articleRepo repository.ArticleRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, articleRepo: articleRepo}
}

func (s *CommentService) Create(ctx context.Context, articleID, authorID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	exists, err := s.articleRepo.Exists(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Article", articleID)
	}

	author := authorID
	comment := &models.Comment{
		Content:   content,
		ArticleID: articleID,
		AuthorID:  &author,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	cache.InvalidateArticle(ctx, articleID)
	cache.InvalidateFeed(ctx)
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	exists, err := s.articleRepo.Exists(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("Article", articleID)
	}
	return s.commentRepo.ListByArticle(ctx, articleID)
}

func (s *CommentService) Update(ctx context.Context, commentID, userID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	comment, err := s.get(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID == nil || *comment.AuthorID != userID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, commentID, userID string) error {
	comment, err := s.get(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID == nil || *comment.AuthorID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	cache.InvalidateArticle(ctx, comment.ArticleID)
	cache.InvalidateFeed(ctx)
	return nil
}

func (s *CommentService) get(ctx context.Context, commentID string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", commentID)
		}
		return nil, err
	}
	return comment, nil
}
