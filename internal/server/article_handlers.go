package server

import (
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetFeed returns a page of articles with engagement counts, optionally
// filtered by a search term and sorted by a whitelisted column.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("query", c.Query("q", "")))
	if err := validation.ValidateSearchQuery(query); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	page, limit := parsePageLimit(c)
	sortBy, sortOrder := parseSort(c)
	viewerID, _ := s.optionalUserID(c)

	feed, err := s.feedService.List(c.UserContext(), service.FeedQuery{
		Query:     query,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Page:      page,
		Limit:     limit,
		ViewerID:  viewerID,
	})
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "Failed to list feed", "error", err)
		return models.RespondWithError(c, err)
	}

	return c.JSON(feed)
}

// GetArticle returns a single article with engagement counts.
func (s *Server) GetArticle(c *fiber.Ctx) error {
	id, err := requireIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	viewerID, _ := s.optionalUserID(c)

	article, err := s.articleService.Get(c.UserContext(), id, viewerID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(article)
}

// CreateArticle creates an article authored by the caller.
func (s *Server) CreateArticle(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleService.Create(c.UserContext(), service.CreateArticleInput{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: currentUserID(c),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "Article created", "article_id", article.ID)
	return c.Status(fiber.StatusCreated).JSON(article)
}

// UpdateArticle updates an article owned by the caller.
func (s *Server) UpdateArticle(c *fiber.Ctx) error {
	id, err := requireIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	article, err := s.articleService.Update(c.UserContext(), service.UpdateArticleInput{
		ArticleID: id,
		UserID:    currentUserID(c),
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(article)
}

// DeleteArticle removes an article owned by the caller along with its
// comments and likes.
func (s *Server) DeleteArticle(c *fiber.Ctx) error {
	id, err := requireIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.articleService.Delete(c.UserContext(), id, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "Article deleted", "article_id", id)
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserArticles returns a page of articles authored by the given user.
func (s *Server) GetUserArticles(c *fiber.Ctx) error {
	userID, err := requireIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, limit := parsePageLimit(c)
	sortBy, sortOrder := parseSort(c)
	viewerID, _ := s.optionalUserID(c)

	feed, err := s.feedService.List(c.UserContext(), service.FeedQuery{
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Page:      page,
		Limit:     limit,
		AuthorID:  userID,
		ViewerID:  viewerID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(feed)
}

// GetUserLikedArticles returns a page of articles the given user has liked.
func (s *Server) GetUserLikedArticles(c *fiber.Ctx) error {
	userID, err := requireIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	page, limit := parsePageLimit(c)
	viewerID, _ := s.optionalUserID(c)

	feed, err := s.feedService.List(c.UserContext(), service.FeedQuery{
		Page:      page,
		Limit:     limit,
		LikedByID: userID,
		ViewerID:  viewerID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(feed)
}
