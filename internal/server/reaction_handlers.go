package server

import (
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikeArticle records a like by the caller. Liking twice is a conflict.
func (s *Server) LikeArticle(c *fiber.Ctx) error {
	articleID, err := requireIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	like, err := s.reactionService.Like(c.UserContext(), articleID, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "Article liked", "article_id", articleID)
	return c.Status(fiber.StatusCreated).JSON(like)
}

// UnlikeArticle removes the caller's like. Unliking an article the caller
// never liked is a not found.
func (s *Server) UnlikeArticle(c *fiber.Ctx) error {
	articleID, err := requireIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.reactionService.Unlike(c.UserContext(), articleID, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "Article unliked", "article_id", articleID)
	return c.SendStatus(fiber.StatusNoContent)
}

// GetArticleStats returns the like count for an article, plus the caller's
// liked-state when a token is presented.
func (s *Server) GetArticleStats(c *fiber.Ctx) error {
	articleID, err := requireIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	viewerID, _ := s.optionalUserID(c)

	stats, err := s.reactionService.Stats(c.UserContext(), articleID, viewerID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(stats)
}
