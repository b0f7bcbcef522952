package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateComment adds a comment by the caller to an article.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	articleID, err := requireIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Create(c.UserContext(), articleID, currentUserID(c), req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments lists an article's comments, newest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	articleID, err := requireIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	comments, err := s.commentService.ListByArticle(c.UserContext(), articleID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{"items": comments, "count": len(comments)})
}

// UpdateComment edits a comment owned by the caller.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := requireIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Update(c.UserContext(), commentID, currentUserID(c), req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(comment)
}

// DeleteComment removes a comment owned by the caller.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := requireIDParam(c, "id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.commentService.Delete(c.UserContext(), commentID, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
