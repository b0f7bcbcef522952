package server

import (
	"strconv"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parsePageLimit reads page/limit query params and clamps them to sane values.
func parsePageLimit(c *fiber.Ctx) (page, limit int) {
	page, err := strconv.Atoi(c.Query("page", strconv.Itoa(models.DefaultPage)))
	if err != nil || page < 1 {
		page = models.DefaultPage
	}

	limit, err = strconv.Atoi(c.Query("limit", strconv.Itoa(models.DefaultLimit)))
	if err != nil || limit < 1 {
		limit = models.DefaultLimit
	}
	if limit > models.MaxLimit {
		limit = models.MaxLimit
	}
	return page, limit
}

// parseSort reads sortBy/sortOrder query params. Unknown values are passed
// through; the repository whitelists columns and falls back to created_at.
func parseSort(c *fiber.Ctx) (sortBy, sortOrder string) {
	return c.Query("sortBy", ""), c.Query("sortOrder", "")
}

// requireIDParam returns the named path parameter or a validation error when
// it is empty.
func requireIDParam(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if id == "" {
		return "", models.NewValidationError("Missing " + name + " parameter")
	}
	return id, nil
}

func currentUserID(c *fiber.Ctx) string {
	if uid, ok := c.Locals("userID").(string); ok {
		return uid
	}
	return ""
}
