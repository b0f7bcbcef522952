package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageLimit(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{name: "Defaults", url: "/?", wantPage: 1, wantLimit: 10},
		{name: "Explicit", url: "/?page=3&limit=25", wantPage: 3, wantLimit: 25},
		{name: "NonNumeric", url: "/?page=abc&limit=xyz", wantPage: 1, wantLimit: 10},
		{name: "Negative", url: "/?page=-1&limit=-5", wantPage: 1, wantLimit: 10},
		{name: "OverCap", url: "/?limit=1000", wantPage: 1, wantLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var page, limit int
			app.Get("/", func(c *fiber.Ctx) error {
				page, limit = parsePageLimit(c)
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.url, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestBearerUserID(t *testing.T) {
	_, s, db := newTestApp(t)
	user := createHandlerTestUser(t, db, "token-owner")
	valid := authToken(t, s, user.ID)

	tests := []struct {
		name   string
		header string
		wantID string
		wantOK bool
	}{
		{name: "Valid", header: "Bearer " + valid, wantID: user.ID, wantOK: true},
		{name: "Missing", header: "", wantOK: false},
		{name: "WrongScheme", header: "Basic " + valid, wantOK: false},
		{name: "Garbage", header: "Bearer garbage", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var gotID string
			var gotOK bool
			app.Get("/", func(c *fiber.Ctx) error {
				gotID, gotOK = s.bearerUserID(c)
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantOK, gotOK)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, gotID)
			}
		})
	}
}
