package server

import (
	"net/http"
	"testing"
	"time"

	"inkwell/internal/models"
)

func TestGetFeedEngagement(t *testing.T) {
	app, s, db := newTestApp(t)

	author := createHandlerTestUser(t, db, "author")
	reader1 := createHandlerTestUser(t, db, "reader1")
	reader2 := createHandlerTestUser(t, db, "reader2")

	popular := createHandlerTestArticle(t, db, author, "Popular", "body")
	quiet := createHandlerTestArticle(t, db, author, "Quiet", "body")

	for _, u := range []*models.User{reader1, reader2} {
		if err := db.Create(&models.Like{UserID: u.ID, ArticleID: popular.ID}).Error; err != nil {
			t.Fatalf("create like: %v", err)
		}
	}
	if err := db.Create(&models.Comment{ArticleID: popular.ID, AuthorID: &reader1.ID, Content: "hi"}).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/articles/", authToken(t, s, reader1.ID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var page models.ArticlePage
	decodeBody(t, resp, &page)
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}

	byID := make(map[string]*models.Article)
	for _, a := range page.Items {
		byID[a.ID] = a
	}

	p := byID[popular.ID]
	if p == nil || p.LikesCount != 2 || p.CommentsCount != 1 || !p.Liked {
		t.Fatalf("unexpected engagement on popular article: %+v", p)
	}
	q := byID[quiet.ID]
	if q == nil || q.LikesCount != 0 || q.CommentsCount != 0 || q.Liked {
		t.Fatalf("unexpected engagement on quiet article: %+v", q)
	}
}

func TestGetFeedSearch(t *testing.T) {
	app, _, db := newTestApp(t)
	author := createHandlerTestUser(t, db, "author")
	createHandlerTestArticle(t, db, author, "A typescript tutorial", "intro")
	createHandlerTestArticle(t, db, author, "Unrelated", "nothing here")

	t.Run("CaseInsensitiveMatch", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/articles/?query=TypeScript", "", nil)
		var page models.ArticlePage
		decodeBody(t, resp, &page)
		if len(page.Items) != 1 {
			t.Fatalf("expected 1 match, got %d", len(page.Items))
		}
		if page.Items[0].Title != "A typescript tutorial" {
			t.Fatalf("unexpected match: %s", page.Items[0].Title)
		}
	})

	t.Run("TooShortQueryRejected", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/articles/?query=a", "", nil)
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for 1-char query, got %d", resp.StatusCode)
		}
	})

	t.Run("EmptyQueryIsNoFilter", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/articles/?query=", "", nil)
		var page models.ArticlePage
		decodeBody(t, resp, &page)
		if len(page.Items) != 2 {
			t.Fatalf("expected all articles, got %d", len(page.Items))
		}
	})
}

func TestGetFeedPagination(t *testing.T) {
	app, _, db := newTestApp(t)
	author := createHandlerTestUser(t, db, "author")
	for i := 0; i < 5; i++ {
		createHandlerTestArticle(t, db, author, "Article", "body")
	}

	t.Run("SinglePartialPage", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/articles/?page=1&limit=10", "", nil)
		var page models.ArticlePage
		decodeBody(t, resp, &page)
		if page.Meta.Total != 5 || page.Meta.TotalPages != 1 {
			t.Fatalf("unexpected meta: %+v", page.Meta)
		}
		if page.Meta.HasNext || page.Meta.HasPrev {
			t.Fatalf("unexpected nav flags: %+v", page.Meta)
		}
	})

	t.Run("OutOfRangePageIsEmpty", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/articles/?page=3&limit=10&query=Article", "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var page models.ArticlePage
		decodeBody(t, resp, &page)
		if len(page.Items) != 0 {
			t.Fatalf("expected empty page, got %d items", len(page.Items))
		}
		if page.Meta.Total != 5 || !page.Meta.HasPrev || page.Meta.HasNext {
			t.Fatalf("unexpected meta: %+v", page.Meta)
		}
	})

	t.Run("SecondPageSlices", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/articles/?page=2&limit=2&query=Article", "", nil)
		var page models.ArticlePage
		decodeBody(t, resp, &page)
		if len(page.Items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(page.Items))
		}
		if !page.Meta.HasNext || !page.Meta.HasPrev || page.Meta.TotalPages != 3 {
			t.Fatalf("unexpected meta: %+v", page.Meta)
		}
	})

	t.Run("GarbageParamsFallBackToDefaults", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/articles/?page=zero&limit=-4", "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var page models.ArticlePage
		decodeBody(t, resp, &page)
		if page.Meta.Page != 1 || page.Meta.Limit != 10 {
			t.Fatalf("expected default paging, got %+v", page.Meta)
		}
	})
}

func TestGetFeedSort(t *testing.T) {
	app, _, db := newTestApp(t)
	author := createHandlerTestUser(t, db, "author")

	old := createHandlerTestArticle(t, db, author, "Banana", "old")
	recent := createHandlerTestArticle(t, db, author, "Apple", "recent")

	base := time.Now().Add(-48 * time.Hour)
	if err := db.Model(old).Update("created_at", base).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}
	if err := db.Model(recent).Update("created_at", base.Add(24*time.Hour)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	t.Run("TitleAscending", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/articles/?sortBy=title&sortOrder=asc", "", nil)
		var page models.ArticlePage
		decodeBody(t, resp, &page)
		if page.Items[0].Title != "Apple" {
			t.Fatalf("expected Apple first, got %s", page.Items[0].Title)
		}
	})

	t.Run("BogusSortFieldIsNewestFirst", func(t *testing.T) {
		resp := doRequest(t, app, http.MethodGet, "/api/articles/?sortBy=bogus", "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		var page models.ArticlePage
		decodeBody(t, resp, &page)
		if len(page.Items) == 0 || page.Items[0].ID != recent.ID {
			t.Fatalf("expected default newest-first ordering")
		}
	})
}

func TestArticleCRUD(t *testing.T) {
	app, s, db := newTestApp(t)
	owner := createHandlerTestUser(t, db, "owner")
	intruder := createHandlerTestUser(t, db, "intruder")
	ownerToken := authToken(t, s, owner.ID)
	intruderToken := authToken(t, s, intruder.ID)

	// Anonymous create is rejected.
	resp := doRequest(t, app, http.MethodPost, "/api/articles/", "",
		map[string]string{"title": "t", "content": "c"})
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	// Create.
	resp = doRequest(t, app, http.MethodPost, "/api/articles/", ownerToken,
		map[string]string{"title": "Owned", "content": "body"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created models.Article
	decodeBody(t, resp, &created)
	if created.AuthorID == nil || *created.AuthorID != owner.ID {
		t.Fatalf("author not recorded: %+v", created)
	}

	// Missing fields are rejected.
	resp = doRequest(t, app, http.MethodPost, "/api/articles/", ownerToken,
		map[string]string{"title": ""})
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	// Update by someone else is forbidden.
	resp = doRequest(t, app, http.MethodPut, "/api/articles/"+created.ID, intruderToken,
		map[string]string{"title": "Hijacked"})
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}

	// Update by the owner works.
	resp = doRequest(t, app, http.MethodPut, "/api/articles/"+created.ID, ownerToken,
		map[string]string{"title": "Renamed"})
	var updated models.Article
	decodeBody(t, resp, &updated)
	if updated.Title != "Renamed" {
		t.Fatalf("expected renamed title, got %s", updated.Title)
	}

	// Delete by the owner removes it.
	resp = doRequest(t, app, http.MethodDelete, "/api/articles/"+created.ID, ownerToken, nil)
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp = doRequest(t, app, http.MethodGet, "/api/articles/"+created.ID, "", nil)
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestUserScopedFeeds(t *testing.T) {
	app, _, db := newTestApp(t)
	alice := createHandlerTestUser(t, db, "alice")
	bob := createHandlerTestUser(t, db, "bob")

	mine := createHandlerTestArticle(t, db, alice, "Mine", "body")
	theirs := createHandlerTestArticle(t, db, bob, "Theirs", "body")
	if err := db.Create(&models.Like{UserID: alice.ID, ArticleID: theirs.ID}).Error; err != nil {
		t.Fatalf("create like: %v", err)
	}

	resp := doRequest(t, app, http.MethodGet, "/api/users/"+alice.ID+"/articles", "", nil)
	var page models.ArticlePage
	decodeBody(t, resp, &page)
	if len(page.Items) != 1 || page.Items[0].ID != mine.ID {
		t.Fatalf("expected only alice's article, got %+v", page.Items)
	}

	resp = doRequest(t, app, http.MethodGet, "/api/users/"+alice.ID+"/liked", "", nil)
	decodeBody(t, resp, &page)
	if len(page.Items) != 1 || page.Items[0].ID != theirs.ID {
		t.Fatalf("expected alice's liked articles, got %+v", page.Items)
	}
}
