// Package service contains the application's business logic on top of the
// repository layer.
package service

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// FeedQuery is one feed request: scope, filter, sort and page. The boundary
// validates the free-text query (minimum length) before it gets here.
type FeedQuery struct {
	Query     string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int

	AuthorID  string // scope: articles by this author
	LikedByID string // scope: articles liked by this user

	ViewerID string // optional caller identity for liked-state enrichment
}

// FeedService composes filter, sort and pagination over articles and attaches
// engagement counts to each page.
type FeedService struct {
	articleRepo repository.ArticleRepository
	likeRepo    repository.LikeRepository
}

// NewFeedService creates a new feed service.
func NewFeedService(articleRepo repository.ArticleRepository, likeRepo repository.LikeRepository) *FeedService {
	return &FeedService{articleRepo: articleRepo, likeRepo: likeRepo}
}

// List returns one page of the feed with pagination meta. The total is
// counted before the page slice is fetched, so an out-of-range page yields an
// empty item list with correct meta rather than an error.
func (s *FeedService) List(ctx context.Context, q FeedQuery) (*models.ArticlePage, error) {
	span, ctx := observability.NewSpan(ctx, "feed.list")
	defer span.End()
	span.AddAttributes(
		attribute.Bool("feed.filtered", q.Query != ""),
		attribute.String("feed.sort", q.SortBy),
	)

	page, limit := models.NormalizePageLimit(q.Page, q.Limit)

	if s.cacheable(q, page) {
		return s.listCachedFirstPage(ctx, q, page, limit)
	}

	items, total, err := s.articleRepo.List(ctx, repository.ListQuery{
		Query:     q.Query,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Limit:     limit,
		Offset:    (page - 1) * limit,
		AuthorID:  q.AuthorID,
		LikedByID: q.LikedByID,
		ViewerID:  q.ViewerID,
	})
	if err != nil {
		return nil, err
	}

	return &models.ArticlePage{
		Items: items,
		Meta:  models.NewPaginationMeta(page, limit, total),
	}, nil
}

// cacheable reports whether the request is the anonymously-shaped first page
// of the default feed, the only page hot enough to be worth caching.
func (s *FeedService) cacheable(q FeedQuery, page int) bool {
	return page == 1 &&
		q.Query == "" &&
		q.AuthorID == "" &&
		q.LikedByID == "" &&
		(q.SortBy == "" || q.SortBy == "createdAt") &&
		(q.SortOrder == "" || q.SortOrder == "desc" || q.SortOrder == "DESC")
}

// listCachedFirstPage serves the default first page cache-aside, then
// re-enriches the viewer's liked state with a single batched query so cached
// entries stay identity-free. The cached total may be stale within the TTL,
// consistent with the documented count/slice consistency trade-off.
func (s *FeedService) listCachedFirstPage(ctx context.Context, q FeedQuery, page, limit int) (*models.ArticlePage, error) {
	var result models.ArticlePage
	err := cache.Aside(ctx, cache.FeedKey(limit), &result, cache.FeedTTL, func() error {
		items, total, fetchErr := s.articleRepo.List(ctx, repository.ListQuery{
			Limit:  limit,
			Offset: 0,
		})
		if fetchErr != nil {
			return fetchErr
		}
		result = models.ArticlePage{
			Items: items,
			Meta:  models.NewPaginationMeta(page, limit, total),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if q.ViewerID != "" && len(result.Items) > 0 {
		ids := make([]string, len(result.Items))
		for i, a := range result.Items {
			ids[i] = a.ID
		}
		likedIDs, likedErr := s.likeRepo.LikedArticleIDs(ctx, q.ViewerID, ids)
		if likedErr != nil {
			// A page with the viewer's liked state missing would be wrong,
			// not merely degraded.
			return nil, likedErr
		}
		likedSet := make(map[string]bool, len(likedIDs))
		for _, id := range likedIDs {
			likedSet[id] = true
		}
		for _, a := range result.Items {
			a.Liked = likedSet[a.ID]
		}
	}

	return &result, nil
}
