package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ArticleKeyPrefix = "article:%s"
	StatsKeyPrefix   = "article:%s:stats"
	FeedKeyPrefix    = "feed:first:%d"
)

const (
	ArticleTTL = 30 * time.Minute
	StatsTTL   = 5 * time.Minute
	FeedTTL    = 1 * time.Minute
)

func ArticleKey(articleID string) string {
	return fmt.Sprintf(ArticleKeyPrefix, articleID)
}

func StatsKey(articleID string) string {
	return fmt.Sprintf(StatsKeyPrefix, articleID)
}

// FeedKey identifies the cached anonymous first page of the default feed for
// a given page size.
func FeedKey(limit int) string {
	return fmt.Sprintf(FeedKeyPrefix, limit)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateArticle drops the article's cached detail and stats entries.
func InvalidateArticle(ctx context.Context, articleID string) {
	Invalidate(ctx, ArticleKey(articleID), StatsKey(articleID))
}

// InvalidateFeed drops every cached first-page variant.
func InvalidateFeed(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "feed:first:*", 64).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
