package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like is a user's reaction on an article.
// The combination of UserID and ArticleID must be unique; the composite index
// is the serializing point for concurrent like requests, not application
// locking.
type Like struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_user_article" json:"user_id"`
	ArticleID string    `gorm:"size:36;not null;uniqueIndex:idx_user_article" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships; both sides cascade, a like cannot reference a deleted row.
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Article *Article `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
}

func (l *Like) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// LikeStats is the engagement summary for a single article.
// IsLikedByUser is only present when the caller supplied an identity.
type LikeStats struct {
	ArticleID     string `json:"article_id"`
	LikesCount    int64  `json:"likes_count"`
	IsLikedByUser *bool  `json:"is_liked_by_user,omitempty"`
}
