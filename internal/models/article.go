package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article is a piece of authored content. Authorship is soft: AuthorID is
// nulled when the author account is deleted, the article survives.
type Article struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id"`
	Title    string  `gorm:"not null" json:"title"`
	Content  string  `gorm:"type:text;not null" json:"content"`
	AuthorID *string `gorm:"size:36;index" json:"author_id"`
	Author   *User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this article (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier independent of the storage layer's
// native key mechanism.
func (a *Article) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ArticlePage is one page of the feed: the article slice plus pagination meta.
type ArticlePage struct {
	Items []*Article     `json:"items"`
	Meta  PaginationMeta `json:"meta"`
}
