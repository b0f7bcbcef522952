package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment belongs to an article and cannot outlive it; authorship is soft and
// survives author deletion.
type Comment struct {
	ID        string   `gorm:"primaryKey;size:36" json:"id"`
	Content   string   `gorm:"type:text;not null" json:"content"`
	ArticleID string   `gorm:"size:36;not null;index" json:"article_id"`
	Article   *Article `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  *string  `gorm:"size:36;index" json:"author_id"`
	Author    *User    `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
