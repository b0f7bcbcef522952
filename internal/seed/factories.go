// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a hashed password. All seeded accounts
// share the password "Password123!@#" so any of them can be used to log in.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!@#"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    fmt.Sprintf("%s-%s", gofakeit.UUID()[:8], gofakeit.Email()),
		Password: string(hash),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildArticle constructs an article without persisting it. Useful for
// batching inserts.
func (f *Factory) BuildArticle(author *models.User, overrides ...func(*models.Article)) *models.Article {
	article := &models.Article{
		Title:   gofakeit.Sentence(f.rng.Intn(5) + 3),
		Content: gofakeit.Paragraph(2, 4, 8, "\n\n"),
	}
	if author != nil {
		article.AuthorID = &author.ID
	}

	// realistic created_at spread over the past 90 days
	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	article.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
	article.UpdatedAt = article.CreatedAt

	for _, override := range overrides {
		override(article)
	}
	return article
}

// CreateArticle persists a single article.
func (f *Factory) CreateArticle(author *models.User, overrides ...func(*models.Article)) (*models.Article, error) {
	article := f.BuildArticle(author, overrides...)
	if err := f.db.Create(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// CreateArticlesBatch persists multiple articles in chunks.
func (f *Factory) CreateArticlesBatch(articles []*models.Article) error {
	if len(articles) == 0 {
		return nil
	}
	return f.db.CreateInBatches(articles, 100).Error
}

// CreateComment persists a comment on an article.
func (f *Factory) CreateComment(article *models.Article, author *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		ArticleID: article.ID,
		Content:   gofakeit.Sentence(f.rng.Intn(10) + 3),
	}
	if author != nil {
		comment.AuthorID = &author.ID
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like for the (user, article) pair. The caller is
// responsible for not passing a pair that already exists; the unique index
// rejects duplicates.
func (f *Factory) CreateLike(user *models.User, article *models.Article) (*models.Like, error) {
	like := &models.Like{
		UserID:    user.ID,
		ArticleID: article.ID,
	}
	if err := f.db.Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}
