package seed

import (
	"fmt"
	"log"
	"math/rand"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumArticles int
	ShouldClean bool
}

// Seed populates the database with test data: users, articles with a spread
// of creation dates, comments, and a random but duplicate-free set of likes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d articles...",
		opts.NumUsers, opts.NumArticles)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	articles, err := createArticles(f, users, opts.NumArticles)
	if err != nil {
		return fmt.Errorf("failed to create articles: %w", err)
	}
	log.Printf("✓ %d articles created", len(articles))

	numComments, err := createComments(f, users, articles)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", numComments)

	numLikes, err := createLikes(f, users, articles)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("✓ %d likes created", numLikes)

	log.Println("🎉 Seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	// Delete in dependency order
	for _, model := range []any{
		&models.Like{}, &models.Comment{}, &models.Article{}, &models.User{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(f *Factory, n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createArticles(f *Factory, users []*models.User, n int) ([]*models.Article, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author articles")
	}

	articles := make([]*models.Article, 0, n)
	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		articles = append(articles, f.BuildArticle(author))
	}
	if err := f.CreateArticlesBatch(articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func createComments(f *Factory, users []*models.User, articles []*models.Article) (int, error) {
	count := 0
	for _, article := range articles {
		// 0 to 5 comments per article
		for i := 0; i < rand.Intn(6); i++ {
			author := users[rand.Intn(len(users))]
			if _, err := f.CreateComment(article, author); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// createLikes gives each article likes from a random subset of users. Pairs
// are unique by construction so the composite index never trips.
func createLikes(f *Factory, users []*models.User, articles []*models.Article) (int, error) {
	count := 0
	for _, article := range articles {
		perm := rand.Perm(len(users))
		numLikes := rand.Intn(len(users) + 1)
		for _, idx := range perm[:numLikes] {
			if _, err := f.CreateLike(users[idx], article); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
