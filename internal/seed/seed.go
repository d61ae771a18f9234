// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"linkstash/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	NumBookmarks int
	ShouldClean  bool
}

var categories = []string{
	models.CategoryTechnology,
	models.CategoryDesign,
	models.CategoryEducation,
	models.CategoryEntertainment,
	models.CategoryBusiness,
	models.CategoryNews,
	models.CategoryOther,
	"", // some bookmarks stay uncategorized
}

var tagPool = []string{
	"golang", "webdev", "tutorial", "reference", "tools", "reading-list",
	"design-systems", "css", "databases", "career", "productivity",
	"open-source", "security", "testing", "longread",
}

// Seeder populates the database with demo data.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Order matters because of foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Favorite{},
		&models.Bookmark{},
		&models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}
	return nil
}

// SeedUsers creates n demo users, all with the password "password123".
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:     gofakeit.Email(),
			Password:  string(hashed),
			Bio:       gofakeit.Sentence(10),
			Website:   gofakeit.URL(),
			AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		users = append(users, user)
	}

	if err := s.db.Create(&users).Error; err != nil {
		return nil, err
	}
	log.Printf("Created %d users", len(users))
	return users, nil
}

// SeedBookmarks creates n bookmarks spread across the given users, with a
// realistic created_at spread over the past 90 days. Roughly one in five is
// private.
func (s *Seeder) SeedBookmarks(users []*models.User, n int) ([]*models.Bookmark, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to own bookmarks")
	}

	bookmarks := make([]*models.Bookmark, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.rand.Intn(len(users))]
		bookmark := &models.Bookmark{
			Title:       gofakeit.Sentence(4),
			URL:         gofakeit.URL(),
			Description: gofakeit.Paragraph(1, 2, 8, " "),
			Category:    categories[s.rand.Intn(len(categories))],
			Tags:        s.pickTags(),
			IsPublic:    s.rand.Intn(5) != 0,
			UserID:      owner.ID,
			CreatedAt:   s.pastTime(90),
		}
		bookmarks = append(bookmarks, bookmark)
	}

	if err := s.db.Create(&bookmarks).Error; err != nil {
		return nil, err
	}
	log.Printf("Created %d bookmarks", len(bookmarks))
	return bookmarks, nil
}

// SeedFavorites sprinkles favorites across users and public bookmarks. The
// unique index makes repeats harmless, so collisions are just skipped.
func (s *Seeder) SeedFavorites(users []*models.User, bookmarks []*models.Bookmark, n int) error {
	created := 0
	for i := 0; i < n; i++ {
		user := users[s.rand.Intn(len(users))]
		bookmark := bookmarks[s.rand.Intn(len(bookmarks))]
		if !bookmark.IsPublic && bookmark.UserID != user.ID {
			continue
		}

		favorite := &models.Favorite{
			UserID:     user.ID,
			BookmarkID: bookmark.ID,
			CreatedAt:  s.pastTime(30),
		}
		if err := s.db.Create(favorite).Error; err != nil {
			// Duplicate (user, bookmark) pair; skip it.
			continue
		}
		created++
	}
	log.Printf("Created %d favorites", created)
	return nil
}

// Run executes the full seeding pass according to opts.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return err
	}

	bookmarks, err := s.SeedBookmarks(users, opts.NumBookmarks)
	if err != nil {
		return err
	}

	return s.SeedFavorites(users, bookmarks, opts.NumBookmarks*2)
}

func (s *Seeder) pickTags() []string {
	count := s.rand.Intn(4)
	if count == 0 {
		return nil
	}
	tags := make([]string, 0, count)
	for i := 0; i < count; i++ {
		tags = append(tags, tagPool[s.rand.Intn(len(tagPool))])
	}
	return tags
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	daysBack := s.rand.Intn(maxDays)
	hoursBack := s.rand.Intn(24)
	minsBack := s.rand.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
