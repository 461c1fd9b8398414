// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"writoria/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	SkipBcrypt  bool
}

// Seeder populates the database with realistic sample data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	r       *rand.Rand
}

// NewSeeder returns a Seeder writing through db.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, FactoryOptions{SkipBcrypt: opts.SkipBcrypt}),
		r:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows in FK-safe order.
func (s *Seeder) ClearAll() error {
	tables := []string{"chat_messages", "bookmarks", "votes", "comments", "post_images", "posts", "profiles", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// Seed populates the database with test data
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Printf("Warning: could not clear all existing data, continuing anyway: %v", err)
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[s.r.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return fmt.Errorf("creating post %d: %w", i, err)
		}
		posts = append(posts, post)
	}
	log.Printf("Created %d posts", len(posts))

	if err := s.seedEngagement(users, posts); err != nil {
		return err
	}

	log.Println("Seeding complete")
	return nil
}

// seedEngagement sprinkles comments, votes and bookmarks across the posts.
func (s *Seeder) seedEngagement(users []*models.User, posts []*models.Post) error {
	comments := 0
	for _, post := range posts {
		n := s.r.Intn(5)
		var parent *models.Comment
		for i := 0; i < n; i++ {
			commenter := users[s.r.Intn(len(users))]
			// Half the follow-ups reply to the previous comment, making
			// small threads.
			var p *models.Comment
			if parent != nil && s.r.Intn(2) == 0 {
				p = parent
			}
			c, err := s.factory.CreateComment(commenter, post, p)
			if err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
			parent = c
			comments++
		}
	}
	log.Printf("Created %d comments", comments)

	votes := 0
	for _, post := range posts {
		n := s.r.Intn(len(users)/2 + 1)
		for _, voter := range s.pickUsers(users, n) {
			vote := &models.Vote{UserID: voter.ID, PostID: post.ID, IsLife: true}
			if err := s.db.Create(vote).Error; err != nil {
				return fmt.Errorf("creating vote: %w", err)
			}
			votes++
		}
		if err := s.db.Model(&models.Post{}).Where("id = ?", post.ID).
			Update("votes", n).Error; err != nil {
			return fmt.Errorf("updating vote count: %w", err)
		}
	}
	log.Printf("Created %d votes", votes)

	bookmarks := 0
	for _, user := range users {
		n := s.r.Intn(4)
		for _, post := range s.pickPosts(posts, n) {
			bookmark := &models.Bookmark{UserID: user.ID, PostID: post.ID}
			if err := s.db.Create(bookmark).Error; err != nil {
				return fmt.Errorf("creating bookmark: %w", err)
			}
			bookmarks++
		}
	}
	log.Printf("Created %d bookmarks", bookmarks)

	return nil
}

// pickUsers returns n distinct random users.
func (s *Seeder) pickUsers(users []*models.User, n int) []*models.User {
	idx := s.r.Perm(len(users))
	if n > len(users) {
		n = len(users)
	}
	out := make([]*models.User, 0, n)
	for _, i := range idx[:n] {
		out = append(out, users[i])
	}
	return out
}

// pickPosts returns n distinct random posts.
func (s *Seeder) pickPosts(posts []*models.Post, n int) []*models.Post {
	idx := s.r.Perm(len(posts))
	if n > len(posts) {
		n = len(posts)
	}
	out := make([]*models.Post, 0, n)
	for _, i := range idx[:n] {
		out = append(out, posts[i])
	}
	return out
}
