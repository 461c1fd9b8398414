package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"writoria/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// FactoryOptions tunes generated data.
type FactoryOptions struct {
	// SkipBcrypt stores a plain-text password. Dev fast mode only.
	SkipBcrypt bool
	// DryRun logs instead of writing.
	DryRun bool
}

// Factory builds and persists sample domain records.
type Factory struct {
	db     *gorm.DB
	opts   FactoryOptions
	r      *rand.Rand
	nextID uint
}

// NewFactory returns a Factory writing through db.
func NewFactory(db *gorm.DB, opts FactoryOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		r:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user with a profile.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Profile: &models.Profile{
			Bio:           gofakeit.Sentence(10),
			Avatar:        fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			Website:       gofakeit.URL(),
			ContactNumber: fmt.Sprintf("%010d", gofakeit.Number(1000000000, 9999999999)),
		},
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample post for the given user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	title := gofakeit.Sentence(5)
	post := &models.Post{
		Title:    title,
		Content:  gofakeit.Paragraph(2, 4, 8, "\n\n"),
		Slug:     fmt.Sprintf("%s-%s", gofakeit.Word(), gofakeit.UUID()[:8]),
		Category: models.Categories[f.r.Intn(len(models.Categories))],
		UserID:   user.ID,
	}

	// Roughly a third of posts carry a small gallery.
	if f.r.Intn(3) == 0 {
		n := 1 + f.r.Intn(3)
		for i := 0; i < n; i++ {
			post.Images = append(post.Images, models.PostImage{
				ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
				Caption:  gofakeit.Sentence(4),
				Order:    i,
			})
		}
	}

	for _, override := range overrides {
		override(post)
	}

	if f.opts.DryRun {
		f.nextID++
		post.ID = f.nextID
		log.Printf("[dry-run] CreatePost: %q (%s)", post.Title, post.Slug)
		return post, nil
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a sample comment, optionally threaded under parent.
func (f *Factory) CreateComment(user *models.User, post *models.Post, parent *models.Comment) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(12),
		UserID:  user.ID,
		PostID:  post.ID,
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
