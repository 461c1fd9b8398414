package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"writoria/internal/models"
	"writoria/internal/repository"
)

// PageSize is the fixed page size for post listings.
const PageSize = 10

type PostService struct {
	postRepo       repository.PostRepository
	engagementRepo repository.EngagementRepository
}

type ImageInput struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	Category string
	Images   []ImageInput
}

type UpdatePostInput struct {
	UserID   uint
	Slug     string
	Title    *string
	Content  *string
	Category *string
	// Images, when non-nil, replaces the post's image set wholesale.
	Images *[]ImageInput
}

type ListPostsInput struct {
	Search   string
	Category string
	Page     int
}

func NewPostService(postRepo repository.PostRepository, engagementRepo repository.EngagementRepository) *PostService {
	return &PostService{postRepo: postRepo, engagementRepo: engagementRepo}
}

// slugify lowercases the title and collapses every non-alphanumeric run
// into a single hyphen.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// generateSlug derives a unique slug from the title, disambiguating
// collisions with a numeric suffix: hello, hello-2, hello-3, ...
func (s *PostService) generateSlug(ctx context.Context, title string) (string, error) {
	base := slugify(title)
	if base == "" {
		base = "post"
	}
	if len(base) > 200 {
		base = strings.Trim(base[:200], "-")
	}

	candidate := base
	for n := 2; ; n++ {
		taken, err := s.postRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

func validateImages(images []ImageInput) error {
	const maxImages = 10
	if len(images) > maxImages {
		return models.NewValidationError("Too many images (max 10)")
	}
	for _, img := range images {
		if strings.TrimSpace(img.URL) == "" {
			return models.NewValidationError("Image URL is required")
		}
	}
	return nil
}

func toPostImages(postID uint, images []ImageInput) []models.PostImage {
	out := make([]models.PostImage, 0, len(images))
	for i, img := range images {
		out = append(out, models.PostImage{
			PostID:   postID,
			ImageURL: img.URL,
			Caption:  img.Caption,
			Order:    i,
		})
	}
	return out
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	const maxTitleLen = 200

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	category := in.Category
	if category == "" {
		category = models.CategoryGeneral
	}
	if !models.ValidCategory(category) {
		return nil, models.NewValidationError("Invalid category")
	}
	if err := validateImages(in.Images); err != nil {
		return nil, err
	}

	slug, err := s.generateSlug(ctx, in.Title)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		Slug:     slug,
		Category: category,
		UserID:   in.UserID,
		Images:   toPostImages(0, in.Images),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPostBySlug returns the post with its images and author. When
// currentUserID is non-zero the per-user bookmark and vote state is
// attached.
func (s *PostService) GetPostBySlug(ctx context.Context, slug string, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if currentUserID != 0 {
		bookmarked, err := s.engagementRepo.IsBookmarked(ctx, currentUserID, post.ID)
		if err != nil {
			return nil, err
		}
		post.IsBookmarked = bookmarked

		vote, err := s.engagementRepo.GetVote(ctx, currentUserID, post.ID)
		if err != nil {
			return nil, err
		}
		if vote != nil {
			post.UserVote = &vote.IsLife
		}
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	if in.Category != "" && !models.ValidCategory(in.Category) {
		return nil, models.NewValidationError("Invalid category")
	}
	page := in.Page
	if page < 1 {
		page = 1
	}
	return s.postRepo.List(ctx, repository.PostFilter{
		Search:   in.Search,
		Category: in.Category,
		Limit:    PageSize,
		Offset:   (page - 1) * PageSize,
	})
}

func (s *PostService) ListPostsByUser(ctx context.Context, userID uint, page int) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	return s.postRepo.ListByUser(ctx, userID, PageSize, (page-1)*PageSize)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You are not authorized to edit this post")
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, models.NewValidationError("Title is required")
		}
		if len(*in.Title) > 200 {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		// The slug is permanent; edits never break existing links.
		post.Title = *in.Title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, models.NewValidationError("Content is required")
		}
		post.Content = *in.Content
	}
	if in.Category != nil {
		if !models.ValidCategory(*in.Category) {
			return nil, models.NewValidationError("Invalid category")
		}
		post.Category = *in.Category
	}

	if in.Images != nil {
		if err := validateImages(*in.Images); err != nil {
			return nil, err
		}
		if err := s.postRepo.ReplaceImages(ctx, post.ID, toPostImages(post.ID, *in.Images)); err != nil {
			return nil, err
		}
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetBySlug(ctx, post.Slug)
}

func (s *PostService) DeletePost(ctx context.Context, userID uint, slug string) error {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You are not authorized to delete this post")
	}
	return s.postRepo.Delete(ctx, post)
}
