package repository

import (
	"context"
	"errors"

	"writoria/internal/cache"
	"writoria/internal/models"

	"gorm.io/gorm"
)

// VoteResult is the outcome of a vote toggle.
type VoteResult struct {
	Votes  int  `json:"votes"`
	IsLife bool `json:"has_life"`
}

// EngagementRepository covers votes and bookmarks.
type EngagementRepository interface {
	// ToggleVote creates a life vote for (userID, postID) or flips the
	// existing one, recomputes the post's cached count, and returns both.
	ToggleVote(ctx context.Context, userID, postID uint) (*VoteResult, error)
	GetVote(ctx context.Context, userID, postID uint) (*models.Vote, error)
	// ToggleBookmark creates the bookmark or deletes it when present.
	// Returns the new membership state.
	ToggleBookmark(ctx context.Context, userID, postID uint) (bool, error)
	IsBookmarked(ctx context.Context, userID, postID uint) (bool, error)
	ListBookmarks(ctx context.Context, userID uint, limit, offset int) ([]*models.Bookmark, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new EngagementRepository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// ToggleVote runs entirely inside one transaction: the unique
// (user_id, post_id) index plus the transaction make concurrent toggles by
// the same user safe, and the cached count is recomputed from the vote rows
// before commit so it can never drift.
func (r *engagementRepository) ToggleVote(ctx context.Context, userID, postID uint) (*VoteResult, error) {
	var result VoteResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return err
		}

		var vote models.Vote
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&vote).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote = models.Vote{UserID: userID, PostID: postID, IsLife: true}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			vote.IsLife = !vote.IsLife
			if err := tx.Save(&vote).Error; err != nil {
				return err
			}
		}

		var count int64
		if err := tx.Model(&models.Vote{}).
			Where("post_id = ? AND is_life = ?", postID, true).
			Count(&count).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Update("votes", count).Error; err != nil {
			return err
		}

		result = VoteResult{Votes: int(count), IsLife: vote.IsLife}
		cache.InvalidatePost(ctx, post.Slug)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *engagementRepository) GetVote(ctx context.Context, userID, postID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &vote, nil
}

func (r *engagementRepository) ToggleBookmark(ctx context.Context, userID, postID uint) (bool, error) {
	var bookmarked bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return err
		}

		var bookmark models.Bookmark
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&bookmark).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.Bookmark{UserID: userID, PostID: postID}).Error; err != nil {
				return err
			}
			bookmarked = true
		case err != nil:
			return err
		default:
			if err := tx.Delete(&bookmark).Error; err != nil {
				return err
			}
			bookmarked = false
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return bookmarked, nil
}

func (r *engagementRepository) IsBookmarked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *engagementRepository) ListBookmarks(ctx context.Context, userID uint, limit, offset int) ([]*models.Bookmark, error) {
	var bookmarks []*models.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookmarks).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return bookmarks, nil
}
