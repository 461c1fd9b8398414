package repository

import (
	"context"
	"errors"

	"writoria/internal/cache"
	"writoria/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	// DeleteTree removes the comment and all of its descendants.
	DeleteTree(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	r.invalidatePostDetail(ctx, comment.PostID)
	return nil
}

// invalidatePostDetail drops the cached post detail so its comment count is
// recomputed on the next read.
func (r *commentRepository) invalidatePostDetail(ctx context.Context, postID uint) {
	var slug string
	if err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", postID).
		Pluck("slug", &slug).Error; err == nil && slug != "" {
		cache.InvalidatePost(ctx, slug)
	}
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByPost returns the post's top-level comments, oldest first, with one
// level of replies preloaded; deeper levels resolve through Replies.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.User").
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// DeleteTree walks the reply tree breadth-first and deletes leaves upward in
// one transaction. Done in application code so the cascade also holds on
// sqlite deployments where the FK constraint may not be enforced.
func (r *commentRepository) DeleteTree(ctx context.Context, id uint) error {
	var postID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Comment{}).
			Where("id = ?", id).
			Pluck("post_id", &postID).Error; err != nil {
			return err
		}

		ids := []uint{id}
		frontier := []uint{id}

		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}

		return tx.Delete(&models.Comment{}, ids).Error
	})
	if err != nil {
		return err
	}
	r.invalidatePostDetail(ctx, postID)
	return nil
}
