package service

import (
	"context"

	"writoria/internal/models"
	"writoria/internal/repository"
)

type EngagementService struct {
	engagementRepo repository.EngagementRepository
	postRepo       repository.PostRepository
}

func NewEngagementService(engagementRepo repository.EngagementRepository, postRepo repository.PostRepository) *EngagementService {
	return &EngagementService{engagementRepo: engagementRepo, postRepo: postRepo}
}

// ToggleVote flips the caller's life vote on the post and returns the new
// cached count together with the caller's flag.
func (s *EngagementService) ToggleVote(ctx context.Context, userID uint, slug string) (*repository.VoteResult, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.engagementRepo.ToggleVote(ctx, userID, post.ID)
}

// ToggleBookmark adds or removes the post from the caller's bookmarks.
func (s *EngagementService) ToggleBookmark(ctx context.Context, userID uint, slug string) (bool, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return false, err
	}
	return s.engagementRepo.ToggleBookmark(ctx, userID, post.ID)
}

// ListBookmarks returns the caller's bookmarked posts, newest first.
func (s *EngagementService) ListBookmarks(ctx context.Context, userID uint, page int) ([]*models.Bookmark, error) {
	if page < 1 {
		page = 1
	}
	return s.engagementRepo.ListBookmarks(ctx, userID, PageSize, (page-1)*PageSize)
}
