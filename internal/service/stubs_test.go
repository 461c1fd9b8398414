package service

import (
	"context"

	"writoria/internal/contact"
	"writoria/internal/models"
	"writoria/internal/repository"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByEmailFn        func(context.Context, string) (*models.User, error)
	getByUsernameFn     func(context.Context, string) (*models.User, error)
	createFn            func(context.Context, *models.User) error
	createWithProfileFn func(context.Context, *models.User, *models.Profile) error
	updateFn            func(context.Context, *models.User) error
	getProfileFn        func(context.Context, uint) (*models.Profile, error)
	updateProfileFn     func(context.Context, *models.Profile) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error {
	return s.createWithProfileFn(ctx, user, profile)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getProfileFn(ctx, userID)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	return s.updateProfileFn(ctx, profile)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:           func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:        func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:     func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:            func(_ context.Context, _ *models.User) error { return nil },
		createWithProfileFn: func(_ context.Context, _ *models.User, _ *models.Profile) error { return nil },
		updateFn:            func(_ context.Context, _ *models.User) error { return nil },
		getProfileFn: func(_ context.Context, userID uint) (*models.Profile, error) {
			return &models.Profile{UserID: userID}, nil
		},
		updateProfileFn: func(_ context.Context, _ *models.Profile) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	getBySlugFn     func(context.Context, string) (*models.Post, error)
	slugExistsFn    func(context.Context, string) (bool, error)
	listFn          func(context.Context, repository.PostFilter) ([]*models.Post, error)
	listByUserFn    func(context.Context, uint, int, int) ([]*models.Post, error)
	updateFn        func(context.Context, *models.Post) error
	replaceImagesFn func(context.Context, uint, []models.PostImage) error
	deleteFn        func(context.Context, *models.Post) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *postRepoStub) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.slugExistsFn(ctx, slug)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter) ([]*models.Post, error) {
	return s.listFn(ctx, filter)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) ReplaceImages(ctx context.Context, postID uint, images []models.PostImage) error {
	return s.replaceImagesFn(ctx, postID, images)
}
func (s *postRepoStub) Delete(ctx context.Context, post *models.Post) error {
	return s.deleteFn(ctx, post)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:    func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:   func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		getBySlugFn: func(_ context.Context, slug string) (*models.Post, error) { return &models.Post{Slug: slug}, nil },
		slugExistsFn: func(_ context.Context, _ string) (bool, error) {
			return false, nil
		},
		listFn:          func(_ context.Context, _ repository.PostFilter) ([]*models.Post, error) { return nil, nil },
		listByUserFn:    func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.Post) error { return nil },
		replaceImagesFn: func(_ context.Context, _ uint, _ []models.PostImage) error { return nil },
		deleteFn:        func(_ context.Context, _ *models.Post) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	deleteTreeFn func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) DeleteTree(ctx context.Context, id uint) error {
	return s.deleteTreeFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		deleteTreeFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// engagementRepoStub is a stub for repository.EngagementRepository.
type engagementRepoStub struct {
	toggleVoteFn     func(context.Context, uint, uint) (*repository.VoteResult, error)
	getVoteFn        func(context.Context, uint, uint) (*models.Vote, error)
	toggleBookmarkFn func(context.Context, uint, uint) (bool, error)
	isBookmarkedFn   func(context.Context, uint, uint) (bool, error)
	listBookmarksFn  func(context.Context, uint, int, int) ([]*models.Bookmark, error)
}

func (s *engagementRepoStub) ToggleVote(ctx context.Context, userID, postID uint) (*repository.VoteResult, error) {
	return s.toggleVoteFn(ctx, userID, postID)
}
func (s *engagementRepoStub) GetVote(ctx context.Context, userID, postID uint) (*models.Vote, error) {
	return s.getVoteFn(ctx, userID, postID)
}
func (s *engagementRepoStub) ToggleBookmark(ctx context.Context, userID, postID uint) (bool, error) {
	return s.toggleBookmarkFn(ctx, userID, postID)
}
func (s *engagementRepoStub) IsBookmarked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isBookmarkedFn(ctx, userID, postID)
}
func (s *engagementRepoStub) ListBookmarks(ctx context.Context, userID uint, limit, offset int) ([]*models.Bookmark, error) {
	return s.listBookmarksFn(ctx, userID, limit, offset)
}

func noopEngagementRepo() *engagementRepoStub {
	return &engagementRepoStub{
		toggleVoteFn: func(_ context.Context, _, _ uint) (*repository.VoteResult, error) {
			return &repository.VoteResult{}, nil
		},
		getVoteFn:        func(_ context.Context, _, _ uint) (*models.Vote, error) { return nil, nil },
		toggleBookmarkFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		isBookmarkedFn:   func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listBookmarksFn:  func(_ context.Context, _ uint, _, _ int) ([]*models.Bookmark, error) { return nil, nil },
	}
}

// chatRepoStub is a stub for repository.ChatRepository.
type chatRepoStub struct {
	createFn     func(context.Context, *models.ChatMessage) error
	listByUserFn func(context.Context, uint, int, int) ([]*models.ChatMessage, error)
}

func (s *chatRepoStub) Create(ctx context.Context, msg *models.ChatMessage) error {
	return s.createFn(ctx, msg)
}
func (s *chatRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.ChatMessage, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}

func noopChatRepo() *chatRepoStub {
	return &chatRepoStub{
		createFn:     func(_ context.Context, _ *models.ChatMessage) error { return nil },
		listByUserFn: func(_ context.Context, _ uint, _, _ int) ([]*models.ChatMessage, error) { return nil, nil },
	}
}

// backendStub is a stub for chat.Backend.
type backendStub struct {
	respondFn func(context.Context, string, string) (string, error)
	calls     int
}

func (s *backendStub) Respond(ctx context.Context, message, pageContext string) (string, error) {
	s.calls++
	return s.respondFn(ctx, message, pageContext)
}
func (s *backendStub) Name() string { return "stub" }

// relayStub is a stub for ContactRelay.
type relayStub struct {
	submitFn func(context.Context, contact.Submission) error
}

func (s *relayStub) Submit(ctx context.Context, sub contact.Submission) error {
	return s.submitFn(ctx, sub)
}
