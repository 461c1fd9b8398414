// Package service provides application business logic (accounts, posts,
// engagement, assistant chat).
package service

import (
	"context"

	"writoria/internal/models"
	"writoria/internal/repository"
	"writoria/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

type RegisterInput struct {
	Username      string
	Email         string
	Password      string
	ContactNumber string
}

type UpdateProfileInput struct {
	UserID  uint
	Bio     *string
	Avatar  *string
	Website *string
}

// ProfileView pairs a user with their profile and its completion percentage.
type ProfileView struct {
	User       *models.User    `json:"user"`
	Profile    *models.Profile `json:"profile"`
	Completion int             `json:"completion"`
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register validates the input, rejects taken usernames and emails, and
// creates the user together with their profile in one transaction.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateContactNumber(in.ContactNumber); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Username already exists")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewValidationError("Email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
	}
	profile := &models.Profile{ContactNumber: in.ContactNumber}
	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, err
	}
	user.Profile = profile
	return user, nil
}

// Login verifies the credentials and returns the user. The same error is
// returned for an unknown email and a wrong password.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

// GetProfile returns the caller's profile view, creating the profile row on
// first access.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileView{User: user, Profile: profile, Completion: profile.Completion()}, nil
}

// GetPublicProfile resolves a username to its profile view.
func (s *UserService) GetPublicProfile(ctx context.Context, username string) (*ProfileView, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	profile, err := s.userRepo.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &ProfileView{User: user, Profile: profile, Completion: profile.Completion()}, nil
}

// UpdateProfile applies the provided fields. Nil pointers leave the field
// untouched, so a client can clear a value by sending an empty string.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*ProfileView, error) {
	const maxBioLen = 500

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	profile, err := s.userRepo.GetProfile(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		profile.Bio = *in.Bio
	}
	if in.Avatar != nil {
		profile.Avatar = *in.Avatar
	}
	if in.Website != nil {
		profile.Website = *in.Website
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return &ProfileView{User: user, Profile: profile, Completion: profile.Completion()}, nil
}
