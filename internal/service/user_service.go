package service

import (
	"context"

	"linkstash/internal/models"
	"linkstash/internal/repository"
	"linkstash/internal/validation"
)

type UserService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput carries the editable profile fields. Empty strings
// leave the stored value unchanged, except Bio and Website which may be
// cleared explicitly via their Clear flags.
type UpdateProfileInput struct {
	UserID       uint
	Username     string
	Bio          string
	ClearBio     bool
	Website      string
	ClearWebsite bool
	AvatarURL    string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != in.UserID {
			return nil, models.NewValidationError("Username already taken")
		}
		user.Username = in.Username
	}
	if in.ClearBio {
		user.Bio = ""
	} else if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.ClearWebsite {
		user.Website = ""
	} else if in.Website != "" {
		if err := validation.ValidateBookmarkURL(in.Website); err != nil {
			return nil, models.NewValidationError("Website must be a valid http or https URL")
		}
		user.Website = in.Website
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
