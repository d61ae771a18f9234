package service

import (
	"context"
	"testing"

	"linkstash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
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
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice", Email: "alice@example.com"}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("updates fields", func(t *testing.T) {
		repo := noopUserRepo()
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}

		svc := NewUserService(repo)
		user, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			UserID:   1,
			Username: "alice_2",
			Bio:      "Collector of links",
			Website:  "https://alice.example.com",
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "alice_2", user.Username)
		assert.Equal(t, "Collector of links", user.Bio)
		assert.Equal(t, "https://alice.example.com", user.Website)
	})

	t.Run("empty fields unchanged", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice", Bio: "old bio", Website: "https://old.example.com"}, nil
		}
		svc := NewUserService(repo)
		user, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1})
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "old bio", user.Bio)
		assert.Equal(t, "https://old.example.com", user.Website)
	})

	t.Run("clear flags empty the field", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice", Bio: "old bio", Website: "https://old.example.com"}, nil
		}
		svc := NewUserService(repo)
		user, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, ClearBio: true, ClearWebsite: true})
		require.NoError(t, err)
		assert.Empty(t, user.Bio)
		assert.Empty(t, user.Website)
	})

	t.Run("username taken", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 99, Username: username}, nil
		}
		svc := NewUserService(repo)
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, Username: "taken"})
		assertAppErrorCode(t, err, models.CodeValidationError)
	})

	t.Run("invalid username", func(t *testing.T) {
		svc := NewUserService(noopUserRepo())
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, Username: "a!"})
		assertAppErrorCode(t, err, models.CodeValidationError)
	})

	t.Run("invalid website", func(t *testing.T) {
		svc := NewUserService(noopUserRepo())
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: 1, Website: "not a url"})
		assertAppErrorCode(t, err, models.CodeValidationError)
	})
}
