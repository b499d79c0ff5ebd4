package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
	"github.com/S-Matheka/patrons-cup-live-sub000/repositories"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.Email]; ok {
		return repositories.ErrUserEmailConflict
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func TestCreateUserAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserInput{
		Email:    "scorer@club.test",
		Name:     "First Tee Scorer",
		Password: "long-enough-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleScorer, created.Role)
	assert.Empty(t, created.PasswordHash)

	user, err := svc.Login(ctx, LoginInput{Email: "scorer@club.test", Password: "long-enough-secret"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{
		Email:    "admin@club.test",
		Password: "correct-password",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "admin@club.test", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@club.test", Password: "correct-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Email: "", Password: "x"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateUser(ctx, CreateUserInput{Email: "a@b.test", Password: "x", Role: "referee"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateUser(ctx, CreateUserInput{Email: "a@b.test", Password: "x"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, CreateUserInput{Email: "a@b.test", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}
