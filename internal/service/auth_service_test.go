package service

import (
	"testing"

	"go-goldloan/internal/apperr"
	"go-goldloan/internal/model"
	"go-goldloan/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users   map[uuid.UUID]*model.User
	byEmail map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[uuid.UUID]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	f.users[user.ID] = &stored
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindAll() ([]model.User, error) {
	var out []model.User
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(user *model.User) error {
	existing, ok := f.users[user.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if other, taken := f.byEmail[user.Email]; taken && other.ID != user.ID {
		return gorm.ErrDuplicatedKey
	}
	delete(f.byEmail, existing.Email)
	stored := *user
	f.users[user.ID] = &stored
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) Delete(id uuid.UUID) error {
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byEmail, user.Email)
	delete(f.users, id)
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, active bool) *model.User {
	t.Helper()
	user := &model.User{
		Name:         "Staff",
		Email:        email,
		Role:         model.RoleManager,
		IsActive:     active,
		TokenVersion: uuid.New().String(),
	}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, repo.Create(user))
	return user
}

func TestAuthLogin(t *testing.T) {
	t.Run("valid credentials return a token", func(t *testing.T) {
		repo := newFakeUserRepo()
		seedUser(t, repo, "staff@office", "secret123", true)
		svc := NewAuthService(repo)

		resp, err := svc.Login("staff@office", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "staff@office", resp.User.Email)

		claims, err := jwt.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)
	})

	t.Run("login rotates the session version", func(t *testing.T) {
		repo := newFakeUserRepo()
		user := seedUser(t, repo, "staff@office", "secret123", true)
		before := user.TokenVersion
		svc := NewAuthService(repo)

		_, err := svc.Login("staff@office", "secret123")
		require.NoError(t, err)

		after, err := repo.FindByEmail("staff@office")
		require.NoError(t, err)
		assert.NotEqual(t, before, after.TokenVersion)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := newFakeUserRepo()
		seedUser(t, repo, "staff@office", "secret123", true)
		svc := NewAuthService(repo)

		_, err := svc.Login("staff@office", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo())

		_, err := svc.Login("nobody@office", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		repo := newFakeUserRepo()
		seedUser(t, repo, "staff@office", "secret123", false)
		svc := NewAuthService(repo)

		_, err := svc.Login("staff@office", "secret123")
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestAuthResetPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "staff@office", "oldpass1", true)
	svc := NewAuthService(repo)

	require.NoError(t, svc.ResetPassword("staff@office", "oldpass1", "newpass1"))

	_, err := svc.Login("staff@office", "oldpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("staff@office", "newpass1")
	assert.NoError(t, err)

	err = svc.ResetPassword("staff@office", "badold", "whatever")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthValidateToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "staff@office", "secret123", true)
	svc := NewAuthService(repo)

	resp, err := svc.Login("staff@office", "secret123")
	require.NoError(t, err)

	checked, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "staff@office", checked.User.Email)

	// A second login invalidates the first session's token.
	_, err = svc.Login("staff@office", "secret123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.Token)
	assert.Error(t, err)
}

func TestUserServiceCreate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user, err := svc.Create(&UserInput{Name: "New Staff", Email: "new@office.example", Password: "secret123"}, "admin@office")
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, user.Role)

	_, err = svc.Create(&UserInput{Name: "Dup", Email: "new@office.example", Password: "secret123"}, "admin@office")
	var dup *apperr.DuplicateKeyError
	assert.ErrorAs(t, err, &dup)

	_, err = svc.Create(&UserInput{Name: "No Password", Email: "np@office.example"}, "admin@office")
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}
