package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventhub/eventhub-go/internal/crypto"
	"github.com/eventhub/eventhub-go/internal/model"
	"github.com/eventhub/eventhub-go/internal/repository"
)

// memUserStore is an in-memory UserStore keyed by email.
type memUserStore struct {
	users map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*model.User)}
}

func (m *memUserStore) Create(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	m.users[user.Email] = &stored
	return nil
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := m.users[email]; ok {
		found := *u
		return &found, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

const testSecret = "test-secret"

func newTestAuthService(store UserStore) *AuthService {
	return NewAuthService(store, testSecret, time.Hour, zerolog.Nop())
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "A",
		Email:    "A@X.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, "A", resp.Data.Name)
	assert.Equal(t, "a@x.com", resp.Data.Email, "email is lowercased")
	assert.Equal(t, model.RoleUser, resp.Data.Role, "role defaults to user")
	assert.False(t, resp.Data.ID.IsZero())

	claims, err := crypto.ValidateToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, resp.Data.ID.Hex(), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestRegisterHashesPassword(t *testing.T) {
	store := newMemUserStore()
	svc := newTestAuthService(store)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "A",
		Email:    "a@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	stored := store.users["a@x.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.True(t, strings.HasPrefix(stored.Password, "$2"), "expected a bcrypt hash")
	assert.True(t, crypto.CheckPassword("secret1", stored.Password))
}

func TestRegisterRoleHandling(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "A", Email: "admin@x.com", Password: "secret1", Role: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, resp.Data.Role)

	resp, err = svc.Register(context.Background(), model.RegisterRequest{
		Name: "B", Email: "b@x.com", Password: "secret1", Role: "overlord",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, resp.Data.Role, "unrecognized roles default to user")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newMemUserStore()
	svc := newTestAuthService(store)

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), model.RegisterRequest{
		Name: "B", Email: "a@x.com", Password: "other-secret",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, store.users, 1, "no second account is created")
}

func TestLoginAfterRegister(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", resp.Message)

	_, err = crypto.ValidateToken(resp.Token, testSecret)
	assert.NoError(t, err)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc := newTestAuthService(newMemUserStore())

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, unknownErr := svc.Login(context.Background(), model.LoginRequest{
		Email: "nobody@x.com", Password: "secret1",
	})
	_, wrongErr := svc.Login(context.Background(), model.LoginRequest{
		Email: "a@x.com", Password: "wrong-password",
	})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr, "unknown email and wrong password are indistinguishable")
}

func TestProfile(t *testing.T) {
	store := newMemUserStore()
	svc := newTestAuthService(store)

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Name: "A", Email: "a@x.com", Password: "secret1",
	})
	require.NoError(t, err)

	caller := model.AuthUser{ID: resp.Data.ID, Email: resp.Data.Email, Role: resp.Data.Role}

	first, err := svc.Profile(context.Background(), caller)
	require.NoError(t, err)
	second, err := svc.Profile(context.Background(), caller)
	require.NoError(t, err)
	assert.Equal(t, first, second, "profile fetch is idempotent")
	assert.Equal(t, "A", first.Name)

	_, err = svc.Profile(context.Background(), model.AuthUser{ID: primitive.NewObjectID()})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
