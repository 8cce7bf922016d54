package user

import (
	"Produce-Scan-Backend/domain"
	"Produce-Scan-Backend/entities"
	"context"
	"testing"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type memoryUserRepository struct {
	users  map[string]*entities.User
	nextID uint
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]*entities.User{}}
}

func (m *memoryUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	m.nextID++
	user.ID = m.nextID
	m.users[user.Email] = user
	return nil
}

func (m *memoryUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	if user, ok := m.users[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUserRepository) GetUserByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUserRepository) GetUserByID(_ context.Context, id uint) (*entities.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUserRepository) UpdateLastLogin(_ context.Context, user *entities.User) error {
	return nil
}

type fakeJWTService struct{}

func (f *fakeJWTService) GenerateTokenUser(userID uint, role string) string {
	return "token-for-user"
}

func (f *fakeJWTService) ValidateTokenUser(token string) (*gojwt.Token, error) {
	return nil, nil
}

func (f *fakeJWTService) GetUserIDByToken(token string) (uint, string, error) {
	return 0, "", nil
}

func seedUser(repo *memoryUserRepository, email, username, password string, active bool) *entities.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &entities.User{
		Email:    email,
		Username: username,
		Password: string(hashed),
		Active:   active,
		Role:     domain.RoleUser,
	}
	_ = repo.CreateUser(context.Background(), user)
	return user
}

func TestRegister(t *testing.T) {
	repo := newMemoryUserRepository()
	service := NewUserService(repo, &fakeJWTService{})

	res, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageSuccessRegister, res.Message)
	assert.Equal(t, "alice@example.com", res.Email)
	assert.NotZero(t, res.UserID)

	stored := repo.users["alice@example.com"]
	require.NotNil(t, stored)
	assert.True(t, stored.Active)
	assert.Equal(t, domain.RoleUser, stored.Role)
	// Password is stored hashed, never verbatim
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMemoryUserRepository()
	service := NewUserService(repo, &fakeJWTService{})
	seedUser(repo, "alice@example.com", "alice", "secret123", true)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice2",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newMemoryUserRepository()
	service := NewUserService(repo, &fakeJWTService{})
	seedUser(repo, "alice@example.com", "alice", "secret123", true)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:    "other@example.com",
		Username: "alice",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
}

func TestLogin(t *testing.T) {
	repo := newMemoryUserRepository()
	service := NewUserService(repo, &fakeJWTService{})
	seedUser(repo, "alice@example.com", "alice", "secret123", true)

	res, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageSuccessLogin, res.Message)
	assert.Equal(t, "token-for-user", res.Token)
	assert.Equal(t, "alice", res.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMemoryUserRepository()
	service := NewUserService(repo, &fakeJWTService{})
	seedUser(repo, "alice@example.com", "alice", "secret123", true)

	_, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	service := NewUserService(newMemoryUserRepository(), &fakeJWTService{})

	_, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "ghost@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	repo := newMemoryUserRepository()
	service := NewUserService(repo, &fakeJWTService{})
	seedUser(repo, "alice@example.com", "alice", "secret123", false)

	_, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestMe(t *testing.T) {
	repo := newMemoryUserRepository()
	service := NewUserService(repo, &fakeJWTService{})
	user := seedUser(repo, "alice@example.com", "alice", "secret123", true)

	res, err := service.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.UserID)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, []string{domain.RoleUser}, res.Roles)

	_, err = service.Me(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
