package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipebook/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateToken(userID int64, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "supersecret",
	}
}

func TestService_Register_Success(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockJWTService))

	users.On("ExistsByEmail", mock.Anything, "cook@example.com").Return(false, nil)
	users.On("ExistsByUsername", mock.Anything, "cook").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := svc.Register(context.Background(), registerRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(999), user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash)
	users.AssertExpectations(t)
}

func TestService_Register_NormalizesEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockJWTService))

	req := registerRequest()
	req.Email = "  Cook@Example.COM "

	users.On("ExistsByEmail", mock.Anything, "cook@example.com").Return(false, nil)
	users.On("ExistsByUsername", mock.Anything, "cook").Return(false, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "cook@example.com"
	})).Return(nil)

	_, err := svc.Register(context.Background(), req)
	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestService_Register_ReservedUsername(t *testing.T) {
	svc := NewService(new(MockUserRepository), new(MockJWTService))

	for _, name := range []string{"me", "Admin", "MODERATOR"} {
		req := registerRequest()
		req.Username = name
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrUsernameReserved, name)
	}
}

func TestService_Register_EmailTaken(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockJWTService))

	users.On("ExistsByEmail", mock.Anything, "cook@example.com").Return(true, nil)

	_, err := svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Register_UsernameTaken(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockJWTService))

	users.On("ExistsByEmail", mock.Anything, "cook@example.com").Return(false, nil)
	users.On("ExistsByUsername", mock.Anything, "cook").Return(true, nil)

	_, err := svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestService_Register_RaceLoserGetsEmailConflict(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockJWTService))

	// Pre-check passes, insert collides, re-check shows the email row won.
	users.On("ExistsByEmail", mock.Anything, "cook@example.com").Return(false, nil).Once()
	users.On("ExistsByUsername", mock.Anything, "cook").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
	users.On("ExistsByEmail", mock.Anything, "cook@example.com").Return(true, nil).Once()

	_, err := svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertExpectations(t)
}

func TestService_Register_RaceLoserGetsUsernameConflict(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockJWTService))

	// The colliding column was the username: the email stays free on
	// re-check, so the conflict is attributed to the username.
	users.On("ExistsByEmail", mock.Anything, "cook@example.com").Return(false, nil)
	users.On("ExistsByUsername", mock.Anything, "cook").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
	users.AssertExpectations(t)
}

func TestService_Login_Success(t *testing.T) {
	users := new(MockUserRepository)
	jwt := new(MockJWTService)
	svc := NewService(users, jwt)

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "cook@example.com").Return(&domain.User{
		ID:           999,
		Email:        "cook@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}, nil)
	jwt.On("GenerateToken", int64(999), string(domain.RoleUser)).Return("token-abc", nil)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "cook@example.com",
		Password: "supersecret",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", result.Token)
	assert.Empty(t, result.User.PasswordHash)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockJWTService))

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	users.On("GetByEmail", mock.Anything, "cook@example.com").Return(&domain.User{
		PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "cook@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockJWTService))

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
