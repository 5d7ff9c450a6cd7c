package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"scentfeed/internal/config"
	"scentfeed/internal/domain"
	"scentfeed/internal/repository"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *repository.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*repository.Session, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Session), args.Error(1)
}

func (m *MockSessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendEmailVerification(ctx context.Context, toEmail, displayName, verificationToken string) error {
	args := m.Called(ctx, toEmail, displayName, verificationToken)
	return args.Error(0)
}

func (m *MockEmailService) SendPasswordResetEmail(ctx context.Context, toEmail, displayName, resetToken string) error {
	args := m.Called(ctx, toEmail, displayName, resetToken)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)

	user := &domain.User{
		ID:              uuid.New(),
		Email:           "vetiver@example.com",
		PasswordHash:    string(hash),
		Username:        "vetiver",
		DisplayName:     "Vetiver Fan",
		IsEmailVerified: true,
	}

	t.Run("Success", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockSessionRepo := new(MockSessionRepository)
		svc := NewAuthService(mockUserRepo, mockSessionRepo, new(MockEmailService), testConfig())

		mockUserRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		mockSessionRepo.On("Create", ctx, mock.MatchedBy(func(s *repository.Session) bool {
			return s.UserID == user.ID && s.TokenHash != ""
		})).Return(nil).Once()

		loggedIn, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-horse"})

		assert.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		claims, err := svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		svc := NewAuthService(mockUserRepo, new(MockSessionRepository), new(MockEmailService), testConfig())

		mockUserRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "wrong"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		svc := NewAuthService(mockUserRepo, new(MockSessionRepository), new(MockEmailService), testConfig())

		mockUserRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "nobody@example.com", Password: "x"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unverified Email", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		svc := NewAuthService(mockUserRepo, new(MockSessionRepository), new(MockEmailService), testConfig())

		unverified := *user
		unverified.IsEmailVerified = false

		mockUserRepo.On("GetByEmail", ctx, user.Email).Return(&unverified, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-horse"})

		assert.ErrorIs(t, err, ErrEmailNotVerified)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), new(MockSessionRepository), new(MockEmailService), testConfig())

	t.Run("Garbage Token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		other := testConfig()
		other.JWTSecret = "other-secret"

		ctx := context.Background()
		user := &domain.User{ID: uuid.New(), Email: "a@b.c", IsEmailVerified: true}
		hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
		user.PasswordHash = string(hash)

		mockUserRepo := new(MockUserRepository)
		mockUserRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		otherSvc := NewAuthService(mockUserRepo, newSessionRepoAllowingCreate(), new(MockEmailService), other)

		_, tokens, err := otherSvc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "pw"})
		assert.NoError(t, err)

		_, err = svc.ValidateAccessToken(tokens.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func newSessionRepoAllowingCreate() *MockSessionRepository {
	m := new(MockSessionRepository)
	m.On("Create", mock.Anything, mock.AnythingOfType("*repository.Session")).Return(nil)
	return m
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "amber@example.com"}

	t.Run("Rotates Session", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockSessionRepo := new(MockSessionRepository)
		svc := NewAuthService(mockUserRepo, mockSessionRepo, new(MockEmailService), testConfig())

		session := &repository.Session{ID: uuid.New(), UserID: user.ID}

		mockSessionRepo.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).Return(session, nil).Once()
		mockUserRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		mockSessionRepo.On("Revoke", ctx, session.ID).Return(nil).Once()
		mockSessionRepo.On("Create", ctx, mock.AnythingOfType("*repository.Session")).Return(nil).Once()

		tokens, err := svc.RefreshToken(ctx, "some-refresh-token")

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		mockSessionRepo.AssertExpectations(t)
	})

	t.Run("Unknown Token", func(t *testing.T) {
		mockSessionRepo := new(MockSessionRepository)
		svc := NewAuthService(new(MockUserRepository), mockSessionRepo, new(MockEmailService), testConfig())

		mockSessionRepo.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()

		_, err := svc.RefreshToken(ctx, "bogus")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	input := domain.CreateUserInput{
		Email:    "musk@example.com",
		Password: "password123",
		Username: "muskmania",
	}

	t.Run("Email Taken", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		svc := NewAuthService(mockUserRepo, new(MockSessionRepository), new(MockEmailService), testConfig())

		mockUserRepo.On("ExistsByEmail", ctx, input.Email).Return(true, nil).Once()

		_, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("Username Taken", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		svc := NewAuthService(mockUserRepo, new(MockSessionRepository), new(MockEmailService), testConfig())

		mockUserRepo.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		mockUserRepo.On("ExistsByUsername", ctx, input.Username).Return(true, nil).Once()

		_, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, ErrUsernameExists)
	})

	t.Run("Success Defaults Display Name", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockEmailSvc := new(MockEmailService)
		svc := NewAuthService(mockUserRepo, new(MockSessionRepository), mockEmailSvc, testConfig())

		mockUserRepo.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		mockUserRepo.On("ExistsByUsername", ctx, input.Username).Return(false, nil).Once()
		mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == input.Email && u.DisplayName == input.Username && !u.IsEmailVerified
		})).Return(nil).Once()
		mockUserRepo.On("SetEmailVerificationToken", ctx, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
		mockEmailSvc.On("SendEmailVerification", mock.Anything, input.Email, input.Username, mock.AnythingOfType("string")).Return(nil).Maybe()

		user, err := svc.Register(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, input.Username, user.DisplayName)
		mockUserRepo.AssertExpectations(t)
	})
}
