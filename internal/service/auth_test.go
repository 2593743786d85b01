package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/ratelimit"
	"eventhub-backend/internal/repository"
	"eventhub-backend/internal/security"
	"eventhub-backend/internal/service"
)

const authTestSecret = "auth-test-secret-0123456789abcdef0123456789"

func newAuthService(users *MockUserRepo, limiter ratelimit.Limiter) service.AuthService {
	tm := security.NewTokenManager(authTestSecret, 15*time.Minute, 24*time.Hour)
	return service.NewAuthService(users, tm, limiter)
}

func hashedUser(id int32, email, password string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{ID: id, Email: email, PasswordHash: string(hash), Name: "Sam"}
}

func TestSignup_NormalizesEmail(t *testing.T) {
	users := &MockUserRepo{}
	svc := newAuthService(users, ratelimit.NewMemoryLimiter(1000, time.Minute))
	ctx := context.Background()

	users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "sam@example.com" && u.PasswordHash != "hunter2secret"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 42
	}).Return(nil)

	user, access, refresh, err := svc.Signup(ctx, "Sam", " Sam@Example.COM ", "hunter2secret")
	require.NoError(t, err)
	assert.Equal(t, int32(42), user.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
}

func TestSignup_ShortPassword(t *testing.T) {
	users := &MockUserRepo{}
	svc := newAuthService(users, ratelimit.NewMemoryLimiter(1000, time.Minute))

	_, _, _, err := svc.Signup(context.Background(), "Sam", "sam@example.com", "short")
	assert.True(t, domain.IsCode(err, domain.CodeInvalidArgument))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	users := &MockUserRepo{}
	svc := newAuthService(users, ratelimit.NewMemoryLimiter(1000, time.Minute))
	ctx := context.Background()

	users.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	_, _, _, err := svc.Signup(ctx, "Sam", "sam@example.com", "hunter2secret")
	assert.True(t, domain.IsCode(err, domain.CodeAlreadyRegistered))
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	users := &MockUserRepo{}
	svc := newAuthService(users, ratelimit.NewMemoryLimiter(1000, time.Minute))
	ctx := context.Background()

	users.On("GetByEmail", ctx, "sam@example.com").Return(hashedUser(42, "sam@example.com", "hunter2secret"), nil)
	users.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrNotFound)

	_, _, wrongPass := svc.Login(ctx, "sam@example.com", "not-the-password")
	_, _, unknown := svc.Login(ctx, "nobody@example.com", "whatever123")

	assert.True(t, domain.IsCode(wrongPass, domain.CodeUnauthorized))
	assert.True(t, domain.IsCode(unknown, domain.CodeUnauthorized))
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestLogin_RateLimitedByEmail(t *testing.T) {
	users := &MockUserRepo{}
	svc := newAuthService(users, ratelimit.NewMemoryLimiter(1, time.Hour))
	ctx := context.Background()

	users.On("GetByEmail", ctx, "sam@example.com").Return(nil, repository.ErrNotFound)

	_, _, first := svc.Login(ctx, "sam@example.com", "guess-one")
	assert.True(t, domain.IsCode(first, domain.CodeUnauthorized))

	_, _, second := svc.Login(ctx, "sam@example.com", "guess-two")
	assert.True(t, domain.IsCode(second, domain.CodeRateLimited))
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	users := &MockUserRepo{}
	tm := security.NewTokenManager(authTestSecret, 15*time.Minute, 24*time.Hour)
	svc := service.NewAuthService(users, tm, ratelimit.NewMemoryLimiter(1000, time.Minute))
	ctx := context.Background()

	access, err := tm.GenerateAccessToken(42, "sam@example.com")
	require.NoError(t, err)

	_, _, err = svc.Refresh(ctx, access)
	assert.True(t, domain.IsCode(err, domain.CodeUnauthorized))
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestRefresh_DeletedAccount(t *testing.T) {
	users := &MockUserRepo{}
	tm := security.NewTokenManager(authTestSecret, 15*time.Minute, 24*time.Hour)
	svc := service.NewAuthService(users, tm, ratelimit.NewMemoryLimiter(1000, time.Minute))
	ctx := context.Background()

	refresh, err := tm.GenerateRefreshToken(42, "sam@example.com")
	require.NoError(t, err)

	users.On("GetByID", ctx, int32(42)).Return(nil, repository.ErrNotFound)

	_, _, err = svc.Refresh(ctx, refresh)
	assert.True(t, domain.IsCode(err, domain.CodeUnauthorized))
}
