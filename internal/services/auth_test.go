package services

import (
	"apiforge/internal/models"
	"apiforge/internal/repository/repotest"
	"apiforge/internal/utils"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthService(store *repotest.Store) *AuthService {
	return NewAuthService(store.Users(), testSecret, time.Hour)
}

func TestRegisterUser(t *testing.T) {
	store := repotest.New()
	svc := newAuthService(store)

	user, err := svc.RegisterUser(context.Background(), models.RegisterRequest{
		Name:     "  Alice ",
		Email:    " Alice@Example.COM ",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("password123", user.PasswordHash))
	assert.Equal(t, 1, store.UserCount())
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	store := repotest.New()
	svc := newAuthService(store)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, models.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, models.RegisterRequest{Name: "Other", Email: "ALICE@example.com", Password: "password456"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 1, store.UserCount())
}

func TestRegisterUser_Validation(t *testing.T) {
	cases := map[string]models.RegisterRequest{
		"пустое имя":      {Name: " ", Email: "a@example.com", Password: "password123"},
		"кривой email":    {Name: "A", Email: "not-an-email", Password: "password123"},
		"короткий пароль": {Name: "A", Email: "a@example.com", Password: "short"},
		"пустой запрос":   {},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			store := repotest.New()
			_, err := newAuthService(store).RegisterUser(context.Background(), req)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "ожидали ValidationError, получили %v", err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Zero(t, store.UserCount())
		})
	}
}

func TestLogin(t *testing.T) {
	store := repotest.New()
	svc := newAuthService(store)
	ctx := context.Background()

	registered, err := svc.RegisterUser(ctx, models.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "BOB@example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "bob@example.com", claims.Email)
}

func TestLogin_NoEnumeration(t *testing.T) {
	store := repotest.New()
	svc := newAuthService(store)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, models.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "password123"})
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "bob@example.com", "wrong-password")
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "password123")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestRegisterUser_PasswordTooLong(t *testing.T) {
	store := repotest.New()
	svc := newAuthService(store)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, models.RegisterRequest{Name: "Dan", Email: "dan@example.com", Password: strings.Repeat("a", 80)})
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	// 37 кириллических букв занимают 74 байта
	_, err = svc.RegisterUser(ctx, models.RegisterRequest{Name: "Dan", Email: "dan@example.com", Password: strings.Repeat("я", 37)})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Zero(t, store.UserCount())

	_, err = svc.RegisterUser(ctx, models.RegisterRequest{Name: "Dan", Email: "dan@example.com", Password: strings.Repeat("a", 72)})
	assert.NoError(t, err)
}

func TestLogin_UnknownEmailStillComparesHash(t *testing.T) {
	svc := newAuthService(repotest.New())
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "nobody@example.com", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// bcrypt с cost 12 заметно дольше 50ms, мгновенный отказ выдал бы отсутствие пользователя
	start := time.Now()
	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestAuthenticate_RejectsForeignSecret(t *testing.T) {
	svc := newAuthService(repotest.New())

	token, err := utils.GenerateToken("other-secret", uuid.New(), "x@example.com", time.Hour)
	require.NoError(t, err)

	_, err = svc.Authenticate(token)
	assert.ErrorIs(t, err, utils.ErrInvalidSession)
}
