package service_test

import (
	"context"
	"testing"

	"github.com/rehearse-io/rehearse-server/internal/repository/postgres"
	"github.com/rehearse-io/rehearse-server/internal/service"
	"github.com/rehearse-io/rehearse-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Signup(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   service.SignupInput
		setup   func()
		wantErr error
	}{
		{
			name: "successful signup",
			input: service.SignupInput{
				Name:     "New User",
				Email:    "new@example.com",
				Password: "password123",
			},
		},
		{
			name: "duplicate email",
			input: service.SignupInput{
				Name:     "Other User",
				Email:    "existing@example.com",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("existing@example.com").
					Build(t, testDB.DB)
			},
			wantErr: service.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			result, err := authService.Signup(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Email, result.User.Email)
			assert.NotEmpty(t, result.Token)

			// Stored hash must verify against the raw password and never
			// equal it.
			assert.NotEqual(t, tt.input.Password, result.User.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword(
				[]byte(result.User.PasswordHash), []byte(tt.input.Password)))

			// Token subject must round-trip to the stored user.
			userID, err := authService.ValidateToken(result.Token)
			require.NoError(t, err)
			assert.Equal(t, result.User.ID, userID)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name    string
		input   service.LoginInput
		wantErr error
	}{
		{
			name: "successful login",
			input: service.LoginInput{
				Email:    user.Email,
				Password: rawPassword,
			},
		},
		{
			name: "wrong password",
			input: service.LoginInput{
				Email:    user.Email,
				Password: "wrongpassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
		{
			name: "unknown email",
			input: service.LoginInput{
				Email:    "nobody@example.com",
				Password: "anypassword",
			},
			wantErr: service.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, result.User.ID)
			assert.NotEmpty(t, result.Token)
		})
	}
}

func TestAuthService_GetUserByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, cfg)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	got, err := authService.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	require.NoError(t, testDB.DB.Exec("DELETE FROM users WHERE id = ?", user.ID).Error)

	_, err = authService.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
