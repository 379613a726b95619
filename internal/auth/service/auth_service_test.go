package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/avolkov/scribe/internal/auth/service"
	commonerrors "github.com/avolkov/scribe/internal/common/errors"
	"github.com/avolkov/scribe/internal/common/logger"
	userdomain "github.com/avolkov/scribe/internal/user/domain"
	userrepo "github.com/avolkov/scribe/internal/user/repository"
)

func setupAuthService(t *testing.T) (*service.AuthService, *mockUserRepo, *mockHasher, *mockTokenIssuer, *mockIDGenerator) {
	_ = t
	repo := &mockUserRepo{}
	hasher := &mockHasher{}
	issuer := &mockTokenIssuer{}
	idGenerator := &mockIDGenerator{}

	log, _ := logger.New("", "test", "info")

	svc := service.NewAuthService(repo, hasher, issuer, idGenerator, log)
	return svc, repo, hasher, issuer, idGenerator
}

func TestAuthService_SignUp_Success(t *testing.T) {
	svc, repo, hasher, _, idGenerator := setupAuthService(t)

	userID := "user-123"
	username := "testuser"
	email := "test@example.com"
	password := "password123"
	hashedPassword := "hashed_password123"

	idGenerator.newIDFunc = func() (string, error) {
		return userID, nil
	}

	hasher.hashFunc = func(p string) (string, error) {
		return hashedPassword, nil
	}

	repo.createFunc = func(ctx context.Context, user userdomain.User) error {
		if user.Username != username {
			t.Errorf("expected username %s, got %s", username, user.Username)
		}
		if user.Email != email {
			t.Errorf("expected email %s, got %s", email, user.Email)
		}
		if user.PasswordHash != hashedPassword {
			t.Errorf("expected password hash %s, got %s", hashedPassword, user.PasswordHash)
		}
		return nil
	}

	result, err := svc.SignUp(context.Background(), service.SignUpInput{
		Username: username,
		Email:    email,
		Password: password,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.AccessToken == "" {
		t.Error("expected access token to be set")
	}

	if result.User.ID != userID {
		t.Errorf("expected user id %s, got %s", userID, result.User.ID)
	}

	if result.User.Username != username {
		t.Errorf("expected username %s, got %s", username, result.User.Username)
	}
}

func TestAuthService_SignUp_ValidationError(t *testing.T) {
	svc, _, _, _, _ := setupAuthService(t)

	testCases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "abc", "test@example.com", "password123"},
		{"long username", strings.Repeat("a", 33), "test@example.com", "password123"},
		{"missing username", "", "test@example.com", "password123"},
		{"missing email", "testuser", "", "password123"},
		{"invalid email", "testuser", "not-an-email", "password123"},
		{"short password", "testuser", "test@example.com", "12345"},
		{"long password", "testuser", "test@example.com", strings.Repeat("p", 73)},
		{"missing password", "testuser", "test@example.com", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SignUp(context.Background(), service.SignUpInput{
				Username: tc.username,
				Email:    tc.email,
				Password: tc.password,
			})

			if err == nil {
				t.Fatal("expected validation error")
			}

			if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "VALIDATION_FAILED" {
				t.Errorf("expected VALIDATION_FAILED error, got %v", err)
			}
		})
	}
}

func TestAuthService_SignUp_UsernameTaken(t *testing.T) {
	svc, repo, _, _, _ := setupAuthService(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{ID: "existing", Username: username}, nil
	}

	_, err := svc.SignUp(context.Background(), service.SignUpInput{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	})

	if !errors.Is(err, service.ErrDuplicateIdentity) {
		t.Fatalf("expected DUPLICATE_IDENTITY error, got %v", err)
	}
}

func TestAuthService_SignUp_EmailTaken(t *testing.T) {
	svc, repo, _, _, _ := setupAuthService(t)

	repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{ID: "existing", Email: email}, nil
	}

	_, err := svc.SignUp(context.Background(), service.SignUpInput{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	})

	if !errors.Is(err, service.ErrDuplicateIdentity) {
		t.Fatalf("expected DUPLICATE_IDENTITY error, got %v", err)
	}
}

func TestAuthService_SignUp_DuplicateRaceOnCreate(t *testing.T) {
	svc, repo, _, _, _ := setupAuthService(t)

	testCases := []struct {
		name      string
		createErr error
	}{
		{"username constraint", userrepo.ErrUsernameAlreadyExists},
		{"email constraint", userrepo.ErrEmailAlreadyExists},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo.createFunc = func(ctx context.Context, user userdomain.User) error {
				return tc.createErr
			}

			_, err := svc.SignUp(context.Background(), service.SignUpInput{
				Username: "testuser",
				Email:    "test@example.com",
				Password: "password123",
			})

			if !errors.Is(err, service.ErrDuplicateIdentity) {
				t.Fatalf("expected DUPLICATE_IDENTITY error, got %v", err)
			}
		})
	}
}

func TestAuthService_SignUp_HashError(t *testing.T) {
	svc, _, hasher, _, _ := setupAuthService(t)

	hasher.hashFunc = func(p string) (string, error) {
		return "", errors.New("hash error")
	}

	_, err := svc.SignUp(context.Background(), service.SignUpInput{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	})

	if err == nil {
		t.Fatal("expected error")
	}
}

func TestAuthService_SignUp_IDGenerationError(t *testing.T) {
	svc, _, _, _, idGenerator := setupAuthService(t)

	idGenerator.newIDFunc = func() (string, error) {
		return "", errors.New("id generation error")
	}

	_, err := svc.SignUp(context.Background(), service.SignUpInput{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	})

	if err == nil {
		t.Fatal("expected error")
	}
}

func TestAuthService_SignUp_ResultOmitsPasswordHash(t *testing.T) {
	svc, _, _, _, _ := setupAuthService(t)

	result, err := svc.SignUp(context.Background(), service.SignUpInput{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.User.Username != "testuser" || result.User.Email != "test@example.com" {
		t.Errorf("unexpected user projection: %+v", result.User)
	}
}

func TestAuthService_SignIn_Success(t *testing.T) {
	svc, repo, hasher, issuer, _ := setupAuthService(t)

	storedHash := "stored-hash"
	repo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{
			ID:           "user-123",
			Username:     username,
			Email:        "test@example.com",
			PasswordHash: storedHash,
		}, nil
	}

	hasher.compareFunc = func(hash string, password string) error {
		if hash != storedHash {
			t.Errorf("expected stored hash %s, got %s", storedHash, hash)
		}
		if password != "password123" {
			t.Errorf("expected submitted password, got %s", password)
		}
		return nil
	}

	issuer.issueFunc = func(user userdomain.User) (string, error) {
		if string(user.ID) != "user-123" {
			t.Errorf("expected user id user-123, got %s", user.ID)
		}
		return "signed-token", nil
	}

	result, err := svc.SignIn(context.Background(), service.SignInInput{
		Username: "testuser",
		Password: "password123",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.AccessToken != "signed-token" {
		t.Errorf("expected signed token, got %s", result.AccessToken)
	}

	if result.User.ID != "user-123" {
		t.Errorf("expected user id user-123, got %s", result.User.ID)
	}
}

func TestAuthService_SignIn_UnknownUser(t *testing.T) {
	svc, repo, _, _, _ := setupAuthService(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}

	_, err := svc.SignIn(context.Background(), service.SignInInput{
		Username: "ghost",
		Password: "password123",
	})

	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected INVALID_CREDENTIALS error, got %v", err)
	}
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	svc, repo, hasher, _, _ := setupAuthService(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{ID: "user-123", Username: username, PasswordHash: "stored-hash"}, nil
	}

	hasher.compareFunc = func(hash string, password string) error {
		return errors.New("mismatch")
	}

	_, err := svc.SignIn(context.Background(), service.SignInInput{
		Username: "testuser",
		Password: "wrong",
	})

	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected INVALID_CREDENTIALS error, got %v", err)
	}
}

func TestAuthService_SignIn_FailureIsIndistinguishable(t *testing.T) {
	svc, repo, hasher, _, _ := setupAuthService(t)

	_, unknownErr := svc.SignIn(context.Background(), service.SignInInput{
		Username: "ghost",
		Password: "password123",
	})

	repo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{ID: "user-123", Username: username, PasswordHash: "stored-hash"}, nil
	}
	hasher.compareFunc = func(hash string, password string) error {
		return errors.New("mismatch")
	}

	_, wrongPasswordErr := svc.SignIn(context.Background(), service.SignInInput{
		Username: "testuser",
		Password: "wrong",
	})

	unknownDomain, ok := commonerrors.AsDomainError(unknownErr)
	if !ok {
		t.Fatalf("expected domain error for unknown user, got %v", unknownErr)
	}
	wrongDomain, ok := commonerrors.AsDomainError(wrongPasswordErr)
	if !ok {
		t.Fatalf("expected domain error for wrong password, got %v", wrongPasswordErr)
	}

	if unknownDomain.Code() != wrongDomain.Code() {
		t.Errorf("expected identical codes, got %s and %s", unknownDomain.Code(), wrongDomain.Code())
	}
	if unknownDomain.Message() != wrongDomain.Message() {
		t.Errorf("expected identical messages, got %q and %q", unknownDomain.Message(), wrongDomain.Message())
	}
}

func TestAuthService_SignIn_ValidationError(t *testing.T) {
	svc, _, _, _, _ := setupAuthService(t)

	testCases := []struct {
		name     string
		username string
		password string
	}{
		{"missing username", "", "password123"},
		{"missing password", "testuser", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SignIn(context.Background(), service.SignInInput{
				Username: tc.username,
				Password: tc.password,
			})

			if err == nil {
				t.Fatal("expected validation error")
			}

			if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "VALIDATION_FAILED" {
				t.Errorf("expected VALIDATION_FAILED error, got %v", err)
			}
		})
	}
}
