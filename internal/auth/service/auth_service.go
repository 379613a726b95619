package service

import (
	"context"
	"errors"

	commoncrypto "github.com/avolkov/scribe/internal/common/crypto"
	"github.com/avolkov/scribe/internal/common/dto"
	commonerrors "github.com/avolkov/scribe/internal/common/errors"
	"github.com/avolkov/scribe/internal/common/logger"
	"github.com/avolkov/scribe/internal/common/mapper"
	"github.com/avolkov/scribe/internal/common/validation"
	"github.com/avolkov/scribe/internal/observability/metrics"
	userdomain "github.com/avolkov/scribe/internal/user/domain"
	userrepo "github.com/avolkov/scribe/internal/user/repository"
)

type AuthService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	issuer      TokenIssuer
	idGenerator commoncrypto.IDGenerator
	log         *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	issuer TokenIssuer,
	idGenerator commoncrypto.IDGenerator,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:        repo,
		hasher:      hasher,
		issuer:      issuer,
		idGenerator: idGenerator,
		log:         log,
	}
}

type SignUpInput struct {
	Username string `validate:"required,min=4,max=32"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,max=72"`
}

type SignInInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type AuthResult struct {
	AccessToken string
	User        dto.User
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "signup_attempt",
	}).Info("signup attempt")

	if err := validation.Struct(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_validation_failed",
		}).Warnf("signup validation failed: %v", err)
		return AuthResult{}, err
	}

	if err := s.checkIdentityFree(ctx, input.Username, input.Email); err != nil {
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		return AuthResult{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_id_generation_failed",
		}).Errorf("signup failed: id generation error: %v", err)
		return AuthResult{}, err
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// the uniqueness pre-checks race with concurrent signups; the
		// constraint violation is the authoritative answer
		if errors.Is(err, userrepo.ErrUsernameAlreadyExists) || errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "signup_duplicate_identity",
			}).Warn("signup failed: identity already registered")
			return AuthResult{}, ErrDuplicateIdentity
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	token, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  id,
			"action":   "signup_token_issue_failed",
		}).Errorf("signup failed: token issue error: %v", err)
		return AuthResult{}, err
	}

	metrics.SignupsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  id,
		"action":   "signup_success",
	}).Info("signup success")

	return AuthResult{
		AccessToken: token,
		User:        mapper.UserToDTO(user.AsPublic()),
	}, nil
}

func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "signin_attempt",
	}).Info("signin attempt")

	if err := validation.Struct(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signin_validation_failed",
		}).Warnf("signin validation failed: %v", err)
		return AuthResult{}, err
	}

	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			metrics.SigninFailuresTotal.Inc()
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "signin_user_not_found",
			}).Warn("signin failed: not found")
			return AuthResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signin_fetch_failed",
		}).Errorf("signin failed: %v", err)
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		metrics.SigninFailuresTotal.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signin_invalid_password",
		}).Warn("signin failed: invalid password")
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  string(user.ID),
			"action":   "signin_token_issue_failed",
		}).Errorf("signin failed: token issue error: %v", err)
		return AuthResult{}, err
	}

	metrics.SigninsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "signin_success",
	}).Info("signin success")

	return AuthResult{
		AccessToken: token,
		User:        mapper.UserToDTO(user.AsPublic()),
	}, nil
}

func (s *AuthService) checkIdentityFree(ctx context.Context, username, email string) error {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "signup_username_taken",
		}).Warn("signup failed: username taken")
		return ErrDuplicateIdentity
	} else if !errors.Is(err, userrepo.ErrUserNotFound) {
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "signup_email_taken",
		}).Warn("signup failed: email taken")
		return ErrDuplicateIdentity
	} else if !errors.Is(err, userrepo.ErrUserNotFound) {
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	return nil
}
