package service

import (
	"net/http"

	commonerrors "github.com/avolkov/scribe/internal/common/errors"
	"github.com/avolkov/scribe/internal/common/validation"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong password
	// so the response never reveals which one it was.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid username or password",
	)

	// ErrDuplicateIdentity covers username and email collisions alike.
	ErrDuplicateIdentity = commonerrors.NewDomainError(
		"DUPLICATE_IDENTITY",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"username or email already registered",
	)

	ErrValidation = validation.ErrValidation
)
