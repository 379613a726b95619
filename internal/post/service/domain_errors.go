package service

import (
	"net/http"

	commonerrors "github.com/avolkov/scribe/internal/common/errors"
	"github.com/avolkov/scribe/internal/common/validation"
)

var (
	ErrPostNotFound = commonerrors.NewDomainError(
		"POST_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"post not found",
	)

	// ErrNotPostAuthor guards mutation and deletion; the check is
	// all-or-nothing on the whole record.
	ErrNotPostAuthor = commonerrors.NewDomainError(
		"FORBIDDEN",
		commonerrors.CategoryForbidden,
		http.StatusForbidden,
		"caller is not the post author",
	)

	ErrValidation = validation.ErrValidation
)
