package http

import (
	"strings"

	"github.com/google/uuid"

	commonerrors "github.com/avolkov/scribe/internal/common/errors"
)

func ValidateUUID(s string) error {
	if s == "" {
		return commonerrors.ErrEmptyUUID
	}
	_, err := uuid.Parse(s)
	return err
}

// ExtractPostIDFromPath pulls the {id} segment out of /api/posts/{id}.
// Returns false for the bare collection path and for trailing garbage.
func ExtractPostIDFromPath(path string) (string, bool) {
	const prefix = "/api/posts/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}

	remaining := strings.TrimPrefix(path, prefix)
	parts := strings.Split(remaining, "/")
	if len(parts) != 1 || parts[0] == "" {
		return "", false
	}

	return parts[0], true
}
