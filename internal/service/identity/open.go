package identity

import (
	"context"

	"SignalStories/internal/domain/models"
)

// OpenVerifier admits every request as the anonymous user. It is only wired
// when auth.allow_open is set.
type OpenVerifier struct{}

func (OpenVerifier) Verify(context.Context, string) (*models.AuthenticatedUser, error) {
	return &models.AuthenticatedUser{UID: models.AnonymousUID}, nil
}
