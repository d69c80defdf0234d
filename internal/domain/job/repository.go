package job

import (
	"context"
	"errors"

	"github.com/honeycarbs/job-discovery/internal/domain"
)

// ErrUserNotFound is returned by a ProfileStore for unknown user ids
var ErrUserNotFound = errors.New("user not found")

// ProfileStore loads stored profile data. The pipeline only reads from it.
type ProfileStore interface {
	// FindUser returns the stored skills and location for userID
	FindUser(ctx context.Context, userID string) (domain.AuthenticatedUser, error)
}
