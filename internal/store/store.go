package store

import (
	"context"

	"github.com/sitee-labs/sitee-backend/internal/users/domain"
)

// Store is the whole-document persistence contract: one load returns
// every user, one save rewrites all of them. There are no partial
// updates and no transactions; callers load, mutate in memory, and
// save back.
type Store interface {
	Load(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, users []domain.User) error
}
