package credits

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitee-labs/sitee-backend/internal/store"
	"github.com/sitee-labs/sitee-backend/internal/users/domain"
	"github.com/sitee-labs/sitee-backend/internal/users/repository"
)

func newLedger(credits int) (*Ledger, *repository.Repo) {
	repo := repository.NewRepo(store.NewMemStore(domain.User{ID: "u1", Credits: credits}))
	return NewLedger(repo), repo
}

func TestLedger_ReserveDebitsImmediately(t *testing.T) {
	ledger, repo := newLedger(10)
	ctx := context.Background()

	res, err := ledger.Reserve(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 9, res.Remaining)

	// The debit is persisted before any external work happens.
	u, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 9, u.Credits)
}

func TestLedger_ReserveInsufficientCredits(t *testing.T) {
	ledger, _ := newLedger(0)

	_, err := ledger.Reserve(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrInsufficientCredits)
}

func TestLedger_ReserveUnknownUser(t *testing.T) {
	ledger, _ := newLedger(5)

	_, err := ledger.Reserve(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLedger_ReleaseRefunds(t *testing.T) {
	ledger, repo := newLedger(10)
	ctx := context.Background()

	res, err := ledger.Reserve(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, res.Release(ctx))
	assert.Equal(t, 10, res.Remaining)

	u, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, u.Credits)

	// A second release must not over-refund.
	require.NoError(t, res.Release(ctx))
	u, err = repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, u.Credits)
}

func TestLedger_CommitKeepsDebit(t *testing.T) {
	ledger, repo := newLedger(10)
	ctx := context.Background()

	res, err := ledger.Reserve(ctx, "u1")
	require.NoError(t, err)
	res.Commit()

	// Release after commit is a no-op.
	require.NoError(t, res.Release(ctx))

	u, err := repo.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 9, u.Credits)
}
