package credits

import (
	"context"

	"github.com/sitee-labs/sitee-backend/internal/users/domain"
	"github.com/sitee-labs/sitee-backend/internal/users/repository"
)

// Ledger applies the two-phase billing contract: Reserve debits one
// credit and persists before the external work starts, then the caller
// either Commits (keep the debit) or Releases (refund it). The window
// between the persisted debit and the settle is not crash-safe; a
// process dying in between loses the credit.
type Ledger struct {
	repo *repository.Repo
}

func NewLedger(repo *repository.Repo) *Ledger {
	return &Ledger{repo: repo}
}

// Reserve checks the balance and debits one credit, persisting
// immediately. Returns ErrInsufficientCredits when the balance is
// already zero.
func (l *Ledger) Reserve(ctx context.Context, userID string) (*Reservation, error) {
	user, err := l.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Credits <= 0 {
		return nil, domain.ErrInsufficientCredits
	}

	balance, err := l.repo.AdjustCredits(ctx, userID, -1)
	if err != nil {
		return nil, err
	}
	return &Reservation{ledger: l, userID: userID, Remaining: balance}, nil
}

// Reservation is a single debited credit awaiting settlement.
type Reservation struct {
	ledger  *Ledger
	userID  string
	settled bool

	// Remaining is the balance after the debit (after Release, the
	// refunded balance).
	Remaining int
}

// Commit keeps the debit. Further Release calls become no-ops.
func (r *Reservation) Commit() {
	r.settled = true
}

// Release refunds the debited credit and persists. Calling it after
// Commit, or twice, does nothing.
func (r *Reservation) Release(ctx context.Context) error {
	if r.settled {
		return nil
	}
	r.settled = true

	balance, err := r.ledger.repo.AdjustCredits(ctx, r.userID, 1)
	if err != nil {
		return err
	}
	r.Remaining = balance
	return nil
}
