package repository

import (
	"context"
	"fmt"

	"github.com/sitee-labs/sitee-backend/internal/store"
	"github.com/sitee-labs/sitee-backend/internal/users/domain"
)

// Repo implements user and project operations over the whole-document
// store. Every mutation loads the full collection, edits the in-memory
// copy and rewrites the document.
type Repo struct {
	store store.Store
}

func NewRepo(s store.Store) *Repo {
	return &Repo{store: s}
}

func (r *Repo) ListUsers(ctx context.Context) ([]domain.User, error) {
	return r.store.Load(ctx)
}

func (r *Repo) GetUser(ctx context.Context, id string) (*domain.User, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// CreateUser registers a new user. A nil credits pointer grants the
// default balance.
func (r *Repo) CreateUser(ctx context.Context, id string, credits *int) (*domain.User, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return nil, domain.ErrDuplicateUser
		}
	}

	balance := domain.DefaultCredits
	if credits != nil {
		balance = *credits
	}
	user := domain.User{ID: id, Credits: balance, Projects: []domain.Project{}}
	users = append(users, user)
	if err := r.store.Save(ctx, users); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}
	return &user, nil
}

// SaveProject appends the project to the user's list. The reserved
// chat-history name upserts instead: the existing entry's html and
// timestamp are replaced so at most one chat-history project exists.
func (r *Repo) SaveProject(ctx context.Context, userID string, p domain.Project) (*domain.Project, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	user := findUser(users, userID)
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if p.Name == domain.ChatHistoryProjectName {
		for i := range user.Projects {
			if user.Projects[i].Name == domain.ChatHistoryProjectName {
				user.Projects[i].HTML = p.HTML
				user.Projects[i].Timestamp = p.Timestamp
				saved := user.Projects[i]
				if err := r.store.Save(ctx, users); err != nil {
					return nil, fmt.Errorf("save users: %w", err)
				}
				return &saved, nil
			}
		}
	}

	user.Projects = append(user.Projects, p)
	if err := r.store.Save(ctx, users); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}
	return &p, nil
}

// UpdateProject replaces the mutable fields of the project keyed by
// timestamp.
func (r *Repo) UpdateProject(ctx context.Context, userID string, timestamp int64, p domain.Project) (*domain.Project, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	user := findUser(users, userID)
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	existing := user.FindProject(timestamp)
	if existing == nil {
		return nil, domain.ErrProjectNotFound
	}

	existing.HTML = p.HTML
	existing.Name = p.Name
	existing.PublishedURL = p.PublishedURL
	existing.React = p.React

	updated := *existing
	if err := r.store.Save(ctx, users); err != nil {
		return nil, fmt.Errorf("save users: %w", err)
	}
	return &updated, nil
}

func (r *Repo) DeleteProject(ctx context.Context, userID string, timestamp int64) error {
	users, err := r.store.Load(ctx)
	if err != nil {
		return err
	}
	user := findUser(users, userID)
	if user == nil {
		return domain.ErrUserNotFound
	}

	kept := user.Projects[:0]
	for _, p := range user.Projects {
		if p.Timestamp != timestamp {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(user.Projects) {
		return domain.ErrProjectNotFound
	}
	user.Projects = kept

	if err := r.store.Save(ctx, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// DeleteAllProjects removes every project except the chat-history one.
func (r *Repo) DeleteAllProjects(ctx context.Context, userID string) error {
	users, err := r.store.Load(ctx)
	if err != nil {
		return err
	}
	user := findUser(users, userID)
	if user == nil {
		return domain.ErrUserNotFound
	}

	kept := []domain.Project{}
	for _, p := range user.Projects {
		if p.Name == domain.ChatHistoryProjectName {
			kept = append(kept, p)
		}
	}
	user.Projects = kept

	if err := r.store.Save(ctx, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (r *Repo) SetPublishedURL(ctx context.Context, userID string, timestamp int64, url string) error {
	return r.mutateProject(ctx, userID, timestamp, func(p *domain.Project) {
		p.PublishedURL = &url
	})
}

func (r *Repo) SetSuggestions(ctx context.Context, userID string, timestamp int64, text string) error {
	return r.mutateProject(ctx, userID, timestamp, func(p *domain.Project) {
		p.Suggestions = &text
	})
}

// AdjustCredits applies delta to the user's balance, persists, and
// returns the new balance. It does not enforce a floor; callers check
// the balance before debiting.
func (r *Repo) AdjustCredits(ctx context.Context, userID string, delta int) (int, error) {
	users, err := r.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	user := findUser(users, userID)
	if user == nil {
		return 0, domain.ErrUserNotFound
	}

	user.Credits += delta
	balance := user.Credits
	if err := r.store.Save(ctx, users); err != nil {
		return 0, fmt.Errorf("save users: %w", err)
	}
	return balance, nil
}

func (r *Repo) mutateProject(ctx context.Context, userID string, timestamp int64, fn func(*domain.Project)) error {
	users, err := r.store.Load(ctx)
	if err != nil {
		return err
	}
	user := findUser(users, userID)
	if user == nil {
		return domain.ErrUserNotFound
	}
	project := user.FindProject(timestamp)
	if project == nil {
		return domain.ErrProjectNotFound
	}

	fn(project)
	if err := r.store.Save(ctx, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func findUser(users []domain.User, id string) *domain.User {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}
