package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/sitee-labs/sitee-backend/internal/users/domain"
)

// FileStore keeps the full user collection in a single JSON file.
// Reads degrade to an empty collection on a missing or unreadable
// file; writes rewrite the whole file unconditionally. Concurrent
// writers are not serialized — the last save wins.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(ctx context.Context) ([]domain.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[warn] operation=store_load path=%s error=%v", s.path, err)
		}
		return []domain.User{}, nil
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		log.Printf("[warn] operation=store_load path=%s error=malformed content: %v", s.path, err)
		return []domain.User{}, nil
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *FileStore) Save(ctx context.Context, users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}
	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Path returns the backing file location, used by the backup scheduler.
func (s *FileStore) Path() string { return s.path }
