package scheduler

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

// Backup snapshots the store file into a backup directory on a nightly
// schedule. A missing store file is not an error; nothing has been
// written yet.
type Backup struct {
	src  string
	dir  string
	cron *cron.Cron
}

func NewBackup(src, dir string) *Backup {
	return &Backup{src: src, dir: dir}
}

// Start schedules the nightly snapshot (12:00 AM).
func (b *Backup) Start() error {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", func() {
		if err := b.Snapshot(); err != nil {
			log.Printf("[warn] operation=store_backup error=%v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule backup: %w", err)
	}

	log.Println("Backup scheduler started (snapshot nightly at 12:00AM)")
	c.Start()
	b.cron = c
	return nil
}

func (b *Backup) Stop() {
	if b.cron != nil {
		b.cron.Stop()
	}
}

// Snapshot copies the store file into the backup directory under a
// timestamped name.
func (b *Backup) Snapshot() error {
	data, err := os.ReadFile(b.src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read store file: %w", err)
	}

	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("users-%s.json", time.Now().UTC().Format("20060102T150405"))
	if err := os.WriteFile(filepath.Join(b.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}
