package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// FileSnapshotRepository keeps one JSON document per collection in a directory
type FileSnapshotRepository struct {
	dir string
}

// NewFileSnapshotRepository creates a repository rooted at dir
func NewFileSnapshotRepository(dir string) interfaces.SnapshotRepository {
	return &FileSnapshotRepository{dir: dir}
}

// snapshotFile binds a file name to the snapshot field it holds
type snapshotFile struct {
	name   string
	target func(*entities.Snapshot) any
}

var snapshotFiles = []snapshotFile{
	{"users.json", func(s *entities.Snapshot) any { return &s.Users }},
	{"items.json", func(s *entities.Snapshot) any { return &s.Items }},
	{"listings.json", func(s *entities.Snapshot) any { return &s.Listings }},
	{"invites.json", func(s *entities.Snapshot) any { return &s.Invites }},
	{"claimed.json", func(s *entities.Snapshot) any { return &s.Claimed }},
	{"guild_configs.json", func(s *entities.Snapshot) any { return &s.GuildConfigs }},
	{"warnings.json", func(s *entities.Snapshot) any { return &s.Warnings }},
	{"modlogs.json", func(s *entities.Snapshot) any { return &s.ModLogs }},
}

// Load reads every collection file. A missing file loads as an empty collection.
func (r *FileSnapshotRepository) Load(ctx context.Context) (*entities.Snapshot, error) {
	snapshot := &entities.Snapshot{}

	g, _ := errgroup.WithContext(ctx)
	for _, f := range snapshotFiles {
		target := f.target(snapshot)
		path := filepath.Join(r.dir, f.name)
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			if err := json.Unmarshal(data, target); err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot.Normalize()
	return snapshot, nil
}

// Save writes every collection file through a temp file and rename
func (r *FileSnapshotRepository) Save(ctx context.Context, snapshot *entities.Snapshot) error {
	start := time.Now()

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, f := range snapshotFiles {
		value := f.target(snapshot)
		path := filepath.Join(r.dir, f.name)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeJSONFile(path, value)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"dir":      r.dir,
		"users":    len(snapshot.Users),
		"duration": time.Since(start),
	}).Debug("Snapshot saved to files")
	return nil
}

func writeJSONFile(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
