package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned for job ids with no stored record.
var ErrNotFound = errors.New("job not found")

// Store is a keyed durable record store. Writes are atomic per key and
// reads see the latest completed write; backends need no cross-key
// coordination because each job has exactly one writer.
type Store interface {
	Save(ctx context.Context, job *Job) error
	Get(ctx context.Context, id string) (*Job, error)
	Delete(ctx context.Context, id string) error
}

// FileStore keeps one JSON document per job id.
type FileStore struct {
	Dir string
}

// NewFileStore creates the backing directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create job store dir: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.Dir, id+".json")
}

// Save writes the record to a temp file and renames it into place, so a
// concurrent read never sees a partial document.
func (s *FileStore) Save(_ context.Context, job *Job) error {
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal job %s: %w", job.ID, err)
	}

	tmp := s.path(job.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write job %s: %w", job.ID, err)
	}
	if err := os.Rename(tmp, s.path(job.ID)); err != nil {
		return fmt.Errorf("commit job %s: %w", job.ID, err)
	}
	return nil
}

func (s *FileStore) Get(_ context.Context, id string) (*Job, error) {
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read job %s: %w", id, err)
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode job %s: %w", id, err)
	}
	return &job, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	err := os.Remove(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}
