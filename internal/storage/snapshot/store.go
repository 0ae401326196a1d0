package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/showquiz/tvtrivia/internal/model"
)

// Store archives full question-bank snapshots outside the primary store.
// Uploads are best-effort: a failed snapshot never fails the seed.
type Store interface {
	// Upload writes a bank snapshot and returns its object key
	Upload(ctx context.Context, bank *model.QuestionBank) (string, error)
}

// FileStore writes snapshots as JSON files under a base directory
type FileStore struct {
	baseDir string
}

// NewFileStore creates a FileStore rooted at baseDir
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

var _ Store = (*FileStore)(nil)

// Upload writes the bank wholesale to
// {baseDir}/{decade}/{showSetHash}-{bankID}.json
func (s *FileStore) Upload(ctx context.Context, bank *model.QuestionBank) (string, error) {
	objectKey := filepath.Join(bank.Decade, fmt.Sprintf("%s-%s.json", bank.ShowSetHash, bank.ID))
	path := filepath.Join(s.baseDir, objectKey)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(bank, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	return objectKey, nil
}

// Disabled is a no-op store used when snapshots are not configured
type Disabled struct{}

var _ Store = (*Disabled)(nil)

// Upload does nothing and returns an empty object key
func (Disabled) Upload(ctx context.Context, bank *model.QuestionBank) (string, error) {
	return "", nil
}
