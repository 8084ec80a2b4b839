package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StateStore remembers how far summarize got, as a ledger sequence. Load
// reports false when nothing was stored yet.
type StateStore interface {
	Load(ctx context.Context) (uint32, bool, error)
	Save(ctx context.Context, ledger uint32) error
}

// FileStateStore keeps the resume ledger in a small JSON document. A nil
// store or empty Path stores nothing.
type FileStateStore struct {
	Path string
}

type summarizeState struct {
	LastLedger   uint32 `json:"last_ledger"`
	SummarizedAt string `json:"summarized_at"`
}

func (s *FileStateStore) Load(ctx context.Context) (uint32, bool, error) {
	if s == nil || s.Path == "" {
		return 0, false, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	data, err := os.ReadFile(s.Path)
	switch {
	case os.IsNotExist(err):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("load summarize state %s: %w", s.Path, err)
	}

	var st summarizeState
	if err := json.Unmarshal(data, &st); err != nil {
		return 0, false, fmt.Errorf("summarize state %s is not valid json: %w", s.Path, err)
	}
	return st.LastLedger, true, nil
}

// Save replaces the state file through a temp file in the same directory so
// readers never see a partial document.
func (s *FileStateStore) Save(ctx context.Context, ledger uint32) error {
	if s == nil || s.Path == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(summarizeState{
		LastLedger:   ledger,
		SummarizedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode summarize state: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("summarize state dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*")
	if err != nil {
		return fmt.Errorf("summarize state temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write summarize state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write summarize state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace summarize state %s: %w", s.Path, err)
	}
	return nil
}
