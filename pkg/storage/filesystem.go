package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"
)

const WorkspaceDir = ".plancraft"
const DatabaseFile = "plancraft.db"

// Workspace is the per-project .plancraft directory holding config and data.
type Workspace struct {
	root        string
	retryConfig retry.Config
}

func NewWorkspace(root string) *Workspace {
	return &Workspace{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// ResolvePath ensures the path is within the .plancraft directory and prevents traversal.
func (w *Workspace) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(w.root, WorkspaceDir)
	cleanPath := filepath.Clean(filepath.Join(baseDir, filename))

	// Only direct children of .plancraft are allowed.
	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}
	return cleanPath, nil
}

func (w *Workspace) Initialize() error {
	// G301: Use 0700 for directories
	if err := os.MkdirAll(filepath.Join(w.root, WorkspaceDir), 0700); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", WorkspaceDir, err)
	}
	return nil
}

func (w *Workspace) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(w.root, WorkspaceDir))
	return err == nil
}

// DatabasePath returns the location of the project database.
func (w *Workspace) DatabasePath() (string, error) {
	return w.ResolvePath(DatabaseFile)
}

// SaveYAML writes v to filename inside the workspace, creating the directory if needed.
func (w *Workspace) SaveYAML(filename string, v any) error {
	path, err := w.ResolvePath(filename)
	if err != nil {
		return err
	}
	if !w.IsInitialized() {
		if err := w.Initialize(); err != nil {
			return err
		}
	}

	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filename, err)
	}

	// G306: Use 0600 for files
	return os.WriteFile(path, data, 0600)
}

// LoadYAML reads filename into v. It returns false when the file does not exist.
// Transient read errors are retried.
func (w *Workspace) LoadYAML(filename string, v any) (bool, error) {
	path, err := w.ResolvePath(filename)
	if err != nil {
		return false, err
	}

	retryer := retry.New[[]byte](w.retryConfig)
	data, err := retryer.Do(context.Background(), func(ctx context.Context) ([]byte, error) {
		// #nosec G304 -- Path is resolved and validated via ResolvePath
		b, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return b, err
	})
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if data == nil {
		return false, nil
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}
	return true, nil
}
