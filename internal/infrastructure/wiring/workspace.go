package wiring

import (
	"fmt"

	"github.com/felixgeelhaar/plancraft/pkg/storage"
)

// Workspace bundles core infrastructure dependencies.
type Workspace struct {
	Files *storage.Workspace
	Repo  *storage.SQLiteRepository
}

// OpenWorkspace creates the .plancraft directory if needed and opens the project database.
func OpenWorkspace(root string) (*Workspace, error) {
	files := storage.NewWorkspace(root)
	if err := files.Initialize(); err != nil {
		return nil, err
	}

	dbPath, err := files.DatabasePath()
	if err != nil {
		return nil, err
	}
	repo, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open project database: %w", err)
	}

	return &Workspace{Files: files, Repo: repo}, nil
}

// Close releases the database handle.
func (w *Workspace) Close() error {
	if w == nil || w.Repo == nil {
		return nil
	}
	return w.Repo.Close()
}
