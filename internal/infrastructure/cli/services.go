package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/plancraft/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/plancraft/pkg/domain/project"
)

func (o *rootOptions) loadServices() (*wiring.AppServices, error) {
	root, err := o.projectRoot()
	if err != nil {
		return nil, err
	}
	services, loadErr := wiring.BuildAppServices(root, o.logger)
	if services == nil {
		return nil, fmt.Errorf("failed to build services: %w", loadErr)
	}
	if loadErr != nil {
		fmt.Fprintf(o.errOut, "Warning: %v\n", loadErr)
	}
	return services, nil
}

func (o *rootOptions) projectRoot() (string, error) {
	if o.root != "" {
		abs, err := filepath.Abs(o.root)
		if err != nil {
			return "", fmt.Errorf("invalid project path %q: %w", o.root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("project path %q: %w", abs, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("project path %q is not a directory", abs)
		}
		return abs, nil
	}
	return os.Getwd()
}

// actingUser resolves --user, then $PLANCRAFT_USER.
func (o *rootOptions) actingUser() (string, error) {
	user := strings.TrimSpace(o.user)
	if user == "" {
		user = strings.TrimSpace(os.Getenv(envUser))
	}
	if user == "" {
		return "", project.ErrNotAuthenticated
	}
	return user, nil
}
