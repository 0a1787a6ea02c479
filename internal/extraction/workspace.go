package extraction

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Workspace is a per-run scratch directory for extracted tracks and frames.
type Workspace struct {
	root string
}

// NewWorkspace creates a uniquely named scratch directory under the system
// temp directory.
func NewWorkspace() (*Workspace, error) {
	root := filepath.Join(os.TempDir(), "subdetector-"+uuid.NewString())
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{root: root}, nil
}

// Root returns the workspace directory path.
func (w *Workspace) Root() string {
	return w.root
}

// Subdir creates (if needed) and returns a named directory inside the workspace.
func (w *Workspace) Subdir(name string) (string, error) {
	dir := filepath.Join(w.root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create workspace subdir %q: %w", name, err)
	}
	return dir, nil
}

// Cleanup removes the workspace and everything in it.
func (w *Workspace) Cleanup() {
	if w == nil || w.root == "" {
		return
	}
	_ = os.RemoveAll(w.root)
}
