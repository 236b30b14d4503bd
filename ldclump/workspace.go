package ldclump

import (
	"log"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
)

// Workspace is a scratch directory owned by the caller. Every chromosome
// writes its own files into it, so one workspace can serve concurrent
// clumping runs.
type Workspace struct {
	Dir string

	// Keep leaves the directory in place on Close, for debugging.
	Keep bool
}

// NewWorkspace creates a fresh directory under root. An empty root uses the
// system temporary directory.
func NewWorkspace(root string) (*Workspace, error) {
	if root != "" {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, pfx.Err(err)
		}
	}

	dir, err := os.MkdirTemp(root, "indeploci-")
	if err != nil {
		return nil, pfx.Err(err)
	}

	return &Workspace{Dir: dir}, nil
}

func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

func (w *Workspace) Close() error {
	if w.Keep {
		log.Println("Keeping clumping workspace", w.Dir)
		return nil
	}

	return pfx.Err(os.RemoveAll(w.Dir))
}
