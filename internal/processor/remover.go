package processor

import (
	"github.com/Bios-Marcel/wastebasket/v2"
	"github.com/spf13/afero"
)

// Remover performs the destructive step for one file.
type Remover interface {
	Remove(path string) error
}

// RemoverFunc adapts a plain function to Remover.
type RemoverFunc func(path string) error

func (f RemoverFunc) Remove(path string) error { return f(path) }

// PermanentRemover unlinks files.
type PermanentRemover struct {
	Fs afero.Fs
}

func (r PermanentRemover) Remove(path string) error {
	fsys := r.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return fsys.Remove(path)
}

// TrashRemover moves files to the desktop trash. The call can block on
// desktop services.
type TrashRemover struct{}

func (TrashRemover) Remove(path string) error {
	return wastebasket.Trash(path)
}

// RemoverFor returns the remover implied by mode. Dry run has none.
func RemoverFor(mode Mode) Remover {
	switch mode {
	case ModeTrash:
		return TrashRemover{}
	case ModePermanent:
		return PermanentRemover{Fs: afero.NewOsFs()}
	default:
		return nil
	}
}
