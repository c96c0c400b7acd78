package processor

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/charlievieth/fastwalk"
	"github.com/sirupsen/logrus"

	"deleter/internal/match"
)

// walkFunc is swapped in tests to simulate a traversal that dies.
var walkFunc = walkRoot

// walkRoot visits root sequentially and calls emit for every regular file
// that satisfies pred and is at least minSize bytes. Symlinks are never
// followed. Entries that cannot be read are skipped.
func walkRoot(ctx context.Context, root string, pred *match.Predicate, minSize uint64, emit func(File) error) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	walkDir := absRoot
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		walkDir = resolved
	}

	log := logrus.WithField("root", absRoot)
	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	err = fastwalk.Walk(conf, walkDir, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			log.WithError(walkErr).WithField("path", path).Debug("skipping unreadable entry")
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(walkDir, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !pred.MatchPaths(rel, pathForms(root, absRoot, walkDir, rel)...) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			log.WithError(err).WithField("path", path).Debug("skipping entry without metadata")
			return nil
		}
		size := uint64(info.Size())
		if size < minSize {
			return nil
		}

		return emit(File{
			Root:    absRoot,
			Path:    filepath.Join(absRoot, filepath.FromSlash(rel)),
			RelPath: rel,
			Size:    size,
		})
	})
	if err != nil && ctx.Err() == nil {
		log.WithError(err).Warn("root could not be walked")
		return nil
	}
	return err
}

// pathForms spells a file the ways a user may write it in a pattern:
// absolute, prefixed by the root's own name, as the root was given, and
// through the resolved root when it is a symlink.
func pathForms(root, absRoot, walkDir, rel string) []string {
	abs := filepath.ToSlash(absRoot)
	forms := []string{
		path.Join(abs, rel),
		path.Join(path.Base(abs), rel),
	}
	if given := filepath.ToSlash(filepath.Clean(root)); given != abs {
		forms = append(forms, path.Join(given, rel))
	}
	if resolved := filepath.ToSlash(walkDir); resolved != abs {
		forms = append(forms, path.Join(resolved, rel))
	}
	return forms
}
