package source

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matzehuels/repolens/pkg/errors"
)

// skipDirs are never descended into when walking a local tree.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// Local takes a snapshot of the directory dir. Entries are listed in
// lexical order.
func Local(ctx context.Context, dir string, opts Options) (*Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", dir)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}

	repo := &Repo{Name: filepath.Base(abs), Platform: Disk}
	loaded := 0

	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == abs {
			return nil
		}
		rel, err := filepath.Rel(abs, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			repo.Files = append(repo.Files, File{Name: d.Name(), Path: rel, Type: TypeDir})
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		f := File{Name: d.Name(), Path: rel, Type: TypeFile}
		if info, err := d.Info(); err == nil {
			f.Size = info.Size()
		}
		if opts.Want(f) && loaded < opts.Limit() {
			if data, err := os.ReadFile(p); err == nil {
				content := string(data)
				f.Content = &content
				loaded++
			}
		}
		repo.Files = append(repo.Files, f)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "walk %s", dir)
	}
	return repo, nil
}
