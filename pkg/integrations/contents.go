package integrations

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/repolens/pkg/source"
)

// contentWorkers bounds concurrent raw-file downloads per snapshot.
const contentWorkers = 4

// LoadContents downloads the content of every file in files that opts
// wants, up to opts.Limit() files, using fetch. Files that disappeared
// between listing and download are left without content.
func LoadContents(ctx context.Context, files []source.File, opts source.Options, fetch func(ctx context.Context, path string) (string, error)) error {
	var idx []int
	for i, f := range files {
		if opts.Want(f) {
			idx = append(idx, i)
		}
		if len(idx) == opts.Limit() {
			break
		}
	}
	if len(idx) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(contentWorkers)
	for _, i := range idx {
		g.Go(func() error {
			content, err := fetch(ctx, files[i].Path)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			files[i].Content = &content
			return nil
		})
	}
	return g.Wait()
}
