package packaging

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/dawmark/internal/types"
)

// SaveOption configures Save.
type SaveOption func(*saveOptions)

type saveOptions struct {
	backupSuffix string      // rename an existing file before replacing it
	validate     bool        // re-read after write and compare
	mode         os.FileMode // permissions of the written file
}

func defaultSaveOptions() *saveOptions {
	return &saveOptions{mode: 0o644}
}

// WithBackup keeps an existing file as name+suffix instead of replacing it.
func WithBackup(suffix string) SaveOption {
	return func(o *saveOptions) {
		o.backupSuffix = suffix
	}
}

// WithValidation re-reads each written file and compares it to the
// artifact.
func WithValidation() SaveOption {
	return func(o *saveOptions) {
		o.validate = true
	}
}

// WithFileMode sets the permissions of written files.
func WithFileMode(mode os.FileMode) SaveOption {
	return func(o *saveOptions) {
		o.mode = mode
	}
}

// Save writes a to dir/a.Name and returns the path.
//
// The write is atomic: data goes to a temporary file in dir which is then
// renamed over the target. On failure nothing at the target changes.
func Save(dir string, a types.Artifact, opts ...SaveOption) (string, error) {
	options := defaultSaveOptions()
	for _, opt := range opts {
		opt(options)
	}

	if a.Name == "" || a.Name != filepath.Base(a.Name) {
		return "", fmt.Errorf("save: invalid artifact name %q", a.Name)
	}
	target := filepath.Join(dir, a.Name)

	tmp, err := os.CreateTemp(dir, ".dawmark-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(a.Data); err != nil {
		return "", fmt.Errorf("write: %w", err)
	}
	if err := tmp.Chmod(options.mode); err != nil {
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if options.backupSuffix != "" {
		if _, err := os.Stat(target); err == nil {
			if err := os.Rename(target, target+options.backupSuffix); err != nil {
				return "", fmt.Errorf("create backup: %w", err)
			}
		}
	}

	if err := os.Rename(tmpPath, target); err != nil {
		return "", fmt.Errorf("rename temp to output: %w", err)
	}
	success = true

	if options.validate {
		written, err := os.ReadFile(target)
		if err != nil {
			return target, fmt.Errorf("validation failed: %w", err)
		}
		if !bytes.Equal(written, a.Data) {
			return target, fmt.Errorf("validation failed: %s differs from artifact", target)
		}
	}
	return target, nil
}

// SaveAll writes every artifact into dir concurrently and returns the
// paths in input order.
func SaveAll(ctx context.Context, dir string, files []types.Artifact, opts ...SaveOption) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	paths := make([]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := Save(dir, f, opts...)
			if err != nil {
				return fmt.Errorf("save %s: %w", f.Name, err)
			}
			paths[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
