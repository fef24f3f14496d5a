package dawmark

import (
	"context"
	"os"

	"github.com/simonhull/dawmark/internal/packaging"
)

// SaveOption configures Save and SaveAll.
type SaveOption = packaging.SaveOption

// WithSaveBackup keeps an existing file as name+suffix instead of
// replacing it.
func WithSaveBackup(suffix string) SaveOption {
	return packaging.WithBackup(suffix)
}

// WithSaveValidation re-reads each written file and compares it to the
// artifact.
func WithSaveValidation() SaveOption {
	return packaging.WithValidation()
}

// WithSaveFileMode sets the permissions of written files.
func WithSaveFileMode(mode os.FileMode) SaveOption {
	return packaging.WithFileMode(mode)
}

// Save atomically writes a to dir/a.Name and returns the path.
func Save(dir string, a Artifact, opts ...SaveOption) (string, error) {
	return packaging.Save(dir, a, opts...)
}

// SaveAll writes every artifact into dir concurrently and returns the
// paths in input order. dir is created when missing.
func SaveAll(ctx context.Context, dir string, files []Artifact, opts ...SaveOption) ([]string, error) {
	return packaging.SaveAll(ctx, dir, files, opts...)
}
