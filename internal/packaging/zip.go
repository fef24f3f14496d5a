// Package packaging bundles export artifacts into one downloadable unit
// and writes artifacts to disk atomically.
package packaging

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/simonhull/dawmark/internal/types"
)

// Zip bundles artifacts into a single zip archive.
type Zip struct {
	now func() time.Time
}

// NewZip creates a Zip packager.
func NewZip() *Zip {
	return &Zip{now: time.Now}
}

// Package writes files into "<name>.zip". Audio that is already
// compressed is stored rather than deflated. Duplicate names fail.
func (z *Zip) Package(ctx context.Context, name string, files []types.Artifact) (types.Artifact, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	modified := z.now()

	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return types.Artifact{}, err
		}
		if seen[f.Name] {
			return types.Artifact{}, fmt.Errorf("package %s: duplicate file %q", name, f.Name)
		}
		seen[f.Name] = true

		hdr := &zip.FileHeader{
			Name:     f.Name,
			Method:   method(f.Name),
			Modified: modified,
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return types.Artifact{}, fmt.Errorf("package %s: %w", name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return types.Artifact{}, fmt.Errorf("package %s: write %s: %w", name, f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return types.Artifact{}, fmt.Errorf("package %s: %w", name, err)
	}

	return types.Artifact{
		Name:      name + ".zip",
		MediaType: types.MediaTypeZip,
		Data:      buf.Bytes(),
	}, nil
}

func method(name string) uint16 {
	switch strings.ToLower(path.Ext(name)) {
	case ".mp3", ".m4a", ".ogg", ".flac":
		return zip.Store
	default:
		return zip.Deflate
	}
}
