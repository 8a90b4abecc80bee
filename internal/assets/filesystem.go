package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-widgetkit/pkg/interfaces"
)

// FileSystemSource reads included scripts and styles from an fs.FS.
type FileSystemSource struct {
	FS       fs.FS
	BasePath string
}

var _ interfaces.AssetSource = FileSystemSource{}

// Read returns the contents of the file at p relative to BasePath.
func (s FileSystemSource) Read(p string) (string, error) {
	clean, err := s.cleanPath(p)
	if err != nil {
		return "", err
	}
	data, err := fs.ReadFile(s.FS, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", notFound(err, p)
		}
		return "", fmt.Errorf("assets: read %s: %w", p, err)
	}
	return string(data), nil
}

func (s FileSystemSource) cleanPath(p string) (string, error) {
	if s.FS == nil {
		return "", ErrSourceNotSet
	}
	p = strings.TrimSpace(p)
	if p == "" {
		return "", badPath(ErrPathRequired, p)
	}
	base := strings.Trim(strings.TrimSpace(s.BasePath), "/")
	if base == "" {
		base = "."
	}
	base = path.Clean(base)
	clean := path.Join(base, strings.TrimPrefix(p, "/"))
	if !fs.ValidPath(clean) {
		return "", badPath(ErrPathTraversal, p)
	}
	if base != "." && clean != base && !strings.HasPrefix(clean, base+"/") {
		return "", badPath(ErrPathTraversal, p)
	}
	return clean, nil
}
