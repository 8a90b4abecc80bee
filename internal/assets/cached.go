package assets

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goliatone/go-widgetkit/pkg/interfaces"
)

// CachedSource keeps recently read file contents in memory. Failed reads are
// not cached.
type CachedSource struct {
	next  interfaces.AssetSource
	cache *lru.Cache[string, string]
}

var _ interfaces.AssetSource = (*CachedSource)(nil)

// NewCachedSource wraps next with an LRU cache holding up to size entries.
// A size of zero returns next unchanged.
func NewCachedSource(next interfaces.AssetSource, size int) (interfaces.AssetSource, error) {
	if size == 0 {
		return next, nil
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("assets: cache: %w", err)
	}
	return &CachedSource{next: next, cache: cache}, nil
}

func (s *CachedSource) Read(path string) (string, error) {
	if contents, ok := s.cache.Get(path); ok {
		return contents, nil
	}
	contents, err := s.next.Read(path)
	if err != nil {
		return "", err
	}
	s.cache.Add(path, contents)
	return contents, nil
}

// Len reports how many files are cached.
func (s *CachedSource) Len() int {
	return s.cache.Len()
}
