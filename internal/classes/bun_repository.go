package classes

import (
	"context"
	"fmt"
	"sort"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

// BunClassRepository implements ClassRepository with optional caching.
type BunClassRepository struct {
	repo repository.Repository[*ClassRecord]
}

var _ ClassRepository = (*BunClassRepository)(nil)

// NewBunClassRepository creates a class repository without caching.
func NewBunClassRepository(db *bun.DB) *BunClassRepository {
	return NewBunClassRepositoryWithCache(db, nil, nil)
}

// NewBunClassRepositoryWithCache creates a class repository with caching.
func NewBunClassRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunClassRepository {
	base := NewClassRecordRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunClassRepository{repo: base}
}

func (r *BunClassRepository) Create(ctx context.Context, record *ClassRecord) (*ClassRecord, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunClassRepository) GetByName(ctx context.Context, name string) (*ClassRecord, error) {
	record, err := r.repo.GetByIdentifier(ctx, name)
	if err != nil {
		return nil, mapRepositoryError(err, "widget_class", name)
	}
	return record, nil
}

// List returns records ordered by name.
func (r *BunClassRepository) List(ctx context.Context) ([]*ClassRecord, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
