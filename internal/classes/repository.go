package classes

import (
	"context"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ClassRepository persists class registrations so they survive restarts.
type ClassRepository interface {
	Create(ctx context.Context, record *ClassRecord) (*ClassRecord, error)
	GetByName(ctx context.Context, name string) (*ClassRecord, error)
	List(ctx context.Context) ([]*ClassRecord, error)
}

// NotFoundError is returned when a class record cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// NewClassRecordRepository creates the go-repository-bun repository backing
// BunClassRepository.
func NewClassRecordRepository(db *bun.DB) repository.Repository[*ClassRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ClassRecord]{
		NewRecord:          func() *ClassRecord { return &ClassRecord{} },
		GetID:              func(record *ClassRecord) uuid.UUID { return record.ID },
		SetID:              func(record *ClassRecord, id uuid.UUID) { record.ID = id },
		GetIdentifier:      func() string { return "name" },
		GetIdentifierValue: func(record *ClassRecord) string { return record.Name },
	})
}
