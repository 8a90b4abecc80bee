package delivery

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrInstanceRequired  = errors.New("delivery: widget instance required")
	ErrInstanceNotFound  = errors.New("delivery: widget instance not found in tree")
	ErrAggregateeNotLate = errors.New("delivery: aggregatee is not late")
)

func instanceNotFound(root, id string) error {
	return goerrors.Wrap(ErrInstanceNotFound, goerrors.CategoryNotFound, "late aggregatee lookup failed").
		WithTextCode("WIDGET_INSTANCE_NOT_FOUND").
		WithMetadata(map[string]any{"root": root, "id": id})
}

func notLate(id string) error {
	return goerrors.Wrap(ErrAggregateeNotLate, goerrors.CategoryBadInput, "only late aggregatees load on demand").
		WithTextCode("WIDGET_AGGREGATEE_NOT_LATE").
		WithMetadata(map[string]any{"id": id})
}
