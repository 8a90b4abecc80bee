package assets

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const textCodeAssetNotFound = "ASSET_NOT_FOUND"

var (
	ErrResourceNotFound = errors.New("assets: resource not found")
	ErrPathRequired     = errors.New("assets: path required")
	ErrPathTraversal    = errors.New("assets: path escapes base directory")
	ErrSourceNotSet     = errors.New("assets: filesystem not configured")
)

func notFound(err error, path string) error {
	return goerrors.Wrap(errors.Join(ErrResourceNotFound, err), goerrors.CategoryNotFound, "included file not found").
		WithTextCode(textCodeAssetNotFound).
		WithMetadata(map[string]any{"path": path})
}

func badPath(err error, path string) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, "included file path rejected").
		WithMetadata(map[string]any{"path": path})
}
