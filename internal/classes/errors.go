package classes

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// CategoryConfiguration marks registration and inheritance-chain mistakes.
// They are programming errors and are never retried.
const CategoryConfiguration goerrors.Category = "configuration"

const (
	textCodeConfiguration = "CLASS_CONFIGURATION_INVALID"
	textCodeRegistration  = "CLASS_REGISTRATION_INVALID"
	textCodeManifest      = "CLASS_MANIFEST_INVALID"
	textCodeNotFound      = "CLASS_NOT_FOUND"
)

var (
	ErrClassNameRequired       = errors.New("classes: class name required")
	ErrClassExists             = errors.New("classes: class already registered")
	ErrClassNotFound           = errors.New("classes: class not registered")
	ErrShortNameInvalid        = errors.New("classes: short name must be a JavaScript identifier")
	ErrShortNameConflict       = errors.New("classes: short name already used by another class")
	ErrClientBaseRequired      = errors.New("classes: client base class required when no superclass is declared")
	ErrSelfInheritance         = errors.New("classes: class cannot inherit from itself")
	ErrInheritanceCycle        = errors.New("classes: inheritance cycle detected")
	ErrInheritanceTooDeep      = errors.New("classes: inheritance chain exceeds maximum depth")
	ErrSuperclassNotRegistered = errors.New("classes: superclass not registered")
	ErrManifestInvalid         = errors.New("classes: manifest invalid")
)

// IsConfigurationError reports whether err was raised for a broken class
// registration or inheritance chain.
func IsConfigurationError(err error) bool {
	return goerrors.IsCategory(err, CategoryConfiguration)
}

func configurationError(err error, class, superclass string) error {
	return goerrors.Wrap(err, CategoryConfiguration, "widget class chain is broken").
		WithTextCode(textCodeConfiguration).
		WithMetadata(map[string]any{
			"class":      class,
			"superclass": superclass,
		})
}

func registrationError(err error, class string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "widget class registration rejected").
		WithTextCode(textCodeRegistration).
		WithMetadata(map[string]any{"class": class})
}

func notFoundError(class string) error {
	return goerrors.Wrap(ErrClassNotFound, goerrors.CategoryNotFound, "widget class lookup failed").
		WithTextCode(textCodeNotFound).
		WithMetadata(map[string]any{"class": class})
}

func manifestError(err error, source string) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "widget class manifest rejected").
		WithTextCode(textCodeManifest).
		WithMetadata(map[string]any{"manifest": source})
}
