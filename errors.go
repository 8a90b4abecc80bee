package widgetkit

import (
	"errors"

	"github.com/goliatone/go-widgetkit/internal/assets"
	"github.com/goliatone/go-widgetkit/internal/classes"
	"github.com/goliatone/go-widgetkit/internal/delivery"
	"github.com/goliatone/go-widgetkit/internal/widgets"
)

// ErrModuleDisabled is returned by delivery operations when Config.Enabled is false.
var ErrModuleDisabled = errors.New("widgetkit: module disabled")

var (
	ErrClassNameRequired       = classes.ErrClassNameRequired
	ErrClassExists             = classes.ErrClassExists
	ErrClassNotFound           = classes.ErrClassNotFound
	ErrShortNameInvalid        = classes.ErrShortNameInvalid
	ErrShortNameConflict       = classes.ErrShortNameConflict
	ErrClientBaseRequired      = classes.ErrClientBaseRequired
	ErrSelfInheritance         = classes.ErrSelfInheritance
	ErrInheritanceCycle        = classes.ErrInheritanceCycle
	ErrInheritanceTooDeep      = classes.ErrInheritanceTooDeep
	ErrSuperclassNotRegistered = classes.ErrSuperclassNotRegistered
	ErrManifestInvalid         = classes.ErrManifestInvalid

	ErrResourceNotFound = assets.ErrResourceNotFound
	ErrPathTraversal    = assets.ErrPathTraversal

	ErrInstanceNameRequired  = widgets.ErrInstanceNameRequired
	ErrInstanceNameInvalid   = widgets.ErrInstanceNameInvalid
	ErrInstanceClassRequired = widgets.ErrInstanceClassRequired
	ErrAggregateeExists      = widgets.ErrAggregateeExists

	ErrInstanceRequired  = delivery.ErrInstanceRequired
	ErrInstanceNotFound  = delivery.ErrInstanceNotFound
	ErrAggregateeNotLate = delivery.ErrAggregateeNotLate
)

// IsConfigurationError reports whether err stems from a broken class
// hierarchy (unregistered superclass, cycle or excessive depth).
func IsConfigurationError(err error) bool {
	return classes.IsConfigurationError(err)
}
