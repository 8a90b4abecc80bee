package classes

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/iancoleman/strcase"

	"github.com/goliatone/go-widgetkit/internal/identity"
)

var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Registry stores widget class metadata keyed by class name. Records are
// immutable once registered.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]*Class
	byShort map[string]string
	order   []string
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]*Class),
		byShort: make(map[string]string),
	}
}

// Register validates input and stores the resulting class exactly once.
func (r *Registry) Register(input RegisterClassInput) (*Class, error) {
	name := canonicalName(input.Name)
	if name == "" {
		return nil, registrationError(ErrClassNameRequired, "")
	}
	superclass := canonicalName(input.Superclass)
	if superclass == name {
		return nil, configurationError(ErrSelfInheritance, name, superclass)
	}
	base := strings.TrimSpace(input.ClientBaseClass)
	if superclass == "" && base == "" {
		return nil, registrationError(ErrClientBaseRequired, name)
	}

	shortName := strings.TrimSpace(input.ShortName)
	if shortName == "" {
		shortName = strcase.ToCamel(name)
	}
	if !jsIdentifier.MatchString(shortName) {
		return nil, registrationError(fmt.Errorf("%w: %q", ErrShortNameInvalid, shortName), name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		return nil, registrationError(ErrClassExists, name)
	}
	if owner, taken := r.byShort[shortName]; taken {
		return nil, registrationError(fmt.Errorf("%w: %s is used by %s", ErrShortNameConflict, shortName, owner), name)
	}
	if err := r.checkChainLocked(name, superclass); err != nil {
		return nil, err
	}

	class := &Class{
		id:               identity.ClassUUID(name),
		name:             name,
		shortName:        shortName,
		superclass:       superclass,
		clientBaseClass:  base,
		extendProperties: maps.Clone(input.ExtendProperties),
		includedScripts:  compactPaths(input.IncludedScripts),
		includedStyles:   compactPaths(input.IncludedStyles),
		menus:            slices.Clone(input.Menus),
		api:              compactNames(input.API),
	}
	if class.extendProperties == nil {
		class.extendProperties = map[string]any{}
	}

	r.byName[name] = class
	r.byShort[shortName] = name
	r.order = append(r.order, name)
	return class, nil
}

// checkChainLocked walks the already registered part of the chain above a
// new class. Superclasses registered later are checked when they arrive.
func (r *Registry) checkChainLocked(name, superclass string) error {
	current := superclass
	for hops := 0; current != ""; hops++ {
		if current == name {
			return configurationError(ErrInheritanceCycle, name, superclass)
		}
		if hops >= MaxInheritanceDepth {
			return configurationError(ErrInheritanceTooDeep, name, superclass)
		}
		next, ok := r.byName[current]
		if !ok {
			return nil
		}
		current = next.superclass
	}
	return nil
}

// Get returns the class registered under name.
func (r *Registry) Get(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	class, ok := r.byName[canonicalName(name)]
	return class, ok
}

// Lookup is Get with a typed not-found error.
func (r *Registry) Lookup(name string) (*Class, error) {
	class, ok := r.Get(name)
	if !ok {
		return nil, notFoundError(name)
	}
	return class, nil
}

// Unregister removes the class registered under name and reports whether it
// was present. Commands use it to undo a registration that could not be
// persisted.
func (r *Registry) Unregister(name string) bool {
	name = canonicalName(name)
	r.mu.Lock()
	defer r.mu.Unlock()

	class, ok := r.byName[name]
	if !ok {
		return false
	}
	delete(r.byName, name)
	delete(r.byShort, class.shortName)
	r.order = slices.DeleteFunc(r.order, func(entry string) bool { return entry == name })
	return true
}

// List returns every class in registration order.
func (r *Registry) List() []*Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Class, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// IsJSInherited reports whether class chains client-side inheritance to
// another widget class instead of extending a foreign client base class.
// Whether that superclass resolves is checked when the chain is walked.
func (r *Registry) IsJSInherited(class *Class) bool {
	return class != nil && class.superclass != ""
}

// Superclass resolves the superclass edge of a JS-inherited class. It
// returns nil, nil for classes that extend a foreign base.
func (r *Registry) Superclass(class *Class) (*Class, error) {
	if !r.IsJSInherited(class) {
		return nil, nil
	}
	parent, ok := r.Get(class.superclass)
	if !ok {
		return nil, configurationError(ErrSuperclassNotRegistered, class.name, class.superclass)
	}
	return parent, nil
}

// Ancestors returns the widget-class chain above class, nearest first.
func (r *Registry) Ancestors(class *Class) ([]*Class, error) {
	var chain []*Class
	current := class
	for r.IsJSInherited(current) {
		if len(chain) >= MaxInheritanceDepth {
			return nil, configurationError(ErrInheritanceTooDeep, class.name, class.superclass)
		}
		parent, err := r.Superclass(current)
		if err != nil {
			return nil, err
		}
		chain = append(chain, parent)
		current = parent
	}
	return chain, nil
}

// AccumulatedStyles returns the class's own style paths. Ancestor styles are
// pulled in by the composer while it walks the chain.
func (r *Registry) AccumulatedStyles(class *Class) []string {
	if class == nil {
		return nil
	}
	return class.IncludedStyles()
}

// APIPoints lists the API points available to instances of class: the
// ancestors' points first, then the class's own, without duplicates.
func (r *Registry) APIPoints(class *Class) ([]string, error) {
	ancestors, err := r.Ancestors(class)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	points := []string{}
	add := func(names []string) {
		for _, name := range names {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			points = append(points, name)
		}
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		add(ancestors[i].api)
	}
	add(class.api)
	return points, nil
}

func canonicalName(name string) string {
	return strings.TrimSpace(name)
}

func compactPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func compactNames(names []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
