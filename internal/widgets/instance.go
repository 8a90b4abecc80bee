package widgets

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/goliatone/go-widgetkit/internal/classes"
)

// IDSeparator joins a parent id and an aggregatee name into the child id.
const IDSeparator = "__"

var (
	ErrInstanceNameRequired  = errors.New("widgets: instance name required")
	ErrInstanceNameInvalid   = errors.New("widgets: instance name must not contain the id separator or start or end with an underscore")
	ErrInstanceClassRequired = errors.New("widgets: widget class required")
	ErrAggregateeExists      = errors.New("widgets: aggregatee name already used by this parent")
)

// Hook runs right before an instance is serialized into a client payload.
type Hook func(*Instance) error

// Option configures an instance at creation.
type Option func(*Instance)

// WithOverride merges values over the computed instance config.
func WithOverride(values map[string]any) Option {
	return func(inst *Instance) {
		for key, value := range values {
			inst.override[key] = value
		}
	}
}

// WithActions attaches opaque action descriptors.
func WithActions(actions any) Option {
	return func(inst *Instance) {
		inst.actions = actions
	}
}

// WithMenu attaches an opaque menu descriptor.
func WithMenu(menu any) Option {
	return func(inst *Instance) {
		inst.menu = menu
	}
}

// WithBeforeSerialize registers the instance's before-serialize hook.
func WithBeforeSerialize(hook Hook) Option {
	return func(inst *Instance) {
		inst.beforeSerialize = hook
	}
}

// Late marks an aggregatee as fetched on demand. It has no effect on roots.
func Late() Option {
	return func(inst *Instance) {
		inst.late = true
	}
}

// Aggregatee is a named child slot of an instance.
type Aggregatee struct {
	Name     string
	Instance *Instance
	Late     bool
}

// Instance is one node of a per-request widget tree. Children are created
// through Aggregate so the tree shape and ids are fixed at creation.
type Instance struct {
	id              string
	name            string
	class           *classes.Class
	parent          *Instance
	late            bool
	aggregatees     []Aggregatee
	override        map[string]any
	actions         any
	menu            any
	beforeSerialize Hook
}

// New creates the root instance of a widget tree. The root id is its name.
func New(name string, class *classes.Class, opts ...Option) (*Instance, error) {
	inst, err := newInstance(name, class, opts)
	if err != nil {
		return nil, err
	}
	inst.id = inst.name
	inst.late = false
	return inst, nil
}

// Aggregate creates a child instance owned by inst under name.
func (inst *Instance) Aggregate(name string, class *classes.Class, opts ...Option) (*Instance, error) {
	child, err := newInstance(name, class, opts)
	if err != nil {
		return nil, err
	}
	for _, existing := range inst.aggregatees {
		if existing.Name == child.name {
			return nil, fmt.Errorf("%w: %s", ErrAggregateeExists, child.name)
		}
	}
	child.parent = inst
	child.id = inst.id + IDSeparator + child.name
	inst.aggregatees = append(inst.aggregatees, Aggregatee{
		Name:     child.name,
		Instance: child,
		Late:     child.late,
	})
	return child, nil
}

func newInstance(name string, class *classes.Class, opts []Option) (*Instance, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInstanceNameRequired
	}
	// A leading or trailing underscore would merge with the separator and
	// let two different paths produce the same id.
	if strings.Contains(name, IDSeparator) || strings.HasPrefix(name, "_") || strings.HasSuffix(name, "_") {
		return nil, fmt.Errorf("%w: %s", ErrInstanceNameInvalid, name)
	}
	if class == nil {
		return nil, fmt.Errorf("%w: %s", ErrInstanceClassRequired, name)
	}
	inst := &Instance{
		name:     name,
		class:    class,
		override: map[string]any{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(inst)
		}
	}
	return inst, nil
}

func (inst *Instance) ID() string               { return inst.id }
func (inst *Instance) Name() string             { return inst.name }
func (inst *Instance) Class() *classes.Class    { return inst.class }
func (inst *Instance) Parent() *Instance        { return inst.parent }
func (inst *Instance) IsLate() bool             { return inst.late }
func (inst *Instance) Actions() any             { return inst.actions }
func (inst *Instance) Menu() any                { return inst.menu }
func (inst *Instance) Override() map[string]any { return maps.Clone(inst.override) }

// SetOverride sets a single override value. Hooks use it to adjust the
// config right before serialization.
func (inst *Instance) SetOverride(key string, value any) {
	inst.override[key] = value
}

// SetActions replaces the instance's action descriptors.
func (inst *Instance) SetActions(actions any) {
	inst.actions = actions
}

// SetMenu replaces the instance's menu descriptor.
func (inst *Instance) SetMenu(menu any) {
	inst.menu = menu
}

// Aggregatees returns every child slot in insertion order.
func (inst *Instance) Aggregatees() []Aggregatee {
	out := make([]Aggregatee, len(inst.aggregatees))
	copy(out, inst.aggregatees)
	return out
}

// Eager returns the child slots embedded in the initial payload.
func (inst *Instance) Eager() []Aggregatee {
	out := make([]Aggregatee, 0, len(inst.aggregatees))
	for _, agg := range inst.aggregatees {
		if !agg.Late {
			out = append(out, agg)
		}
	}
	return out
}

// Aggregatee returns the child slot registered under name.
func (inst *Instance) Aggregatee(name string) (Aggregatee, bool) {
	for _, agg := range inst.aggregatees {
		if agg.Name == name {
			return agg, true
		}
	}
	return Aggregatee{}, false
}

// Find locates the instance with id anywhere in the tree below and
// including inst, late aggregatees included.
func (inst *Instance) Find(id string) (*Instance, bool) {
	if inst.id == id {
		return inst, true
	}
	if !strings.HasPrefix(id, inst.id+IDSeparator) {
		return nil, false
	}
	for _, agg := range inst.aggregatees {
		if found, ok := agg.Instance.Find(id); ok {
			return found, true
		}
	}
	return nil, false
}

// BeforeSerialize runs the registered hook, if any.
func (inst *Instance) BeforeSerialize() error {
	if inst.beforeSerialize == nil {
		return nil
	}
	if err := inst.beforeSerialize(inst); err != nil {
		return fmt.Errorf("widgets: before serialize %s: %w", inst.id, err)
	}
	return nil
}
