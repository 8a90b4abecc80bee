package widgetkit

import (
	"context"

	"github.com/goliatone/go-widgetkit/internal/classes"
	"github.com/goliatone/go-widgetkit/internal/composer"
	"github.com/goliatone/go-widgetkit/internal/delivery"
	"github.com/goliatone/go-widgetkit/internal/di"
	"github.com/goliatone/go-widgetkit/internal/resolver"
	"github.com/goliatone/go-widgetkit/internal/widgets"
	"github.com/goliatone/go-widgetkit/pkg/interfaces"
)

// Class exports the registered widget class record.
type Class = classes.Class

// RegisterClassInput exports the class registration input.
type RegisterClassInput = classes.RegisterClassInput

// Raw marks an extend property emitted verbatim, such as a function body.
type Raw = classes.Raw

// Menu exports the menu descriptor registered by generated constructors.
type Menu = classes.Menu

// Registry exports the class metadata store.
type Registry = classes.Registry

// Instance exports the widget instance tree node.
type Instance = widgets.Instance

// InstanceOption configures a widget instance.
type InstanceOption = widgets.Option

// Hook runs on an instance right before its config is serialised.
type Hook = widgets.Hook

// Payload exports the delivery payload.
type Payload = delivery.Payload

// KnownClasses exports the cache tracker contract.
type KnownClasses = interfaces.KnownClasses

// KnownSet is a KnownClasses backed by a set of short names.
type KnownSet = delivery.KnownSet

// Composer exports the script, style and config composer.
type Composer = composer.Composer

// Resolver exports the dependency resolver.
type Resolver = resolver.Resolver

// DeliveryService exports the delivery service.
type DeliveryService = delivery.Service

var (
	WithOverride        = widgets.WithOverride
	WithActions         = widgets.WithActions
	WithMenu            = widgets.WithMenu
	WithBeforeSerialize = widgets.WithBeforeSerialize
	Late                = widgets.Late
)

// Known builds a KnownSet from the short names the client already holds.
func Known(shortNames ...string) KnownSet {
	return delivery.NewKnownSet(shortNames...)
}

// Module represents the top level widget engine facade.
type Module struct {
	container *di.Container
}

// New constructs a widget module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Enabled reports whether delivery operations are allowed.
func (m *Module) Enabled() bool {
	return m.container.Config.Enabled
}

// Registry returns the class metadata store.
func (m *Module) Registry() *Registry {
	return m.container.Registry()
}

// Composer returns the code and config composer.
func (m *Module) Composer() *Composer {
	return m.container.Composer()
}

// Resolver returns the dependency resolver.
func (m *Module) Resolver() *Resolver {
	return m.container.Resolver()
}

// Delivery returns the delivery service.
func (m *Module) Delivery() *DeliveryService {
	return m.container.DeliveryService()
}

// RegisterClass adds a class to the registry. Use the register command
// handler to also persist it.
func (m *Module) RegisterClass(input RegisterClassInput) (*Class, error) {
	return m.container.Registry().Register(input)
}

// Class looks up a registered class by name.
func (m *Module) Class(name string) (*Class, error) {
	return m.container.Registry().Lookup(name)
}

// NewInstance creates a root widget instance of the named class.
func (m *Module) NewInstance(name, className string, opts ...InstanceOption) (*Instance, error) {
	class, err := m.Class(className)
	if err != nil {
		return nil, err
	}
	return widgets.New(name, class, opts...)
}

// Aggregate attaches a child instance of the named class to parent.
func (m *Module) Aggregate(parent *Instance, name, className string, opts ...InstanceOption) (*Instance, error) {
	if parent == nil {
		return nil, ErrInstanceRequired
	}
	class, err := m.Class(className)
	if err != nil {
		return nil, err
	}
	return parent.Aggregate(name, class, opts...)
}

// Deliver composes the initial payload of root, skipping code for classes
// in known.
func (m *Module) Deliver(ctx context.Context, root *Instance, known KnownClasses) (*Payload, error) {
	if !m.Enabled() {
		return nil, ErrModuleDisabled
	}
	return m.container.DeliveryService().Deliver(ctx, delivery.DeliverRequest{Root: root, Known: known})
}

// LoadLate composes the payload of the late aggregatee id inside root.
func (m *Module) LoadLate(ctx context.Context, root *Instance, id string, known KnownClasses) (*Payload, error) {
	if !m.Enabled() {
		return nil, ErrModuleDisabled
	}
	return m.container.DeliveryService().LoadLate(ctx, delivery.LoadLateRequest{Root: root, ID: id, Known: known})
}
