package delivery

import (
	"context"
	"time"

	"github.com/goliatone/go-widgetkit/internal/classes"
	"github.com/goliatone/go-widgetkit/internal/composer"
	"github.com/goliatone/go-widgetkit/internal/logging"
	"github.com/goliatone/go-widgetkit/internal/resolver"
	"github.com/goliatone/go-widgetkit/internal/widgets"
	"github.com/goliatone/go-widgetkit/pkg/interfaces"
)

const (
	operationDeliver  = "deliver"
	operationLoadLate = "load_late"
)

// Payload is everything a client needs to construct one widget tree.
// Script and Styles are nil when the client already has every class.
type Payload struct {
	ID            string         `json:"id"`
	Config        map[string]any `json:"config"`
	Script        *string        `json:"script,omitempty"`
	Styles        *string        `json:"styles,omitempty"`
	Classes       []string       `json:"classes"`
	Instantiation string         `json:"instantiation"`
	Render        string         `json:"render"`
	Container     string         `json:"container"`
}

// DeliverRequest asks for the initial payload of a tree.
type DeliverRequest struct {
	Root  *widgets.Instance
	Known interfaces.KnownClasses
}

// LoadLateRequest asks for the payload of the late aggregatee with ID inside
// the tree rooted at Root.
type LoadLateRequest struct {
	Root  *widgets.Instance
	ID    string
	Known interfaces.KnownClasses
}

// ServiceOption customises service behaviour.
type ServiceOption func(*Service)

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics wires the metrics recorder used for telemetry.
func WithMetrics(metrics interfaces.DeliveryMetrics) ServiceOption {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithClock overrides the clock used for duration metrics.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service composes widget payloads: config, missing code and snippets.
type Service struct {
	composer *composer.Composer
	resolver *resolver.Resolver
	logger   interfaces.Logger
	metrics  interfaces.DeliveryMetrics
	now      func() time.Time
}

// NewService constructs a delivery service.
func NewService(c *composer.Composer, r *resolver.Resolver, opts ...ServiceOption) *Service {
	service := &Service{
		composer: c,
		resolver: r,
		logger:   logging.NoOp(),
		metrics:  NoOpMetrics(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Deliver composes the initial payload for req.Root.
func (s *Service) Deliver(ctx context.Context, req DeliverRequest) (*Payload, error) {
	if req.Root == nil {
		return nil, ErrInstanceRequired
	}
	return s.compose(ctx, operationDeliver, req.Root, req.Known)
}

// LoadLate composes the payload of a late aggregatee as if it were a root.
func (s *Service) LoadLate(ctx context.Context, req LoadLateRequest) (*Payload, error) {
	if req.Root == nil {
		return nil, ErrInstanceRequired
	}
	inst, ok := req.Root.Find(req.ID)
	if !ok {
		return nil, instanceNotFound(req.Root.ID(), req.ID)
	}
	if !inst.IsLate() {
		return nil, notLate(req.ID)
	}
	return s.compose(ctx, operationLoadLate, inst, req.Known)
}

func (s *Service) compose(ctx context.Context, operation string, inst *widgets.Instance, known interfaces.KnownClasses) (*Payload, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithFields(
		logging.WithWidgetContext(s.baseLogger(ctx), inst.ID(), inst.Class().Name()),
		map[string]any{"operation": "delivery." + operation},
	)
	start := s.now()

	payload, delivered, err := s.build(ctx, inst, known)
	s.metrics.ObserveComposeDuration(operation, s.now().Sub(start))
	if err != nil {
		s.metrics.IncrementComposeError(operation)
		logging.WithFields(logger, map[string]any{
			"error": err,
		}).Error("delivery.service.compose_failed")
		return nil, err
	}

	s.metrics.ObserveClasses(operation, delivered, len(payload.Classes)-delivered)
	fields := map[string]any{
		"classes":   len(payload.Classes),
		"delivered": delivered,
	}
	if set, ok := known.(KnownSet); ok {
		fields["known"] = len(set)
	}
	if payload.Script != nil {
		fields["script_bytes"] = len(*payload.Script)
	}
	logging.WithFields(logger, fields).Debug("delivery.service.compose_completed")
	return payload, nil
}

func (s *Service) build(ctx context.Context, inst *widgets.Instance, known interfaces.KnownClasses) (*Payload, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if err := inst.BeforeSerialize(); err != nil {
		return nil, 0, err
	}

	cfg, err := s.composer.InstanceConfig(inst)
	if err != nil {
		return nil, 0, err
	}
	deps, err := s.resolver.Resolve(inst)
	if err != nil {
		return nil, 0, err
	}
	script, err := s.composer.MissingScripts(deps, known)
	if err != nil {
		return nil, 0, err
	}
	styles, err := s.composer.MissingStyles(deps, known)
	if err != nil {
		return nil, 0, err
	}
	instantiation, err := s.composer.Instantiation(inst, cfg)
	if err != nil {
		return nil, 0, err
	}

	return &Payload{
		ID:            inst.ID(),
		Config:        cfg,
		Script:        script,
		Styles:        styles,
		Classes:       shortNames(deps),
		Instantiation: instantiation,
		Render:        composer.RenderCall(inst),
		Container:     composer.Container(inst),
	}, countUnknown(deps, known), nil
}

func (s *Service) baseLogger(ctx context.Context) interfaces.Logger {
	logger := s.logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	return logger
}

func shortNames(deps []*classes.Class) []string {
	out := make([]string, 0, len(deps))
	for _, class := range deps {
		out = append(out, class.ShortName())
	}
	return out
}

func countUnknown(deps []*classes.Class, known interfaces.KnownClasses) int {
	count := 0
	for _, class := range deps {
		if known == nil || !known.Has(class.ShortName()) {
			count++
		}
	}
	return count
}
