package classescmd

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-widgetkit/internal/classes"
	"github.com/goliatone/go-widgetkit/internal/commands"
	"github.com/goliatone/go-widgetkit/internal/logging"
	"github.com/goliatone/go-widgetkit/pkg/interfaces"
)

const registerClassMessageType = "widgetkit.classes.register"

var shortNamePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// RegisterClassCommand registers one widget class and, when storage is
// configured, persists it.
type RegisterClassCommand struct {
	Name             string
	ShortName        string
	Superclass       string
	ClientBaseClass  string
	ExtendProperties map[string]any
	Scripts          []string
	Styles           []string
	Menus            []classes.Menu
	API              []string
}

// Type implements command.Message.
func (RegisterClassCommand) Type() string { return registerClassMessageType }

// Validate satisfies command.Message.
func (c RegisterClassCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 128)),
		validation.Field(&c.ShortName, validation.Match(shortNamePattern)),
		validation.Field(&c.ClientBaseClass, validation.When(c.Superclass == "", validation.Required)),
		validation.Field(&c.Superclass, validation.By(func(value any) error {
			if value.(string) != "" && value.(string) == c.Name {
				return errors.New("must differ from name")
			}
			return nil
		})),
	)
}

// Input converts the command into a registry input.
func (c RegisterClassCommand) Input() classes.RegisterClassInput {
	return classes.RegisterClassInput{
		Name:             c.Name,
		ShortName:        c.ShortName,
		Superclass:       c.Superclass,
		ClientBaseClass:  c.ClientBaseClass,
		ExtendProperties: c.ExtendProperties,
		IncludedScripts:  c.Scripts,
		IncludedStyles:   c.Styles,
		Menus:            c.Menus,
		API:              c.API,
	}
}

// RegisterClassOption customises the register handler.
type RegisterClassOption func(*registerClass)

// RegisterClassWithRepository persists registered classes.
func RegisterClassWithRepository(repo classes.ClassRepository) RegisterClassOption {
	return func(r *registerClass) {
		r.repo = repo
	}
}

// RegisterClassWithNow overrides the clock stamped on stored records.
func RegisterClassWithNow(now func() time.Time) RegisterClassOption {
	return func(r *registerClass) {
		if now != nil {
			r.now = now
		}
	}
}

// RegisterClassWithTimeout overrides the default execution timeout.
func RegisterClassWithTimeout(timeout time.Duration) RegisterClassOption {
	return func(r *registerClass) {
		r.timeout = timeout
	}
}

type registerClass struct {
	registry *classes.Registry
	repo     classes.ClassRepository
	logger   interfaces.Logger
	now      func() time.Time
	timeout  time.Duration
}

// NewRegisterClassHandler constructs a handler registering classes with registry.
func NewRegisterClassHandler(registry *classes.Registry, logger interfaces.Logger, opts ...RegisterClassOption) *commands.Handler[RegisterClassCommand] {
	r := &registerClass{
		registry: registry,
		logger:   commands.EnsureLogger(logger),
		now:      time.Now,
		timeout:  commands.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return commands.NewHandler[RegisterClassCommand](r.execute,
		commands.WithLogger[RegisterClassCommand](r.logger),
		commands.WithOperation[RegisterClassCommand]("classes.register"),
		commands.WithTimeout[RegisterClassCommand](r.timeout),
	)
}

var _ command.Commander[RegisterClassCommand] = (*commands.Handler[RegisterClassCommand])(nil)

func (r *registerClass) execute(ctx context.Context, msg RegisterClassCommand) error {
	input := msg.Input()
	class, err := r.registry.Register(input)
	if err != nil {
		return err
	}
	if r.repo != nil {
		if err := r.persist(ctx, class.Name(), input); err != nil {
			r.registry.Unregister(class.Name())
			logging.WithFields(r.logger, map[string]any{
				"widget_class": class.Name(),
				"error":        err,
			}).Error("classes.command.register.persist_failed")
			return err
		}
	}

	logging.WithFields(r.logger, map[string]any{
		"widget_class": class.Name(),
		"short_name":   class.ShortName(),
		"persistent":   r.repo != nil,
	}).Info("classes.command.register.completed")
	return nil
}

// persist stores input unless a record with the same name is already stored.
func (r *registerClass) persist(ctx context.Context, name string, input classes.RegisterClassInput) error {
	_, err := r.repo.GetByName(ctx, name)
	if err == nil {
		return nil
	}
	var notFound *classes.NotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("classes command: lookup %s: %w", name, err)
	}
	if _, err := r.repo.Create(ctx, classes.RecordFromInput(input, r.now())); err != nil {
		return fmt.Errorf("classes command: store %s: %w", name, err)
	}
	return nil
}
