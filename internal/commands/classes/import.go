package classescmd

import (
	"context"
	"errors"
	"io/fs"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-widgetkit/internal/classes"
	"github.com/goliatone/go-widgetkit/internal/commands"
	"github.com/goliatone/go-widgetkit/internal/logging"
	"github.com/goliatone/go-widgetkit/pkg/interfaces"
)

const importManifestsMessageType = "widgetkit.classes.import_manifests"

var ErrManifestSourceMissing = errors.New("classes command: manifest filesystem not configured")

// ImportManifestsCommand loads every manifest matching Pattern and registers
// the classes they declare.
type ImportManifestsCommand struct {
	Pattern string
}

// Type implements command.Message.
func (ImportManifestsCommand) Type() string { return importManifestsMessageType }

// Validate satisfies command.Message.
func (c ImportManifestsCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Pattern, validation.Required),
	)
}

// ImportManifestsOption customises the import handler.
type ImportManifestsOption func(*importManifests)

// ImportManifestsWithRepository persists imported classes.
func ImportManifestsWithRepository(repo classes.ClassRepository) ImportManifestsOption {
	return func(i *importManifests) {
		i.repo = repo
	}
}

// ImportManifestsWithTimeout overrides the default execution timeout.
func ImportManifestsWithTimeout(timeout time.Duration) ImportManifestsOption {
	return func(i *importManifests) {
		i.timeout = timeout
	}
}

type importManifests struct {
	fsys     fs.FS
	registry *classes.Registry
	repo     classes.ClassRepository
	logger   interfaces.Logger
	timeout  time.Duration
}

// NewImportManifestsHandler constructs a handler reading manifests from fsys.
func NewImportManifestsHandler(fsys fs.FS, registry *classes.Registry, logger interfaces.Logger, opts ...ImportManifestsOption) *commands.Handler[ImportManifestsCommand] {
	i := &importManifests{
		fsys:     fsys,
		registry: registry,
		logger:   commands.EnsureLogger(logger),
		timeout:  commands.DefaultCommandTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	return commands.NewHandler[ImportManifestsCommand](i.execute,
		commands.WithLogger[ImportManifestsCommand](i.logger),
		commands.WithOperation[ImportManifestsCommand]("classes.import_manifests"),
		commands.WithTimeout[ImportManifestsCommand](i.timeout),
	)
}

func (i *importManifests) execute(ctx context.Context, msg ImportManifestsCommand) error {
	if i.fsys == nil {
		return ErrManifestSourceMissing
	}
	inputs, err := classes.LoadManifests(i.fsys, msg.Pattern)
	if err != nil {
		return err
	}
	if err := classes.Bootstrap(ctx, i.registry, classes.BootstrapConfig{
		Classes:    inputs,
		Repository: i.repo,
		Logger:     i.logger,
	}); err != nil {
		return err
	}

	logging.WithFields(i.logger, map[string]any{
		"pattern": msg.Pattern,
		"classes": len(inputs),
	}).Info("classes.command.import_manifests.completed")
	return nil
}
