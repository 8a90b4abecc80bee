package classes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/goliatone/go-widgetkit/internal/logging"
	"github.com/goliatone/go-widgetkit/pkg/interfaces"
)

// BootstrapConfig bundles the registrations applied during startup.
type BootstrapConfig struct {
	Classes []RegisterClassInput
	// Repository is optional. When set, Classes are stored first and the
	// registry is then filled from everything the repository holds.
	Repository ClassRepository
	Logger     interfaces.Logger
	Now        func() time.Time
}

// Bootstrap registers classes with registry, superclasses before subclasses,
// tolerating classes that are already registered.
func Bootstrap(ctx context.Context, registry *Registry, cfg BootstrapConfig) error {
	if registry == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	inputs := cfg.Classes
	if cfg.Repository != nil {
		stored, err := persist(ctx, cfg.Repository, cfg.Classes, now)
		if err != nil {
			return err
		}
		inputs = stored
	}

	registered, err := registerInOrder(registry, inputs)
	if err != nil {
		return err
	}
	logging.WithFields(logger, map[string]any{
		"classes":    registered,
		"persistent": cfg.Repository != nil,
	}).Info("classes.bootstrap.completed")
	return nil
}

func persist(ctx context.Context, repo ClassRepository, inputs []RegisterClassInput, now func() time.Time) ([]RegisterClassInput, error) {
	for _, input := range inputs {
		name := canonicalName(input.Name)
		if name == "" {
			continue
		}
		_, err := repo.GetByName(ctx, name)
		if err == nil {
			continue
		}
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("classes: lookup %s: %w", name, err)
		}
		if _, err := repo.Create(ctx, RecordFromInput(input, now())); err != nil {
			return nil, fmt.Errorf("classes: store %s: %w", name, err)
		}
	}

	records, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("classes: list stored classes: %w", err)
	}
	stored := make([]RegisterClassInput, 0, len(records))
	for _, record := range records {
		stored = append(stored, record.Input())
	}
	return stored, nil
}

// registerInOrder visits inputs by name and registers each superclass that
// is part of the batch before its subclasses.
func registerInOrder(registry *Registry, inputs []RegisterClassInput) (int, error) {
	batch := make(map[string]RegisterClassInput, len(inputs))
	names := make([]string, 0, len(inputs))
	for _, input := range inputs {
		name := canonicalName(input.Name)
		if name == "" {
			continue
		}
		if _, dup := batch[name]; !dup {
			names = append(names, name)
		}
		batch[name] = input
	}
	sort.Strings(names)

	const (
		visiting = 1
		done     = 2
	)
	state := make(map[string]int, len(names))
	registered := 0

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return configurationError(ErrInheritanceCycle, name, batch[name].Superclass)
		}
		state[name] = visiting
		input := batch[name]
		if parent := canonicalName(input.Superclass); parent != "" {
			if _, inBatch := batch[parent]; inBatch {
				if err := visit(parent); err != nil {
					return err
				}
			}
		}
		state[name] = done

		if _, err := registry.Register(input); err != nil {
			if errors.Is(err, ErrClassExists) {
				return nil
			}
			return err
		}
		registered++
		return nil
	}

	for _, name := range names {
		if err := visit(name); err != nil {
			return registered, err
		}
	}
	return registered, nil
}
