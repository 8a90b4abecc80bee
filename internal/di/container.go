package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-widgetkit/internal/assets"
	"github.com/goliatone/go-widgetkit/internal/classes"
	"github.com/goliatone/go-widgetkit/internal/commands"
	classescmd "github.com/goliatone/go-widgetkit/internal/commands/classes"
	"github.com/goliatone/go-widgetkit/internal/composer"
	"github.com/goliatone/go-widgetkit/internal/delivery"
	"github.com/goliatone/go-widgetkit/internal/logging"
	"github.com/goliatone/go-widgetkit/internal/logging/gologger"
	"github.com/goliatone/go-widgetkit/internal/resolver"
	"github.com/goliatone/go-widgetkit/internal/runtimeconfig"
	"github.com/goliatone/go-widgetkit/pkg/interfaces"
)

var ErrBunDBRequired = errors.New("di: bun storage provider requires a *bun.DB (use WithBunDB)")

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	now            func() time.Time

	assetFS     fs.FS
	manifestFS  fs.FS
	assetSource interfaces.AssetSource

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	classRepo     classes.ClassRepository

	metrics interfaces.DeliveryMetrics

	registry    *classes.Registry
	resolver    *resolver.Resolver
	composer    *composer.Composer
	deliverySvc *delivery.Service

	registerHandler *commands.Handler[classescmd.RegisterClassCommand]
	importHandler   *commands.Handler[classescmd.ImportManifestsCommand]
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithAssetFS sets the filesystem included scripts and styles are read from.
// Defaults to the working directory.
func WithAssetFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.assetFS = fsys
	}
}

// WithAssetSource replaces the asset source entirely. The LRU cache is still
// applied when Assets.CacheSize is positive.
func WithAssetSource(source interfaces.AssetSource) Option {
	return func(c *Container) {
		c.assetSource = source
	}
}

// WithManifestFS sets the filesystem class manifests are discovered in.
// Defaults to the asset filesystem.
func WithManifestFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.manifestFS = fsys
	}
}

// WithBunDB binds the database used by the bun storage provider.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithClassRepository overrides the class repository selected by Config.Storage.
func WithClassRepository(repo classes.ClassRepository) Option {
	return func(c *Container) {
		c.classRepo = repo
	}
}

// WithDeliveryMetrics wires the recorder used by the delivery service.
func WithDeliveryMetrics(metrics interfaces.DeliveryMetrics) Option {
	return func(c *Container) {
		c.metrics = metrics
	}
}

// WithNow overrides the clock stamped on stored class records.
func WithNow(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// NewContainer validates cfg, builds every service and registers the classes
// declared in configuration and manifests.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
		now:      time.Now,
		metrics:  delivery.NoOpMetrics(),
		registry: classes.NewRegistry(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	steps := []func() error{
		c.configureLoggerProvider,
		c.configureCacheDefaults,
		c.configureRepositories,
		c.configureAssets,
		c.configureEngine,
		c.bootstrapClasses,
		c.configureCommands,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
		return nil
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, c.Config.Logging.Provider)
	}
}

func (c *Container) configureCacheDefaults() error {
	if !c.Config.Cache.Enabled || c.cacheService != nil {
		return nil
	}
	cfg := repocache.DefaultConfig()
	cfg.TTL = c.cacheTTL
	service, err := repocache.NewCacheService(cfg)
	if err != nil {
		return fmt.Errorf("di: repository cache: %w", err)
	}
	c.cacheService = service
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

func (c *Container) configureRepositories() error {
	if c.classRepo != nil || !c.Config.Features.Storage {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider)) {
	case "bun":
		if c.bunDB == nil {
			return ErrBunDBRequired
		}
		if c.Config.Cache.Enabled {
			c.classRepo = classes.NewBunClassRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		} else {
			c.classRepo = classes.NewBunClassRepository(c.bunDB)
		}
	default:
		c.classRepo = classes.NewMemoryClassRepository()
	}
	return nil
}

func (c *Container) configureAssets() error {
	source := c.assetSource
	if source == nil {
		fsys := c.assetFS
		if fsys == nil {
			fsys = os.DirFS(".")
		}
		source = assets.FileSystemSource{FS: fsys, BasePath: c.Config.Assets.BasePath}
	}
	cached, err := assets.NewCachedSource(source, c.Config.Assets.CacheSize)
	if err != nil {
		return err
	}
	c.assetSource = cached
	return nil
}

func (c *Container) configureEngine() error {
	client := c.Config.Client
	c.composer = composer.New(c.registry, c.assetSource,
		composer.WithClientConfig(composer.ClientConfig{
			Namespace:      client.Namespace,
			ExtendFunction: client.ExtendFunction,
			MergeFunction:  client.MergeFunction,
			Mixin:          client.Mixin,
		}),
		composer.WithAncestorDedupe(c.Config.Delivery.DedupeAncestors),
	)
	c.resolver = resolver.New(c.registry)
	c.deliverySvc = delivery.NewService(c.composer, c.resolver,
		delivery.WithLogger(logging.DeliveryLogger(c.loggerProvider)),
		delivery.WithMetrics(c.metrics),
	)
	return nil
}

func (c *Container) bootstrapClasses() error {
	inputs := classInputs(c.Config.Classes)
	if c.Config.Manifests.Enabled {
		loaded, err := classes.LoadManifests(c.manifestSource(), c.Config.Manifests.Pattern)
		if err != nil {
			return err
		}
		inputs = append(inputs, loaded...)
	}
	if len(inputs) == 0 && c.classRepo == nil {
		return nil
	}
	return classes.Bootstrap(context.Background(), c.registry, classes.BootstrapConfig{
		Classes:    inputs,
		Repository: c.classRepo,
		Logger:     logging.ClassesLogger(c.loggerProvider),
		Now:        c.now,
	})
}

func (c *Container) configureCommands() error {
	if !c.Config.Features.Commands {
		return nil
	}
	c.registerHandler = classescmd.NewRegisterClassHandler(c.registry,
		commands.CommandLogger(c.loggerProvider, "classes"),
		classescmd.RegisterClassWithRepository(c.classRepo),
		classescmd.RegisterClassWithNow(c.now),
	)
	c.importHandler = classescmd.NewImportManifestsHandler(c.manifestSource(), c.registry,
		commands.CommandLogger(c.loggerProvider, "classes"),
		classescmd.ImportManifestsWithRepository(c.classRepo),
	)
	return nil
}

func (c *Container) manifestSource() fs.FS {
	if c.manifestFS != nil {
		return c.manifestFS
	}
	if c.assetFS != nil {
		return c.assetFS
	}
	return os.DirFS(".")
}

func classInputs(configs []runtimeconfig.ClassConfig) []classes.RegisterClassInput {
	inputs := make([]classes.RegisterClassInput, 0, len(configs))
	for _, cfg := range configs {
		props := make(map[string]any, len(cfg.ExtendProperties)+len(cfg.RawProperties))
		for key, value := range cfg.ExtendProperties {
			props[key] = value
		}
		for key, body := range cfg.RawProperties {
			props[key] = classes.Raw(body)
		}
		menus := make([]classes.Menu, 0, len(cfg.Menus))
		for _, menu := range cfg.Menus {
			menus = append(menus, classes.Menu{Name: menu.Name, Text: menu.Text, Items: menu.Items})
		}
		inputs = append(inputs, classes.RegisterClassInput{
			Name:             cfg.Name,
			ShortName:        cfg.ShortName,
			Superclass:       cfg.Superclass,
			ClientBaseClass:  cfg.ClientBaseClass,
			ExtendProperties: props,
			IncludedScripts:  cfg.IncludedScripts,
			IncludedStyles:   cfg.IncludedStyles,
			Menus:            menus,
			API:              cfg.API,
		})
	}
	return inputs
}

// LoggerProvider returns the provider in use, nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Registry returns the class metadata store.
func (c *Container) Registry() *classes.Registry {
	return c.registry
}

// ClassRepository returns the configured class storage, nil without storage.
func (c *Container) ClassRepository() classes.ClassRepository {
	return c.classRepo
}

// AssetSource returns the source included files are read from.
func (c *Container) AssetSource() interfaces.AssetSource {
	return c.assetSource
}

// Composer returns the code and config composer.
func (c *Container) Composer() *composer.Composer {
	return c.composer
}

// Resolver returns the dependency resolver.
func (c *Container) Resolver() *resolver.Resolver {
	return c.resolver
}

// DeliveryService returns the payload delivery service.
func (c *Container) DeliveryService() *delivery.Service {
	return c.deliverySvc
}

// RegisterClassHandler returns the register command handler, nil unless
// Features.Commands is set.
func (c *Container) RegisterClassHandler() *commands.Handler[classescmd.RegisterClassCommand] {
	return c.registerHandler
}

// ImportManifestsHandler returns the manifest import command handler, nil
// unless Features.Commands is set.
func (c *Container) ImportManifestsHandler() *commands.Handler[classescmd.ImportManifestsCommand] {
	return c.importHandler
}
