package runtimeconfig

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrNamespaceInvalid          = errors.New("widgetkit config: client namespace must be a dotted JavaScript identifier")
	ErrClientFunctionRequired    = errors.New("widgetkit config: client extend, merge and mixin references are required")
	ErrAssetCacheSizeInvalid     = errors.New("widgetkit config: asset cache size must be zero or positive")
	ErrStorageFeatureRequired    = errors.New("widgetkit config: storage feature must be enabled to use the bun provider")
	ErrStorageProviderUnknown    = errors.New("widgetkit config: storage provider is invalid")
	ErrManifestsFeatureRequired  = errors.New("widgetkit config: manifests feature must be enabled to configure manifests")
	ErrManifestPatternRequired   = errors.New("widgetkit config: manifest pattern is required when manifests are enabled")
	ErrCacheRequiresStorage      = errors.New("widgetkit config: repository cache requires the bun storage provider")
	ErrLoggingProviderRequired   = errors.New("widgetkit config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown    = errors.New("widgetkit config: logging provider is invalid")
	ErrLoggingLevelInvalid       = errors.New("widgetkit config: logging level is invalid")
	ErrLoggingFormatInvalid      = errors.New("widgetkit config: logging format is invalid")
	ErrClassDefinitionNameNeeded = errors.New("widgetkit config: class definitions require a name")
)

var dottedIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

// Config aggregates feature flags and adapter bindings for the widget engine.
type Config struct {
	Enabled   bool
	Client    ClientConfig
	Assets    AssetsConfig
	Storage   StorageConfig
	Cache     CacheConfig
	Manifests ManifestConfig
	Delivery  DeliveryConfig
	Classes   []ClassConfig
	Features  Features
	Logging   LoggingConfig
}

// ClientConfig names the browser-side symbols referenced by generated code.
type ClientConfig struct {
	Namespace      string
	ExtendFunction string
	MergeFunction  string
	Mixin          string
}

// AssetsConfig controls how included script and style files are read.
type AssetsConfig struct {
	BasePath  string
	CacheSize int
}

// StorageConfig selects where registered class definitions are persisted.
type StorageConfig struct {
	Provider string
}

// CacheConfig toggles the repository cache wrapped around bun storage.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// ManifestConfig configures YAML class manifest discovery.
type ManifestConfig struct {
	Enabled bool
	Pattern string
}

// DeliveryConfig tunes script/style composition.
type DeliveryConfig struct {
	// DedupeAncestors makes a single composition call remember classes it
	// already emitted, so two dependencies sharing an uncached ancestor do
	// not both carry its code.
	DedupeAncestors bool
}

// ClassConfig mirrors the registration input of a widget class.
type ClassConfig struct {
	Name             string
	ShortName        string
	Superclass       string
	ClientBaseClass  string
	ExtendProperties map[string]any
	// RawProperties are emitted verbatim, typically function bodies.
	RawProperties   map[string]string
	IncludedScripts []string
	IncludedStyles  []string
	Menus           []MenuConfig
	API             []string
}

// MenuConfig describes a menu registered by a class at construction time.
type MenuConfig struct {
	Name  string
	Text  string
	Items []any
}

// Features toggles optional subsystems.
type Features struct {
	Storage   bool
	Manifests bool
	Commands  bool
	Logger    bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the defaults used when hosts do not override them.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Client: ClientConfig{
			Namespace:      "Ext.widgetkit.cache",
			ExtendFunction: "Ext.extend",
			MergeFunction:  "Ext.applyIf",
			Mixin:          "Ext.widgetMixIn",
		},
		Assets: AssetsConfig{
			BasePath:  ".",
			CacheSize: 256,
		},
		Storage: StorageConfig{
			Provider: "memory",
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Manifests: ManifestConfig{
			Pattern: "*.yaml",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if !dottedIdentifier.MatchString(strings.TrimSpace(cfg.Client.Namespace)) {
		return fmt.Errorf("%w: %q", ErrNamespaceInvalid, cfg.Client.Namespace)
	}
	for _, ref := range []string{cfg.Client.ExtendFunction, cfg.Client.MergeFunction, cfg.Client.Mixin} {
		if !dottedIdentifier.MatchString(strings.TrimSpace(ref)) {
			return fmt.Errorf("%w: %q", ErrClientFunctionRequired, ref)
		}
	}
	if cfg.Assets.CacheSize < 0 {
		return ErrAssetCacheSizeInvalid
	}

	switch normalize(cfg.Storage.Provider) {
	case "", "memory":
	case "bun":
		if !cfg.Features.Storage {
			return ErrStorageFeatureRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Cache.Enabled && normalize(cfg.Storage.Provider) != "bun" {
		return ErrCacheRequiresStorage
	}

	if cfg.Manifests.Enabled {
		if !cfg.Features.Manifests {
			return ErrManifestsFeatureRequired
		}
		if strings.TrimSpace(cfg.Manifests.Pattern) == "" {
			return ErrManifestPatternRequired
		}
	}

	for i, class := range cfg.Classes {
		if strings.TrimSpace(class.Name) == "" {
			return fmt.Errorf("%w: index %d", ErrClassDefinitionNameNeeded, i)
		}
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if provider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
