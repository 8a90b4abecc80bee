package widgetkit

import "github.com/goliatone/go-widgetkit/internal/runtimeconfig"

var (
	ErrNamespaceInvalid          = runtimeconfig.ErrNamespaceInvalid
	ErrClientFunctionRequired    = runtimeconfig.ErrClientFunctionRequired
	ErrAssetCacheSizeInvalid     = runtimeconfig.ErrAssetCacheSizeInvalid
	ErrStorageFeatureRequired    = runtimeconfig.ErrStorageFeatureRequired
	ErrStorageProviderUnknown    = runtimeconfig.ErrStorageProviderUnknown
	ErrManifestsFeatureRequired  = runtimeconfig.ErrManifestsFeatureRequired
	ErrManifestPatternRequired   = runtimeconfig.ErrManifestPatternRequired
	ErrCacheRequiresStorage      = runtimeconfig.ErrCacheRequiresStorage
	ErrLoggingProviderRequired   = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown    = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
	ErrClassDefinitionNameNeeded = runtimeconfig.ErrClassDefinitionNameNeeded
)

type (
	Config         = runtimeconfig.Config
	ClientConfig   = runtimeconfig.ClientConfig
	AssetsConfig   = runtimeconfig.AssetsConfig
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	ManifestConfig = runtimeconfig.ManifestConfig
	DeliveryConfig = runtimeconfig.DeliveryConfig
	ClassConfig    = runtimeconfig.ClassConfig
	MenuConfig     = runtimeconfig.MenuConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
