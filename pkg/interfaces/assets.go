package interfaces

// AssetSource reads the contents of static script and stylesheet files
// declared by widget classes. Paths are the ones listed on the class.
type AssetSource interface {
	Read(path string) (string, error)
}

// KnownClasses answers whether the browser already holds the definition of a
// widget class, keyed by the class short name. Implementations are supplied
// per call and are never mutated by the engine.
type KnownClasses interface {
	Has(shortName string) bool
}
