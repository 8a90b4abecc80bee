package classes

import (
	_ "embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-widgetkit/internal/validation"
)

//go:embed manifest_schema.json
var manifestSchemaDocument []byte

var (
	manifestSchemaOnce sync.Once
	manifestSchema     *validation.Schema
	manifestSchemaErr  error
)

// Manifest is a YAML document declaring one or more widget classes.
type Manifest struct {
	Classes []ManifestClass `yaml:"classes"`
}

// ManifestClass mirrors RegisterClassInput using manifest field names.
type ManifestClass struct {
	Name             string            `yaml:"name"`
	ShortName        string            `yaml:"short_name"`
	Superclass       string            `yaml:"superclass"`
	ClientBaseClass  string            `yaml:"client_base_class"`
	ExtendProperties map[string]any    `yaml:"extend_properties"`
	RawProperties    map[string]string `yaml:"raw_properties"`
	Scripts          []string          `yaml:"scripts"`
	Styles           []string          `yaml:"styles"`
	Menus            []Menu            `yaml:"menus"`
	API              []string          `yaml:"api"`
}

// ParseManifest validates data against the manifest schema and decodes it.
// source only labels errors.
func ParseManifest(source string, data []byte) (*Manifest, error) {
	schema, err := loadManifestSchema()
	if err != nil {
		return nil, err
	}

	var document map[string]any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, manifestError(fmt.Errorf("%w: %v", ErrManifestInvalid, err), source)
	}
	if err := schema.Validate(document); err != nil {
		return nil, manifestError(fmt.Errorf("%w: %w", ErrManifestInvalid, err), source)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, manifestError(fmt.Errorf("%w: %v", ErrManifestInvalid, err), source)
	}
	return &manifest, nil
}

// Inputs converts the manifest into registration inputs.
func (m *Manifest) Inputs() []RegisterClassInput {
	if m == nil {
		return nil
	}
	inputs := make([]RegisterClassInput, 0, len(m.Classes))
	for _, class := range m.Classes {
		props := make(map[string]any, len(class.ExtendProperties)+len(class.RawProperties))
		for key, value := range class.ExtendProperties {
			props[key] = value
		}
		for key, body := range class.RawProperties {
			props[key] = Raw(body)
		}
		inputs = append(inputs, RegisterClassInput{
			Name:             class.Name,
			ShortName:        class.ShortName,
			Superclass:       class.Superclass,
			ClientBaseClass:  class.ClientBaseClass,
			ExtendProperties: props,
			IncludedScripts:  class.Scripts,
			IncludedStyles:   class.Styles,
			Menus:            class.Menus,
			API:              class.API,
		})
	}
	return inputs
}

// LoadManifests parses every file in fsys matching pattern, in lexical order,
// and returns the combined registration inputs.
func LoadManifests(fsys fs.FS, pattern string) ([]RegisterClassInput, error) {
	paths, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("classes: manifest pattern %q: %w", pattern, err)
	}
	sort.Strings(paths)

	var inputs []RegisterClassInput
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("classes: read manifest %s: %w", path, err)
		}
		manifest, err := ParseManifest(path, data)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, manifest.Inputs()...)
	}
	return inputs, nil
}

func loadManifestSchema() (*validation.Schema, error) {
	manifestSchemaOnce.Do(func() {
		manifestSchema, manifestSchemaErr = validation.CompileSchema("widget_class_manifest.json", manifestSchemaDocument)
	})
	return manifestSchema, manifestSchemaErr
}
