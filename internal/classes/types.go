package classes

import (
	"maps"
	"slices"

	"github.com/google/uuid"
)

// MaxInheritanceDepth bounds superclass walks.
const MaxInheritanceDepth = 32

// Raw is an extend-property value emitted verbatim into generated code,
// typically a function expression.
type Raw string

// Menu is a menu registered by a generated class when it is constructed.
// Items are passed through to the client untouched.
type Menu struct {
	Name  string `json:"name" yaml:"name"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
	Items []any  `json:"items,omitempty" yaml:"items,omitempty"`
}

// RegisterClassInput describes a widget class before registration.
type RegisterClassInput struct {
	Name string
	// ShortName defaults to the CamelCase form of Name.
	ShortName string
	// Superclass names another widget class. Empty means the class extends
	// ClientBaseClass directly.
	Superclass       string
	ClientBaseClass  string
	ExtendProperties map[string]any
	IncludedScripts  []string
	IncludedStyles   []string
	Menus            []Menu
	API              []string
}

// Class is the immutable metadata record of a registered widget class.
// Accessors return copies so callers cannot mutate registry state.
type Class struct {
	id               uuid.UUID
	name             string
	shortName        string
	superclass       string
	clientBaseClass  string
	extendProperties map[string]any
	includedScripts  []string
	includedStyles   []string
	menus            []Menu
	api              []string
}

func (c *Class) ID() uuid.UUID           { return c.id }
func (c *Class) Name() string            { return c.name }
func (c *Class) ShortName() string       { return c.shortName }
func (c *Class) SuperclassName() string  { return c.superclass }
func (c *Class) ClientBaseClass() string { return c.clientBaseClass }

// ExtendProperties returns a shallow copy of the properties merged into the
// generated client class.
func (c *Class) ExtendProperties() map[string]any {
	return maps.Clone(c.extendProperties)
}

func (c *Class) IncludedScripts() []string { return slices.Clone(c.includedScripts) }
func (c *Class) IncludedStyles() []string  { return slices.Clone(c.includedStyles) }
func (c *Class) Menus() []Menu             { return slices.Clone(c.menus) }
func (c *Class) API() []string             { return slices.Clone(c.api) }

// Input rebuilds the registration input the class was created from.
func (c *Class) Input() RegisterClassInput {
	return RegisterClassInput{
		Name:             c.name,
		ShortName:        c.shortName,
		Superclass:       c.superclass,
		ClientBaseClass:  c.clientBaseClass,
		ExtendProperties: c.ExtendProperties(),
		IncludedScripts:  c.IncludedScripts(),
		IncludedStyles:   c.IncludedStyles(),
		Menus:            c.Menus(),
		API:              c.API(),
	}
}
