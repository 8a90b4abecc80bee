package composer

import (
	"fmt"
	"html"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/goliatone/go-widgetkit/internal/widgets"
)

// InstanceName turns the instance id into a JavaScript variable name:
// "foo_bar" becomes "fooBar" and "app__grid" becomes "appGrid".
//
// The mapping is not injective: "a__b_c" and "a_b__c" both become "aBC".
// Each payload declares a single variable, but late aggregatees loaded into
// the same page share the global scope, so sibling names that differ only
// in underscore placement should be avoided.
func InstanceName(inst *widgets.Instance) string {
	camel := strcase.ToLowerCamel(inst.ID())
	var b strings.Builder
	for _, r := range camel {
		switch {
		case r == '_' || r == '$',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	name := b.String()
	if name == "" || name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

// ContainerID is the DOM id the instance renders into: its name with
// underscores replaced by hyphens.
func ContainerID(inst *widgets.Instance) string {
	return strings.ReplaceAll(inst.Name(), "_", "-")
}

// Instantiation returns the statement constructing inst from cfg.
func (c *Composer) Instantiation(inst *widgets.Instance, cfg map[string]any) (string, error) {
	literal, err := Literal(cfg)
	if err != nil {
		return "", fmt.Errorf("composer: %s config: %w", inst.ID(), err)
	}
	return fmt.Sprintf("var %s = new %s(%s);", InstanceName(inst), c.Constructor(inst.Class()), literal), nil
}

// RenderCall returns the statement rendering inst into its container.
func RenderCall(inst *widgets.Instance) string {
	return fmt.Sprintf("%s.render(%q);", InstanceName(inst), ContainerID(inst))
}

// Container returns the markup of the element inst renders into.
func Container(inst *widgets.Instance) string {
	return fmt.Sprintf(`<div id="%s"></div>`, html.EscapeString(ContainerID(inst)))
}
