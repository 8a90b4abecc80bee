package composer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/goliatone/go-widgetkit/internal/classes"
)

var definitionTemplate = template.Must(template.New("definition").Parse(
	`{{.Constructor}} = function(config) {
{{- if not .Inherited}}
	this.beforeConstructor(config);
{{- end}}
	{{.Constructor}}.superclass.constructor.call(this, config);
{{- with .Menus}}
	this.addMenus({{.}});
{{- end}}
{{- if not .Inherited}}
	this.afterConstructor(config);
{{- end}}
};
{{.Extend}}({{.Constructor}}, {{.Base}}, {{.Merge}}({{.Properties}}, {{.Mixin}}));
`))

type definitionData struct {
	Constructor string
	Inherited   bool
	Base        string
	Menus       string
	Extend      string
	Merge       string
	Properties  string
	Mixin       string
}

// Constructor returns the client-side symbol of class.
func (c *Composer) Constructor(class *classes.Class) string {
	return c.client.Namespace + "." + class.ShortName()
}

// definition renders the constructor and extension call of class. parent is
// nil when class extends its foreign client base.
func (c *Composer) definition(class *classes.Class, parent *classes.Class) (string, error) {
	properties, err := Literal(class.ExtendProperties())
	if err != nil {
		return "", fmt.Errorf("composer: %s extend properties: %w", class.Name(), err)
	}

	data := definitionData{
		Constructor: c.Constructor(class),
		Inherited:   parent != nil,
		Base:        class.ClientBaseClass(),
		Extend:      c.client.ExtendFunction,
		Merge:       c.client.MergeFunction,
		Properties:  properties,
		Mixin:       c.client.Mixin,
	}
	if parent != nil {
		data.Base = c.Constructor(parent)
	}
	if menus := class.Menus(); len(menus) > 0 {
		literal, err := Literal(menus)
		if err != nil {
			return "", fmt.Errorf("composer: %s menus: %w", class.Name(), err)
		}
		data.Menus = literal
	}

	var buf strings.Builder
	if err := definitionTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("composer: render %s: %w", class.Name(), err)
	}
	return buf.String(), nil
}
