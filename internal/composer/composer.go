package composer

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-widgetkit/internal/classes"
	"github.com/goliatone/go-widgetkit/pkg/interfaces"
)

// ClientConfig names the client-side symbols generated code refers to.
type ClientConfig struct {
	Namespace      string
	ExtendFunction string
	MergeFunction  string
	Mixin          string
}

// DefaultClientConfig returns the conventions of the bundled client runtime.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Namespace:      "Ext.widgetkit.cache",
		ExtendFunction: "Ext.extend",
		MergeFunction:  "Ext.applyIf",
		Mixin:          "Ext.widgetMixIn",
	}
}

// Option configures a Composer.
type Option func(*Composer)

// WithClientConfig overrides the client conventions. Empty fields keep their
// defaults.
func WithClientConfig(cfg ClientConfig) Option {
	return func(c *Composer) {
		if cfg.Namespace != "" {
			c.client.Namespace = cfg.Namespace
		}
		if cfg.ExtendFunction != "" {
			c.client.ExtendFunction = cfg.ExtendFunction
		}
		if cfg.MergeFunction != "" {
			c.client.MergeFunction = cfg.MergeFunction
		}
		if cfg.Mixin != "" {
			c.client.Mixin = cfg.Mixin
		}
	}
}

// WithAncestorDedupe makes MissingScripts and MissingStyles treat classes
// emitted earlier in the same call as known. Without it the known set is
// static per call and an uncached ancestor shared by two dependencies is
// emitted once per dependency.
func WithAncestorDedupe(enabled bool) Option {
	return func(c *Composer) {
		c.dedupeAncestors = enabled
	}
}

// Composer generates client class definitions, stylesheets and instance
// configuration from registered widget classes.
type Composer struct {
	registry        *classes.Registry
	assets          interfaces.AssetSource
	client          ClientConfig
	dedupeAncestors bool
}

// New constructs a composer. assets serves included script and style files.
func New(registry *classes.Registry, assets interfaces.AssetSource, opts ...Option) *Composer {
	c := &Composer{
		registry: registry,
		assets:   assets,
		client:   DefaultClientConfig(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Client returns the client conventions in use.
func (c *Composer) Client() ClientConfig {
	return c.client
}

type kind int

const (
	scripts kind = iota
	styles
)

// emitted tracks classes written earlier in a call when ancestor dedupe is on.
type emitted map[string]struct{}

func (e emitted) has(class *classes.Class) bool {
	if e == nil {
		return false
	}
	_, ok := e[class.ShortName()]
	return ok
}

func (e emitted) add(class *classes.Class) {
	if e != nil {
		e[class.ShortName()] = struct{}{}
	}
}

func isKnown(known interfaces.KnownClasses, class *classes.Class) bool {
	return known != nil && known.Has(class.ShortName())
}

// ScriptFor returns the script for class: every uncached ancestor in the
// chain first, then the class's included files and its definition block.
// A nil class yields an empty script.
func (c *Composer) ScriptFor(class *classes.Class, known interfaces.KnownClasses) (string, error) {
	if class == nil {
		return "", nil
	}
	var buf strings.Builder
	if err := c.write(&buf, scripts, class, known, nil); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// StylesFor returns the stylesheet text for class, uncached ancestors first.
func (c *Composer) StylesFor(class *classes.Class, known interfaces.KnownClasses) (string, error) {
	if class == nil {
		return "", nil
	}
	var buf strings.Builder
	if err := c.write(&buf, styles, class, known, nil); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MissingScripts concatenates the scripts of every class in deps the client
// does not know yet. It returns nil when there is nothing to send.
func (c *Composer) MissingScripts(deps []*classes.Class, known interfaces.KnownClasses) (*string, error) {
	return c.missing(scripts, deps, known)
}

// MissingStyles is MissingScripts for stylesheets.
func (c *Composer) MissingStyles(deps []*classes.Class, known interfaces.KnownClasses) (*string, error) {
	return c.missing(styles, deps, known)
}

func (c *Composer) missing(k kind, deps []*classes.Class, known interfaces.KnownClasses) (*string, error) {
	var seen emitted
	if c.dedupeAncestors {
		seen = emitted{}
	}

	var buf strings.Builder
	for _, class := range deps {
		if class == nil || isKnown(known, class) || seen.has(class) {
			continue
		}
		if err := c.write(&buf, k, class, known, seen); err != nil {
			return nil, err
		}
	}
	if buf.Len() == 0 {
		return nil, nil
	}
	out := buf.String()
	return &out, nil
}

// write emits class preceded by the part of its ancestor chain that is
// neither known to the client nor already emitted. Output is only appended
// to buf once the whole chain rendered.
func (c *Composer) write(buf *strings.Builder, k kind, class *classes.Class, known interfaces.KnownClasses, seen emitted) error {
	ancestors, err := c.registry.Ancestors(class)
	if err != nil {
		return err
	}
	chain := append([]*classes.Class{class}, ancestors...)

	first := len(chain) - 1
	for i := 1; i < len(chain); i++ {
		if isKnown(known, chain[i]) || seen.has(chain[i]) {
			first = i - 1
			break
		}
	}

	var out strings.Builder
	for i := first; i >= 0; i-- {
		var parent *classes.Class
		if i+1 < len(chain) {
			parent = chain[i+1]
		}
		if err := c.writeOwn(&out, k, chain[i], parent); err != nil {
			return err
		}
	}
	for i := first; i >= 0; i-- {
		seen.add(chain[i])
	}
	buf.WriteString(out.String())
	return nil
}

// writeOwn emits the files and, for scripts, the definition block of class
// alone. parent is the resolved superclass or nil for a foreign base.
func (c *Composer) writeOwn(buf *strings.Builder, k kind, class *classes.Class, parent *classes.Class) error {
	paths := class.IncludedScripts()
	if k == styles {
		paths = class.IncludedStyles()
	}
	if len(paths) > 0 && c.assets == nil {
		return fmt.Errorf("composer: %s declares includes but no asset source is configured", class.Name())
	}
	for _, path := range paths {
		contents, err := c.assets.Read(path)
		if err != nil {
			return fmt.Errorf("composer: %s include %s: %w", class.Name(), path, err)
		}
		writeChunk(buf, contents)
	}
	if k == styles {
		return nil
	}
	block, err := c.definition(class, parent)
	if err != nil {
		return err
	}
	writeChunk(buf, block)
	return nil
}

func writeChunk(buf *strings.Builder, chunk string) {
	if chunk == "" {
		return
	}
	buf.WriteString(chunk)
	if !strings.HasSuffix(chunk, "\n") {
		buf.WriteByte('\n')
	}
}
