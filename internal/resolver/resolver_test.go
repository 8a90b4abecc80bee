package resolver

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetkit/internal/classes"
	"github.com/goliatone/go-widgetkit/internal/widgets"
)

type fixture struct {
	registry *classes.Registry
	classes  map[string]*classes.Class
}

func newFixture(t *testing.T, inputs ...classes.RegisterClassInput) fixture {
	t.Helper()
	registry := classes.NewRegistry()
	out := fixture{registry: registry, classes: map[string]*classes.Class{}}
	for _, input := range inputs {
		class, err := registry.Register(input)
		if err != nil {
			t.Fatalf("register %s: %v", input.Name, err)
		}
		out.classes[input.Name] = class
	}
	return out
}

func names(set []*classes.Class) []string {
	out := make([]string, 0, len(set))
	for _, class := range set {
		out = append(out, class.Name())
	}
	return out
}

func TestResolveOrdersAncestorsBeforeSubclasses(t *testing.T) {
	t.Parallel()

	fx := newFixture(t,
		classes.RegisterClassInput{Name: "Root", ClientBaseClass: "Ext.Panel"},
		classes.RegisterClassInput{Name: "A", ClientBaseClass: "Ext.Panel"},
		classes.RegisterClassInput{Name: "B", Superclass: "A"},
	)

	cases := []struct {
		name  string
		order []string
	}{
		{name: "ancestor first", order: []string{"A", "B"}},
		{name: "subclass first", order: []string{"B", "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := widgets.New("app", fx.classes["Root"])
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			for _, className := range tc.order {
				if _, err := root.Aggregate("child_"+className, fx.classes[className]); err != nil {
					t.Fatalf("Aggregate: %v", err)
				}
			}

			set, err := New(fx.registry).Resolve(root)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if diff := cmp.Diff([]string{"A", "B", "Root"}, names(set)); diff != "" {
				t.Fatalf("dependency order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveWalksDepthFirstAndDedupes(t *testing.T) {
	t.Parallel()

	fx := newFixture(t,
		classes.RegisterClassInput{Name: "Layout", ClientBaseClass: "Ext.Panel"},
		classes.RegisterClassInput{Name: "Grid", ClientBaseClass: "Ext.grid.GridPanel"},
		classes.RegisterClassInput{Name: "Form", ClientBaseClass: "Ext.FormPanel"},
		classes.RegisterClassInput{Name: "Toolbar", ClientBaseClass: "Ext.Toolbar"},
	)

	root, _ := widgets.New("app", fx.classes["Layout"])
	west, _ := root.Aggregate("west", fx.classes["Grid"])
	_, _ = west.Aggregate("tools", fx.classes["Toolbar"])
	east, _ := root.Aggregate("east", fx.classes["Form"])
	_, _ = east.Aggregate("tools", fx.classes["Toolbar"])
	_, _ = root.Aggregate("nested", fx.classes["Layout"])

	set, err := New(fx.registry).Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if diff := cmp.Diff([]string{"Toolbar", "Grid", "Form", "Layout"}, names(set)); diff != "" {
		t.Fatalf("dependency order mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveSkipsLateAggregatees(t *testing.T) {
	t.Parallel()

	fx := newFixture(t,
		classes.RegisterClassInput{Name: "Layout", ClientBaseClass: "Ext.Panel"},
		classes.RegisterClassInput{Name: "Grid", ClientBaseClass: "Ext.grid.GridPanel"},
		classes.RegisterClassInput{Name: "Chart", ClientBaseClass: "Ext.Panel"},
	)

	root, _ := widgets.New("app", fx.classes["Layout"])
	_, _ = root.Aggregate("grid", fx.classes["Grid"])
	chart, _ := root.Aggregate("chart", fx.classes["Chart"], widgets.Late())
	_, _ = chart.Aggregate("inner", fx.classes["Grid"])

	set, err := New(fx.registry).Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if diff := cmp.Diff([]string{"Grid", "Layout"}, names(set)); diff != "" {
		t.Fatalf("dependency order mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	t.Parallel()

	fx := newFixture(t,
		classes.RegisterClassInput{Name: "Layout", ClientBaseClass: "Ext.Panel"},
		classes.RegisterClassInput{Name: "Grid", ClientBaseClass: "Ext.grid.GridPanel"},
		classes.RegisterClassInput{Name: "ExtendedGrid", Superclass: "Grid"},
	)
	root, _ := widgets.New("app", fx.classes["Layout"])
	_, _ = root.Aggregate("main", fx.classes["ExtendedGrid"])
	_, _ = root.Aggregate("side", fx.classes["Grid"])

	resolver := New(fx.registry)
	first, err := resolver.Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := resolver.Resolve(root)
	if err != nil {
		t.Fatalf("Resolve again: %v", err)
	}
	if diff := cmp.Diff(names(first), names(second)); diff != "" {
		t.Fatalf("expected identical output (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Grid", "ExtendedGrid", "Layout"}, names(first)); diff != "" {
		t.Fatalf("dependency order mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvePropagatesBrokenChains(t *testing.T) {
	t.Parallel()

	fx := newFixture(t,
		classes.RegisterClassInput{Name: "Orphan", Superclass: "Missing"},
	)
	root, _ := widgets.New("app", fx.classes["Orphan"])

	_, err := New(fx.registry).Resolve(root)
	if !errors.Is(err, classes.ErrSuperclassNotRegistered) {
		t.Fatalf("expected ErrSuperclassNotRegistered, got %v", err)
	}
	if !classes.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
