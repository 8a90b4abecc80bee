package classes

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func mustRegister(t *testing.T, registry *Registry, input RegisterClassInput) *Class {
	t.Helper()
	class, err := registry.Register(input)
	if err != nil {
		t.Fatalf("register %s: %v", input.Name, err)
	}
	return class
}

func TestRegisterDerivesShortName(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	class := mustRegister(t, registry, RegisterClassInput{
		Name:            "basic_app",
		ClientBaseClass: "Ext.Panel",
	})
	if class.ShortName() != "BasicApp" {
		t.Fatalf("expected derived short name BasicApp, got %s", class.ShortName())
	}
	if class.ID() == uuid.Nil {
		t.Fatal("expected deterministic id")
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	mustRegister(t, registry, RegisterClassInput{Name: "Grid", ClientBaseClass: "Ext.grid.GridPanel"})

	if _, err := registry.Register(RegisterClassInput{Name: " Grid ", ClientBaseClass: "Ext.Panel"}); !errors.Is(err, ErrClassExists) {
		t.Fatalf("expected ErrClassExists, got %v", err)
	}
	_, err := registry.Register(RegisterClassInput{Name: "OtherGrid", ShortName: "Grid", ClientBaseClass: "Ext.Panel"})
	if !errors.Is(err, ErrShortNameConflict) {
		t.Fatalf("expected ErrShortNameConflict, got %v", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input RegisterClassInput
		want  error
	}{
		{name: "missing name", input: RegisterClassInput{ClientBaseClass: "Ext.Panel"}, want: ErrClassNameRequired},
		{name: "missing base", input: RegisterClassInput{Name: "Orphan"}, want: ErrClientBaseRequired},
		{name: "bad short name", input: RegisterClassInput{Name: "Bad", ShortName: "not-valid", ClientBaseClass: "Ext.Panel"}, want: ErrShortNameInvalid},
		{name: "self inheritance", input: RegisterClassInput{Name: "Loop", Superclass: "Loop"}, want: ErrSelfInheritance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry().Register(tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRegisterRejectsCycleClosedLater(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	mustRegister(t, registry, RegisterClassInput{Name: "A", Superclass: "B"})

	_, err := registry.Register(RegisterClassInput{Name: "B", Superclass: "A"})
	if !errors.Is(err, ErrInheritanceCycle) {
		t.Fatalf("expected ErrInheritanceCycle, got %v", err)
	}
	if !IsConfigurationError(err) {
		t.Fatalf("expected configuration category, got %v", err)
	}
}

func TestIsJSInherited(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	grid := mustRegister(t, registry, RegisterClassInput{Name: "Grid", ClientBaseClass: "Ext.grid.EditorGridPanel"})
	extended := mustRegister(t, registry, RegisterClassInput{Name: "ExtendedGrid", Superclass: "Grid"})

	if registry.IsJSInherited(grid) {
		t.Fatal("expected Grid to extend a foreign base")
	}
	if !registry.IsJSInherited(extended) {
		t.Fatal("expected ExtendedGrid to chain to Grid")
	}

	parent, err := registry.Superclass(extended)
	if err != nil {
		t.Fatalf("Superclass: %v", err)
	}
	if parent != grid {
		t.Fatalf("expected Grid as superclass, got %v", parent)
	}
}

func TestSuperclassNotRegisteredIsConfigurationError(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	orphan := mustRegister(t, registry, RegisterClassInput{Name: "Orphan", Superclass: "Missing"})

	_, err := registry.Ancestors(orphan)
	if !errors.Is(err, ErrSuperclassNotRegistered) {
		t.Fatalf("expected ErrSuperclassNotRegistered, got %v", err)
	}
	if !IsConfigurationError(err) {
		t.Fatalf("expected configuration category, got %v", err)
	}
}

func TestAncestorsNearestFirst(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	mustRegister(t, registry, RegisterClassInput{Name: "Base", ClientBaseClass: "Ext.Panel"})
	mustRegister(t, registry, RegisterClassInput{Name: "Middle", Superclass: "Base"})
	leaf := mustRegister(t, registry, RegisterClassInput{Name: "Leaf", Superclass: "Middle"})

	chain, err := registry.Ancestors(leaf)
	if err != nil {
		t.Fatalf("Ancestors: %v", err)
	}
	names := make([]string, 0, len(chain))
	for _, class := range chain {
		names = append(names, class.Name())
	}
	if diff := cmp.Diff([]string{"Middle", "Base"}, names); diff != "" {
		t.Fatalf("ancestors mismatch (-want +got):\n%s", diff)
	}
}

func TestAccumulatedStylesAreOwnOnly(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	mustRegister(t, registry, RegisterClassInput{Name: "Grid", ClientBaseClass: "Ext.Panel", IncludedStyles: []string{"grid.css"}})
	extended := mustRegister(t, registry, RegisterClassInput{Name: "ExtendedGrid", Superclass: "Grid", IncludedStyles: []string{"extended.css", " "}})

	if diff := cmp.Diff([]string{"extended.css"}, registry.AccumulatedStyles(extended)); diff != "" {
		t.Fatalf("styles mismatch (-want +got):\n%s", diff)
	}
}

func TestAPIPointsInheritAncestorsFirst(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	mustRegister(t, registry, RegisterClassInput{Name: "Grid", ClientBaseClass: "Ext.Panel", API: []string{"get_data", "post_data"}})
	extended := mustRegister(t, registry, RegisterClassInput{Name: "ExtendedGrid", Superclass: "Grid", API: []string{"export", "get_data"}})

	points, err := registry.APIPoints(extended)
	if err != nil {
		t.Fatalf("APIPoints: %v", err)
	}
	if diff := cmp.Diff([]string{"get_data", "post_data", "export"}, points); diff != "" {
		t.Fatalf("api points mismatch (-want +got):\n%s", diff)
	}
}

func TestClassAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	class := mustRegister(t, registry, RegisterClassInput{
		Name:             "Grid",
		ClientBaseClass:  "Ext.Panel",
		ExtendProperties: map[string]any{"title": "Grid"},
		IncludedScripts:  []string{"grid.js"},
	})

	props := class.ExtendProperties()
	props["title"] = "mutated"
	scripts := class.IncludedScripts()
	scripts[0] = "mutated.js"

	if class.ExtendProperties()["title"] != "Grid" {
		t.Fatal("expected extend properties to be immutable")
	}
	if class.IncludedScripts()[0] != "grid.js" {
		t.Fatal("expected included scripts to be immutable")
	}
}

func TestListKeepsRegistrationOrder(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	mustRegister(t, registry, RegisterClassInput{Name: "Zeta", ClientBaseClass: "Ext.Panel"})
	mustRegister(t, registry, RegisterClassInput{Name: "Alpha", ClientBaseClass: "Ext.Panel"})

	list := registry.List()
	if len(list) != 2 || list[0].Name() != "Zeta" || list[1].Name() != "Alpha" {
		t.Fatalf("unexpected order: %v", list)
	}
	_, err := registry.Lookup("Missing")
	if !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
	var typed *goerrors.Error
	if !errors.As(err, &typed) || typed.TextCode != "CLASS_NOT_FOUND" {
		t.Fatalf("expected CLASS_NOT_FOUND text code, got %v", err)
	}
}

func TestRegistryUnregisterReleasesNames(t *testing.T) {
	registry := NewRegistry()
	mustRegister(t, registry, RegisterClassInput{Name: "Grid", ShortName: "DataGrid", ClientBaseClass: "Ext.Panel"})
	mustRegister(t, registry, RegisterClassInput{Name: "Chart", ClientBaseClass: "Ext.Panel"})

	if !registry.Unregister(" Grid ") {
		t.Fatal("expected Grid to be removed")
	}
	if registry.Unregister("Grid") {
		t.Fatal("expected second removal to report false")
	}
	if _, ok := registry.Get("Grid"); ok {
		t.Fatal("expected Grid to be gone")
	}
	if list := registry.List(); len(list) != 1 || list[0].Name() != "Chart" {
		t.Fatalf("unexpected list %v", list)
	}

	// The short name is free again.
	mustRegister(t, registry, RegisterClassInput{Name: "Table", ShortName: "DataGrid", ClientBaseClass: "Ext.Panel"})
}
