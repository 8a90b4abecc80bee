package classes

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-widgetkit/pkg/testsupport"
)

const gridManifest = `
classes:
  - name: Grid
    client_base_class: Ext.grid.EditorGridPanel
    scripts: [grid/grid.js]
    styles: [grid/grid.css]
    api: [get_data, post_data]
    extend_properties:
      pageSize: 25
    raw_properties:
      onRender: "function(ct){ Ext.widgetkit.cache.Grid.superclass.onRender.call(this, ct); }"
    menus:
      - name: rows
        text: Rows
        items: [add, remove]
`

const extendedManifest = `
classes:
  - name: ExtendedGrid
    superclass: Grid
`

func TestParseManifestBuildsInputs(t *testing.T) {
	t.Parallel()

	manifest, err := ParseManifest("grid.yaml", []byte(gridManifest))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	inputs := manifest.Inputs()
	if len(inputs) != 1 {
		t.Fatalf("expected one class, got %d", len(inputs))
	}
	grid := inputs[0]
	if grid.ClientBaseClass != "Ext.grid.EditorGridPanel" {
		t.Fatalf("unexpected base class %q", grid.ClientBaseClass)
	}
	if _, ok := grid.ExtendProperties["onRender"].(Raw); !ok {
		t.Fatalf("expected raw onRender, got %#v", grid.ExtendProperties["onRender"])
	}
	if grid.ExtendProperties["pageSize"] != 25 {
		t.Fatalf("expected pageSize 25, got %#v", grid.ExtendProperties["pageSize"])
	}
	if len(grid.Menus) != 1 || grid.Menus[0].Name != "rows" || len(grid.Menus[0].Items) != 2 {
		t.Fatalf("unexpected menus %#v", grid.Menus)
	}
}

func TestParseManifestRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	_, err := ParseManifest("bad.yaml", []byte("classes:\n  - name: Grid\n    colour: red\n"))
	if !errors.Is(err, ErrManifestInvalid) {
		t.Fatalf("expected ErrManifestInvalid, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestParseManifestRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	if _, err := ParseManifest("broken.yaml", []byte("classes: [")); !errors.Is(err, ErrManifestInvalid) {
		t.Fatalf("expected ErrManifestInvalid, got %v", err)
	}
}

func TestLoadManifestsReadsInLexicalOrder(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"manifests/20_extended.yaml": {Data: []byte(extendedManifest)},
		"manifests/10_grid.yaml":     {Data: []byte(gridManifest)},
		"manifests/readme.txt":       {Data: []byte("ignored")},
	}

	inputs, err := LoadManifests(fsys, "manifests/*.yaml")
	if err != nil {
		t.Fatalf("LoadManifests: %v", err)
	}
	if len(inputs) != 2 || inputs[0].Name != "Grid" || inputs[1].Name != "ExtendedGrid" {
		t.Fatalf("unexpected inputs %#v", inputs)
	}
}

func TestManifestFixtureRegistersHierarchy(t *testing.T) {
	data, err := testsupport.LoadFixture("testdata/widgets.yaml")
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	manifest, err := ParseManifest("testdata/widgets.yaml", data)
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}

	registry := NewRegistry()
	for _, input := range manifest.Inputs() {
		if _, err := registry.Register(input); err != nil {
			t.Fatalf("register %s: %v", input.Name, err)
		}
	}

	orders, err := registry.Lookup("order_grid")
	if err != nil {
		t.Fatalf("lookup order_grid: %v", err)
	}
	if orders.ShortName() != "OrdersGrid" {
		t.Fatalf("expected explicit short name, got %q", orders.ShortName())
	}
	ancestors, err := registry.Ancestors(orders)
	if err != nil {
		t.Fatalf("ancestors: %v", err)
	}
	if len(ancestors) != 2 || ancestors[0].Name() != "grid_panel" || ancestors[1].Name() != "panel" {
		t.Fatalf("unexpected ancestors %v", ancestors)
	}
	points, err := registry.APIPoints(orders)
	if err != nil {
		t.Fatalf("api points: %v", err)
	}
	if got := strings.Join(points, ","); got != "panel.refresh,grid.load,orders.approve" {
		t.Fatalf("unexpected api points %s", got)
	}
	menus := orders.Menus()
	if len(menus) != 1 || len(menus[0].Items) != 2 {
		t.Fatalf("unexpected menus %#v", menus)
	}
}
