package widgetkit_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-widgetkit"
	"github.com/goliatone/go-widgetkit/internal/di"
)

func newModule(t *testing.T, mutate func(*widgetkit.Config)) *widgetkit.Module {
	t.Helper()

	cfg := widgetkit.DefaultConfig()
	cfg.Classes = []widgetkit.ClassConfig{
		{Name: "layout", ClientBaseClass: "Ext.Panel"},
		{
			Name:            "grid",
			ClientBaseClass: "Ext.grid.GridPanel",
			IncludedScripts: []string{"js/grid.js"},
			API:             []string{"grid.load"},
		},
		{Name: "report_grid", Superclass: "grid", IncludedStyles: []string{"css/report.css"}},
	}
	if mutate != nil {
		mutate(&cfg)
	}

	assets := fstest.MapFS{
		"js/grid.js":     {Data: []byte("// grid helpers\n")},
		"css/report.css": {Data: []byte(".report{}\n")},
	}
	module, err := widgetkit.New(cfg, di.WithAssetFS(assets))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module
}

func TestModuleDeliversRootWithEagerChildren(t *testing.T) {
	module := newModule(t, nil)

	root, err := module.NewInstance("app", "layout")
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}
	if _, err := module.Aggregate(root, "rows", "grid"); err != nil {
		t.Fatalf("aggregate rows: %v", err)
	}

	payload, err := module.Deliver(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}

	wantInstantiation := `var app = new Ext.widgetkit.cache.Layout({api: [], id: "app", rows_config: {api: ["grid.load"], id: "app__rows", widgetClassName: "Grid"}, widgetClassName: "Layout"});`
	if payload.Instantiation != wantInstantiation {
		t.Fatalf("unexpected instantiation\nwant: %s\ngot:  %s", wantInstantiation, payload.Instantiation)
	}
	if payload.Render != `app.render("app");` {
		t.Fatalf("unexpected render call %q", payload.Render)
	}
	if payload.Container != `<div id="app"></div>` {
		t.Fatalf("unexpected container %q", payload.Container)
	}
	if payload.Script == nil {
		t.Fatalf("expected script")
	}
	script := *payload.Script
	grid := strings.Index(script, "Ext.widgetkit.cache.Grid = function(config)")
	layout := strings.Index(script, "Ext.widgetkit.cache.Layout = function(config)")
	if grid < 0 || layout < 0 || grid > layout {
		t.Fatalf("expected grid before layout in script:\n%s", script)
	}
	if payload.Styles != nil {
		t.Fatalf("expected no styles, got %q", *payload.Styles)
	}
}

func TestModuleSkipsKnownClasses(t *testing.T) {
	module := newModule(t, nil)

	root, err := module.NewInstance("report", "report_grid")
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}

	payload, err := module.Deliver(context.Background(), root, widgetkit.Known("Grid"))
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	script := *payload.Script
	if strings.Contains(script, "// grid helpers") {
		t.Fatalf("expected known grid ancestor to be skipped:\n%s", script)
	}
	if !strings.Contains(script, "Ext.extend(Ext.widgetkit.cache.ReportGrid, Ext.widgetkit.cache.Grid,") {
		t.Fatalf("expected report grid to extend grid:\n%s", script)
	}

	payload, err = module.Deliver(context.Background(), root, widgetkit.Known("ReportGrid"))
	if err != nil {
		t.Fatalf("deliver known: %v", err)
	}
	if payload.Script != nil || payload.Styles != nil {
		t.Fatalf("expected no code for a known class, got %#v", payload)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if strings.Contains(string(data), `"script"`) {
		t.Fatalf("expected script to be omitted: %s", data)
	}
}

func TestModuleLoadsLateAggregatee(t *testing.T) {
	module := newModule(t, nil)

	root, err := module.NewInstance("app", "layout")
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}
	if _, err := module.Aggregate(root, "report", "report_grid", widgetkit.Late()); err != nil {
		t.Fatalf("aggregate late: %v", err)
	}

	initial, err := module.Deliver(context.Background(), root, nil)
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if strings.Contains(*initial.Script, "ReportGrid") {
		t.Fatalf("expected late aggregatee to be excluded from the initial payload")
	}

	late, err := module.LoadLate(context.Background(), root, "app__report", widgetkit.Known("Layout"))
	if err != nil {
		t.Fatalf("load late: %v", err)
	}
	if late.Styles == nil || *late.Styles != ".report{}\n" {
		t.Fatalf("unexpected late styles %v", late.Styles)
	}
	if late.Render != `appReport.render("report");` {
		t.Fatalf("unexpected late render %q", late.Render)
	}

	_, err = module.LoadLate(context.Background(), root, "app__missing", nil)
	if !errors.Is(err, widgetkit.ErrInstanceNotFound) {
		t.Fatalf("expected ErrInstanceNotFound, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
}

func TestModuleReportsBrokenHierarchy(t *testing.T) {
	module := newModule(t, func(cfg *widgetkit.Config) {
		cfg.Classes = append(cfg.Classes, widgetkit.ClassConfig{Name: "orphan", Superclass: "missing"})
	})

	root, err := module.NewInstance("orphan", "orphan")
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}
	_, err = module.Deliver(context.Background(), root, nil)
	if !widgetkit.IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !errors.Is(err, widgetkit.ErrSuperclassNotRegistered) {
		t.Fatalf("expected ErrSuperclassNotRegistered, got %v", err)
	}
}

func TestModuleDisabled(t *testing.T) {
	module := newModule(t, func(cfg *widgetkit.Config) {
		cfg.Enabled = false
	})

	root, err := module.NewInstance("app", "layout")
	if err != nil {
		t.Fatalf("new instance: %v", err)
	}
	if _, err := module.Deliver(context.Background(), root, nil); !errors.Is(err, widgetkit.ErrModuleDisabled) {
		t.Fatalf("expected ErrModuleDisabled, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := widgetkit.DefaultConfig()
	cfg.Client.Namespace = "not a namespace"

	if _, err := widgetkit.New(cfg); !errors.Is(err, widgetkit.ErrNamespaceInvalid) {
		t.Fatalf("expected ErrNamespaceInvalid, got %v", err)
	}
}

func TestModuleRegisterClass(t *testing.T) {
	module := newModule(t, nil)

	class, err := module.RegisterClass(widgetkit.RegisterClassInput{
		Name:             "chart",
		ClientBaseClass:  "Ext.Panel",
		ExtendProperties: map[string]any{"draw": widgetkit.Raw("function() {}")},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if class.ShortName() != "Chart" {
		t.Fatalf("unexpected short name %q", class.ShortName())
	}
	if _, err := module.RegisterClass(widgetkit.RegisterClassInput{Name: "chart", ClientBaseClass: "Ext.Panel"}); !errors.Is(err, widgetkit.ErrClassExists) {
		t.Fatalf("expected ErrClassExists, got %v", err)
	}
	if _, err := module.NewInstance("x", "unknown"); !errors.Is(err, widgetkit.ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}
