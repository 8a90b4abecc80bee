package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-widgetkit"
	"github.com/goliatone/go-widgetkit/internal/di"
)

//go:embed assets
var embedded embed.FS

func main() {
	ctx := context.Background()

	assets, err := fs.Sub(embedded, "assets")
	if err != nil {
		log.Fatalf("assets: %v", err)
	}

	cfg := widgetkit.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "debug"
	cfg.Features.Manifests = true
	cfg.Manifests.Enabled = true
	cfg.Manifests.Pattern = "manifests/*.yaml"
	cfg.Classes = []widgetkit.ClassConfig{
		{
			Name:            "layout",
			ClientBaseClass: "Ext.Panel",
			ExtendProperties: map[string]any{
				"layout": "border",
			},
		},
		{
			Name:            "grid",
			ClientBaseClass: "Ext.grid.GridPanel",
			IncludedScripts: []string{"js/grid.js"},
			IncludedStyles:  []string{"css/grid.css"},
			ExtendProperties: map[string]any{
				"cls":      "wk-grid",
				"pageSize": 50,
			},
			API: []string{"grid.load", "grid.save"},
		},
	}

	module, err := widgetkit.New(cfg, di.WithAssetFS(assets))
	if err != nil {
		log.Fatalf("init widgetkit: %v", err)
	}

	root, err := buildTree(module)
	if err != nil {
		log.Fatalf("build tree: %v", err)
	}

	known := widgetkit.Known(knownFromArgs()...)

	payload, err := module.Deliver(ctx, root, known)
	if err != nil {
		log.Fatalf("deliver: %v", err)
	}
	printPayload("initial", payload)

	late, err := module.LoadLate(ctx, root, "dashboard__report", widgetkit.Known(append(known.Names(), payload.Classes...)...))
	if err != nil {
		log.Fatalf("load late: %v", err)
	}
	printPayload("late", late)
}

func buildTree(module *widgetkit.Module) (*widgetkit.Instance, error) {
	root, err := module.NewInstance("dashboard", "layout",
		widgetkit.WithOverride(map[string]any{"title": "Dashboard"}),
	)
	if err != nil {
		return nil, err
	}
	if _, err := module.Aggregate(root, "orders", "grid",
		widgetkit.WithActions(map[string]any{"refresh": "Refresh"}),
		widgetkit.WithBeforeSerialize(func(inst *widgetkit.Instance) error {
			inst.SetOverride("region", "center")
			return nil
		}),
	); err != nil {
		return nil, err
	}
	if _, err := module.Aggregate(root, "report", "report_grid", widgetkit.Late()); err != nil {
		return nil, err
	}
	return root, nil
}

// knownFromArgs reads a comma separated list of class short names the
// client is assumed to hold already.
func knownFromArgs() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return strings.Split(os.Args[1], ",")
}

func printPayload(label string, payload *widgetkit.Payload) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Fatalf("encode %s payload: %v", label, err)
	}
	fmt.Printf("== %s\n%s\n", label, data)
}
