package composer

import (
	"maps"

	"github.com/goliatone/go-widgetkit/internal/widgets"
)

// Keys of the computed instance config.
const (
	KeyID              = "id"
	KeyAPI             = "api"
	KeyWidgetClassName = "widgetClassName"
	KeyActions         = "actions"
	KeyMenu            = "menu"
	AggregateeSuffix   = "_config"
)

// InstanceConfig builds the nested configuration the client uses to
// construct inst and its eager subtree in one pass. Each eager aggregatee's
// before-serialize hook runs before its config is computed. Override values
// are applied last and win over computed keys.
func (c *Composer) InstanceConfig(inst *widgets.Instance) (map[string]any, error) {
	cfg := map[string]any{KeyID: inst.ID()}

	for _, agg := range inst.Eager() {
		if err := agg.Instance.BeforeSerialize(); err != nil {
			return nil, err
		}
		child, err := c.InstanceConfig(agg.Instance)
		if err != nil {
			return nil, err
		}
		cfg[agg.Name+AggregateeSuffix] = child
	}

	points, err := c.registry.APIPoints(inst.Class())
	if err != nil {
		return nil, err
	}
	cfg[KeyAPI] = points
	cfg[KeyWidgetClassName] = inst.Class().ShortName()

	if actions := inst.Actions(); actions != nil {
		cfg[KeyActions] = actions
	}
	if menu := inst.Menu(); menu != nil {
		cfg[KeyMenu] = menu
	}

	maps.Copy(cfg, inst.Override())
	return cfg, nil
}
