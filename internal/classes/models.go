package classes

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-widgetkit/internal/identity"
)

// ClassRecord is the persisted form of a class registration.
type ClassRecord struct {
	bun.BaseModel `bun:"table:widget_classes,alias:wc"`

	ID               uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	Name             string            `bun:"name,notnull,unique" json:"name"`
	ShortName        string            `bun:"short_name" json:"short_name,omitempty"`
	Superclass       *string           `bun:"superclass" json:"superclass,omitempty"`
	ClientBaseClass  *string           `bun:"client_base_class" json:"client_base_class,omitempty"`
	ExtendProperties map[string]any    `bun:"extend_properties,type:jsonb" json:"extend_properties,omitempty"`
	RawProperties    map[string]string `bun:"raw_properties,type:jsonb" json:"raw_properties,omitempty"`
	IncludedScripts  []string          `bun:"included_scripts,type:jsonb" json:"included_scripts,omitempty"`
	IncludedStyles   []string          `bun:"included_styles,type:jsonb" json:"included_styles,omitempty"`
	Menus            []Menu            `bun:"menus,type:jsonb" json:"menus,omitempty"`
	API              []string          `bun:"api,type:jsonb" json:"api,omitempty"`
	CreatedAt        time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// RecordFromInput converts a registration input into a storable record.
// Raw extend properties move to RawProperties so they survive JSON columns.
func RecordFromInput(input RegisterClassInput, now time.Time) *ClassRecord {
	name := canonicalName(input.Name)
	record := &ClassRecord{
		ID:              identity.ClassUUID(name),
		Name:            name,
		ShortName:       input.ShortName,
		Superclass:      optionalString(input.Superclass),
		ClientBaseClass: optionalString(input.ClientBaseClass),
		IncludedScripts: slices.Clone(input.IncludedScripts),
		IncludedStyles:  slices.Clone(input.IncludedStyles),
		Menus:           slices.Clone(input.Menus),
		API:             slices.Clone(input.API),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for key, value := range input.ExtendProperties {
		if raw, ok := value.(Raw); ok {
			if record.RawProperties == nil {
				record.RawProperties = map[string]string{}
			}
			record.RawProperties[key] = string(raw)
			continue
		}
		if record.ExtendProperties == nil {
			record.ExtendProperties = map[string]any{}
		}
		record.ExtendProperties[key] = value
	}
	return record
}

// Input converts the record back into a registration input.
func (r *ClassRecord) Input() RegisterClassInput {
	props := maps.Clone(r.ExtendProperties)
	if props == nil && len(r.RawProperties) > 0 {
		props = make(map[string]any, len(r.RawProperties))
	}
	for key, body := range r.RawProperties {
		props[key] = Raw(body)
	}
	return RegisterClassInput{
		Name:             r.Name,
		ShortName:        r.ShortName,
		Superclass:       derefString(r.Superclass),
		ClientBaseClass:  derefString(r.ClientBaseClass),
		ExtendProperties: props,
		IncludedScripts:  slices.Clone(r.IncludedScripts),
		IncludedStyles:   slices.Clone(r.IncludedStyles),
		Menus:            slices.Clone(r.Menus),
		API:              slices.Clone(r.API),
	}
}

func cloneRecord(src *ClassRecord) *ClassRecord {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Superclass = optionalString(derefString(src.Superclass))
	cloned.ClientBaseClass = optionalString(derefString(src.ClientBaseClass))
	cloned.ExtendProperties = maps.Clone(src.ExtendProperties)
	cloned.RawProperties = maps.Clone(src.RawProperties)
	cloned.IncludedScripts = slices.Clone(src.IncludedScripts)
	cloned.IncludedStyles = slices.Clone(src.IncludedStyles)
	cloned.Menus = slices.Clone(src.Menus)
	cloned.API = slices.Clone(src.API)
	return &cloned
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
