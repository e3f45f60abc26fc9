package valuation

import (
	"sort"
	"strings"
)

// OtherCategory receives every asset type the taxonomy does not know.
const OtherCategory = "Other"

// TypeInfo describes one asset type of the taxonomy.
type TypeInfo struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	DisplayLabel string `json:"display_label"`
}

// Taxonomy maps lower-cased asset type keys to their category and label.
// The zero Taxonomy is empty and resolves everything to OtherCategory.
type Taxonomy struct {
	types map[string]TypeInfo
}

func typeKey(assetType string) string {
	return strings.ToLower(strings.TrimSpace(assetType))
}

// NewTaxonomy indexes defs by lower-cased name. Later duplicates win.
func NewTaxonomy(defs []TypeInfo) Taxonomy {
	types := make(map[string]TypeInfo, len(defs))
	for _, d := range defs {
		key := typeKey(d.Name)
		if key == "" {
			continue
		}
		if strings.TrimSpace(d.Category) == "" {
			d.Category = OtherCategory
		}
		if d.DisplayLabel == "" {
			d.DisplayLabel = d.Name
		}
		d.Name = key
		types[key] = d
	}
	return Taxonomy{types: types}
}

// Len returns the number of known types.
func (t Taxonomy) Len() int { return len(t.types) }

// Resolve returns the entry for assetType. Unknown types resolve to
// OtherCategory and keep their raw key as the label.
func (t Taxonomy) Resolve(assetType string) TypeInfo {
	key := typeKey(assetType)
	if info, ok := t.types[key]; ok {
		return info
	}
	label := strings.TrimSpace(assetType)
	if key == "" {
		key, label = "unknown", "unknown"
	}
	return TypeInfo{Name: key, Category: OtherCategory, DisplayLabel: label}
}

// Defs returns the entries sorted by name.
func (t Taxonomy) Defs() []TypeInfo {
	out := make([]TypeInfo, 0, len(t.types))
	for _, info := range t.types {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
