// Package assets defines the static asset tables for the GenerativeMIDI skin:
// the priority extraction table, the UI element catalog and the categories
// both are organised by.
package assets

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Category groups UI art by the kind of control it decorates.
type Category string

const (
	CategoryKnobs      Category = "knobs"
	CategoryFrames     Category = "frames"
	CategoryButtons    Category = "buttons"
	CategorySliders    Category = "sliders"
	CategoryDecorative Category = "decorative"
	CategoryPanels     Category = "panels"
	CategoryIndicators Category = "indicators"
)

// Categories returns every known category in catalog order.
func Categories() []Category {
	return []Category{
		CategoryKnobs,
		CategorySliders,
		CategoryButtons,
		CategoryPanels,
		CategoryDecorative,
		CategoryFrames,
		CategoryIndicators,
	}
}

// String returns the category's directory name.
func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts a user-supplied name into a Category.
// Unknown names produce an error suggesting the closest known category.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	if c.Valid() {
		return c, nil
	}
	if suggestion := closestCategory(string(c)); suggestion != "" {
		return "", fmt.Errorf("unknown category %q (did you mean %q?)", name, suggestion)
	}
	return "", fmt.Errorf("unknown category %q (valid: %s)", name, categoryList())
}

// closestCategory returns the known category nearest to name by edit
// distance, or "" when nothing is within half the name's length.
func closestCategory(name string) Category {
	var best Category
	bestDist := -1
	for _, c := range Categories() {
		d := levenshtein.ComputeDistance(name, string(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(name)/2) {
		return ""
	}
	return best
}

func categoryList() string {
	names := make([]string, 0, len(Categories()))
	for _, c := range Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
