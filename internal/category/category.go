package category

import "github.com/samber/lo"

// Category is a message category with its display styling.
type Category struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	// Color holds the css classes used to render the category badge.
	Color string `json:"color"`
}

// DefaultColor is used for categories that are not part of the set.
const DefaultColor = "bg-gray-100 text-gray-800 border-gray-300"

var categories = []Category{
	{Name: "love", Label: "Love", Color: "bg-pink-100 text-pink-800 border-pink-300"},
	{Name: "friendship", Label: "Friendship", Color: "bg-yellow-100 text-yellow-800 border-yellow-300"},
	{Name: "family", Label: "Family", Color: "bg-orange-100 text-orange-800 border-orange-300"},
	{Name: "support", Label: "Support", Color: "bg-blue-100 text-blue-800 border-blue-300"},
	{Name: "gratitude", Label: "Gratitude", Color: "bg-green-100 text-green-800 border-green-300"},
	{Name: "apology", Label: "Apology", Color: "bg-purple-100 text-purple-800 border-purple-300"},
	{Name: "confession", Label: "Confession", Color: "bg-red-100 text-red-800 border-red-300"},
	{Name: "memories", Label: "Memories", Color: "bg-indigo-100 text-indigo-800 border-indigo-300"},
}

var byName = lo.KeyBy(categories, func(c Category) string { return c.Name })

// All returns the categories in display order.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Names returns the category names in display order.
func Names() []string {
	return lo.Map(categories, func(c Category, _ int) string { return c.Name })
}

// Lookup returns the category with the given name.
func Lookup(name string) (Category, bool) {
	c, ok := byName[name]
	return c, ok
}

// IsValid reports whether name is a known category.
func IsValid(name string) bool {
	_, ok := byName[name]
	return ok
}

// ColorOf returns the display color for name, falling back to DefaultColor.
func ColorOf(name string) string {
	if c, ok := byName[name]; ok {
		return c.Color
	}
	return DefaultColor
}
