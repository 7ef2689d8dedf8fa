package core

import "strings"

const (
	CategoryGrocery       Category = "grocery"
	CategoryDining        Category = "dining"
	CategoryShopping      Category = "shopping"
	CategoryFuel          Category = "fuel"
	CategoryEntertainment Category = "entertainment"
	CategoryTravel        Category = "travel"
	CategoryHealthcare    Category = "healthcare"
	CategoryUtilities     Category = "utilities"
	CategoryEducation     Category = "education"
	CategoryInsurance     Category = "insurance"
	CategoryInvestment    Category = "investment"
	CategoryOther         Category = "other"
)

// Category is a closed spending-category enumeration. Raw strings from
// the store parse through ParseCategory, which folds anything unknown
// into CategoryOther.
type Category string

// categoryColors maps each category to its dashboard display color.
var categoryColors = map[Category]string{
	CategoryGrocery:       "#22c55e",
	CategoryDining:        "#f97316",
	CategoryShopping:      "#ec4899",
	CategoryFuel:          "#eab308",
	CategoryEntertainment: "#8b5cf6",
	CategoryTravel:        "#06b6d4",
	CategoryHealthcare:    "#ef4444",
	CategoryUtilities:     "#64748b",
	CategoryEducation:     "#3b82f6",
	CategoryInsurance:     "#10b981",
	CategoryInvestment:    "#f59e0b",
	CategoryOther:         "#6b7280",
}

// FallbackColor is used for any category missing from the catalog.
const FallbackColor = "#6b7280"

// Categories returns all known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryGrocery, CategoryDining, CategoryShopping, CategoryFuel,
		CategoryEntertainment, CategoryTravel, CategoryHealthcare,
		CategoryUtilities, CategoryEducation, CategoryInsurance,
		CategoryInvestment, CategoryOther,
	}
}

// ParseCategory folds a raw string into the closed category set,
// returning CategoryOther for unknown values.
func ParseCategory(s string) Category {
	c := Category(strings.TrimSpace(strings.ToLower(s)))
	if _, ok := categoryColors[c]; ok {
		return c
	}
	return CategoryOther
}

func (c Category) Valid() bool {
	_, ok := categoryColors[c]
	return ok
}

// Color returns the display color for the category, with a fallback
// for values outside the catalog.
func (c Category) Color() string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return FallbackColor
}

func (c Category) String() string {
	return string(c)
}
