package graph

import "strings"

// Category is one of the known hazard categories, resolved once at ingestion.
// Unrecognized type names map to CategoryUnknown instead of failing.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryGeophysical
	CategoryClimatological
	CategoryEcological
	CategoryTechnological
	CategoryInfrastructural
	CategorySocietal
	CategoryEconomic
	CategoryGovernance
)

var categoryNames = map[Category]string{
	CategoryUnknown:         "Unknown",
	CategoryGeophysical:     "Geophysical",
	CategoryClimatological:  "Climatological",
	CategoryEcological:      "Ecological",
	CategoryTechnological:   "Technological",
	CategoryInfrastructural: "Infrastructural",
	CategorySocietal:        "Societal",
	CategoryEconomic:        "Economic",
	CategoryGovernance:      "Governance",
}

// curatedOrder fixes the circular layout order of categories. The order keeps
// heavily cross-connected category pairs adjacent so their edge corridors stay
// short.
var curatedOrder = []Category{
	CategoryGeophysical,
	CategoryClimatological,
	CategoryEcological,
	CategoryTechnological,
	CategoryInfrastructural,
	CategorySocietal,
	CategoryEconomic,
	CategoryGovernance,
	CategoryUnknown,
}

// ResolveCategory maps a raw type name to a Category. Matching is
// case-insensitive and exact; anything else is CategoryUnknown.
func ResolveCategory(name string) Category {
	needle := strings.ToLower(strings.TrimSpace(name))
	for cat, label := range categoryNames {
		if strings.ToLower(label) == needle {
			return cat
		}
	}
	return CategoryUnknown
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// CuratedOrder returns the fixed category layout order
func CuratedOrder() []Category {
	out := make([]Category, len(curatedOrder))
	copy(out, curatedOrder)
	return out
}

// curatedIndex returns a category's position in the curated order
func curatedIndex(c Category) int {
	for i, cat := range curatedOrder {
		if cat == c {
			return i
		}
	}
	return len(curatedOrder)
}
