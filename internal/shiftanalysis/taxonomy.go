package shiftanalysis

import "strings"

// Brand selects the role taxonomy used for a report. It is detected once per
// report from the brand and location labels.
type Brand int

const (
	// BrandDefault uses the managers/drivers/crew taxonomy.
	BrandDefault Brand = iota
	// BrandTaco uses the managers/crew taxonomy with "!" prefixed lead roles.
	BrandTaco
	// BrandDoughnut tracks each shop position separately.
	BrandDoughnut
)

// String returns the brand label.
func (b Brand) String() string {
	switch b {
	case BrandTaco:
		return "Taco"
	case BrandDoughnut:
		return "Doughnut"
	default:
		return "Default"
	}
}

// DetectBrand resolves the taxonomy from the brand label and the location
// name. Doughnut shops are recognised by the "ODT" location prefix and Taco
// restaurants by "taco" anywhere in the location.
func DetectBrand(brand, location string) Brand {
	if brand == "Taco" || strings.Contains(strings.ToLower(location), "taco") {
		return BrandTaco
	}
	if brand == "Doughnut" || strings.HasPrefix(strings.ToUpper(location), "ODT") {
		return BrandDoughnut
	}
	return BrandDefault
}

// Category is the bucket an employee is counted in.
type Category string

const (
	CategoryManagers Category = "managers"
	CategoryDrivers  Category = "drivers"
	CategoryCrew     Category = "crew"
	CategoryGM       Category = "gm"
	CategoryBarista  Category = "barista"
	CategoryFOH      Category = "foh"
	CategoryDen      Category = "den"
	CategoryKitchen  Category = "kitchen"
)

var (
	defaultCategories  = []Category{CategoryManagers, CategoryDrivers, CategoryCrew}
	tacoCategories     = []Category{CategoryManagers, CategoryCrew}
	doughnutCategories = []Category{CategoryGM, CategoryBarista, CategoryFOH, CategoryDen, CategoryKitchen}
)

// Categories returns the closed set of categories in display order.
func (b Brand) Categories() []Category {
	var source []Category
	switch b {
	case BrandTaco:
		source = tacoCategories
	case BrandDoughnut:
		source = doughnutCategories
	default:
		source = defaultCategories
	}
	out := make([]Category, len(source))
	copy(out, source)
	return out
}

// FallbackCategory is used for role text the taxonomy does not recognise.
func (b Brand) FallbackCategory() Category {
	if b == BrandDoughnut {
		return CategoryFOH
	}
	return CategoryCrew
}

// CategoryLabel returns the column label renderers use for a category.
func (b Brand) CategoryLabel(c Category) string {
	switch b {
	case BrandTaco:
		switch c {
		case CategoryManagers:
			return "!Bar/!Cook"
		case CategoryCrew:
			return "Bar/Cook"
		}
	case BrandDoughnut:
		switch c {
		case CategoryGM:
			return "GM"
		case CategoryBarista:
			return "Barista"
		case CategoryFOH:
			return "FOH"
		case CategoryDen:
			return "Den"
		case CategoryKitchen:
			return "Kitchen"
		}
	default:
		switch c {
		case CategoryManagers:
			return "Mgrs"
		case CategoryDrivers:
			return "Drvrs"
		case CategoryCrew:
			return "Crew"
		}
	}
	return string(c)
}

// PayType describes how an employee is paid.
type PayType string

const (
	PayHourly PayType = "hourly"
	PayWeekly PayType = "weekly"
	PaySalary PayType = "salary"
)

// Flat reports whether the pay rate is a flat weekly amount.
func (p PayType) Flat() bool {
	switch PayType(strings.ToLower(strings.TrimSpace(string(p)))) {
	case PayWeekly, PaySalary:
		return true
	}
	return false
}

// Classification is the result of mapping free-text role to a category.
type Classification struct {
	Category Category
	// ManagerTier marks hourly lead roles such as "Assistant Manager" or "!Cook".
	ManagerTier bool
	GM          bool
	Salaried    bool
	// Recognized is false when the role fell back to the brand's default.
	Recognized bool
}

// Classify maps role text to a category for the brand. Matching is case
// insensitive. GMs are always treated as salaried; everyone else is salaried
// when paid a flat weekly amount.
func Classify(role string, payType PayType, brand Brand) Classification {
	text := strings.ToLower(strings.TrimSpace(role))

	var c Classification
	switch brand {
	case BrandTaco:
		c = classifyTaco(text)
	case BrandDoughnut:
		c = classifyDoughnut(text)
	default:
		c = classifyDefault(text)
	}

	if !c.Recognized {
		c.Category = brand.FallbackCategory()
	}
	c.Salaried = c.GM || payType.Flat()
	return c
}

func classifyDefault(role string) Classification {
	switch {
	case isGeneralManager(role):
		return Classification{Category: CategoryManagers, GM: true, Recognized: true}
	case containsAny(role, "manager", "mgr", "assistant"):
		return Classification{Category: CategoryManagers, ManagerTier: true, Recognized: true}
	case containsAny(role, "driver", "delivery"):
		return Classification{Category: CategoryDrivers, Recognized: true}
	case role == "crew":
		return Classification{Category: CategoryCrew, Recognized: true}
	}
	return Classification{}
}

func classifyTaco(role string) Classification {
	switch {
	case isGeneralManager(role):
		return Classification{Category: CategoryManagers, GM: true, Recognized: true}
	case role == "!bartender", role == "!cook":
		return Classification{Category: CategoryManagers, ManagerTier: true, Recognized: true}
	case role == "bartender", role == "cook", role == "crew":
		return Classification{Category: CategoryCrew, Recognized: true}
	}
	return Classification{}
}

func classifyDoughnut(role string) Classification {
	switch {
	case strings.Contains(role, "gm"):
		return Classification{Category: CategoryGM, GM: true, Recognized: true}
	case role == "barista":
		return Classification{Category: CategoryBarista, Recognized: true}
	case role == "foh", strings.Contains(role, "front of house"):
		return Classification{Category: CategoryFOH, Recognized: true}
	case role == "den":
		return Classification{Category: CategoryDen, Recognized: true}
	case role == "kitchen":
		return Classification{Category: CategoryKitchen, Recognized: true}
	}
	return Classification{}
}

func isGeneralManager(role string) bool {
	return containsAny(role, "general manager", "gm")
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
