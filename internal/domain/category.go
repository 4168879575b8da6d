package domain

import "strings"

// Category is the closed set of service categories shared by the API and storage.
type Category string

const (
	CategoryElectrician Category = "Electrician"
	CategoryPlumber     Category = "Plumber"
	CategoryTutor       Category = "Tutor"
	CategoryCarpenter   Category = "Carpenter"
	CategoryMechanic    Category = "Mechanic"
)

var categories = []Category{
	CategoryElectrician,
	CategoryPlumber,
	CategoryTutor,
	CategoryCarpenter,
	CategoryMechanic,
}

func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches s against the known categories ignoring case.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, known := range categories {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}
