package catalog

// Category represents one of the three burnout dimensions.
type Category string

const (
	CategoryExhaustion    Category = "emotional-exhaustion"
	CategoryDisengagement Category = "disengagement"
	CategoryEfficacy      Category = "professional-efficacy"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryExhaustion,
		CategoryDisengagement,
		CategoryEfficacy,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryExhaustion, CategoryDisengagement, CategoryEfficacy:
		return true
	default:
		return false
	}
}

// DisplayName returns a human-readable name for a category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryExhaustion:
		return "Emotional Exhaustion"
	case CategoryDisengagement:
		return "Disengagement"
	case CategoryEfficacy:
		return "Professional Efficacy"
	default:
		return string(c)
	}
}

// Description returns what the category measures.
func (c Category) Description() string {
	switch c {
	case CategoryExhaustion:
		return "Measures feelings of being emotionally drained and depleted by work"
	case CategoryDisengagement:
		return "Measures cynical attitudes and distance from work tasks"
	case CategoryEfficacy:
		return "Measures feelings of competence and achievement in work"
	default:
		return ""
	}
}

// CodePrefix returns the export code prefix used by the category's questions.
func (c Category) CodePrefix() string {
	switch c {
	case CategoryExhaustion:
		return "EE"
	case CategoryDisengagement:
		return "DE"
	case CategoryEfficacy:
		return "PE"
	default:
		return ""
	}
}

// HigherIsBetter reports whether a higher mean indicates better well-being.
// Only professional efficacy is scored this way.
func (c Category) HigherIsBetter() bool {
	return c == CategoryEfficacy
}
