package scoring

import "github.com/abhisek/pbi/internal/catalog"

// Band is a coarse reading of one category mean for display.
type Band struct {
	Label    string
	StyleTag string
}

// Interpret labels a category mean. Efficacy reads High/Moderate/Low;
// exhaustion and disengagement read as risk, where higher is worse.
func Interpret(cat catalog.Category, score float64) Band {
	if cat.HigherIsBetter() {
		switch {
		case score >= 4:
			return Band{Label: "High", StyleTag: "success"}
		case score >= 3:
			return Band{Label: "Moderate", StyleTag: "warning"}
		default:
			return Band{Label: "Low", StyleTag: "error"}
		}
	}

	switch {
	case score >= 4:
		return Band{Label: "High Risk", StyleTag: "error"}
	case score >= 3:
		return Band{Label: "Moderate Risk", StyleTag: "warning"}
	default:
		return Band{Label: "Low Risk", StyleTag: "success"}
	}
}
