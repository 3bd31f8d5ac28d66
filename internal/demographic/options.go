package demographic

// Option is a selectable answer for a profile field.
type Option struct {
	Value string
	Label string
}

// Options returns the selectable answers for f in display order.
func (f Field) Options() []Option {
	switch f {
	case FieldAgeRange:
		return ageRanges
	case FieldJobRole:
		return jobRoles
	case FieldYearsExperience:
		return yearsExperience
	case FieldWorkHours:
		return workHours
	case FieldGender:
		return genders
	case FieldFamilyStatus:
		return familyStatuses
	default:
		return nil
	}
}

var ageRanges = []Option{
	{"18-24", "18-24"},
	{"25-34", "25-34"},
	{"35-44", "35-44"},
	{"45-54", "45-54"},
	{"55-64", "55-64"},
	{"65+", "65+"},
}

var genders = []Option{
	{"female", "Female"},
	{"male", "Male"},
}

var jobRoles = []Option{
	{"healthcare", "Healthcare & Medical"},
	{"education", "Education & Training"},
	{"technology", "Technology & IT"},
	{"finance", "Finance & Banking"},
	{"management", "Management & Leadership"},
	{"sales-marketing", "Sales & Marketing"},
	{"customer-service", "Customer Service"},
	{"human-resources", "Human Resources"},
	{"legal", "Legal Services"},
	{"consulting", "Consulting"},
	{"retail", "Retail & Commerce"},
	{"manufacturing", "Manufacturing"},
	{"construction", "Construction & Engineering"},
	{"government", "Government & Public Service"},
	{"non-profit", "Non-profit & Social Services"},
	{"media", "Media & Communications"},
	{"hospitality", "Hospitality & Tourism"},
	{"research", "Research & Development"},
	{"other", "Other"},
}

var yearsExperience = []Option{
	{"less-than-1", "<1 year"},
	{"1-2", "1-2 years"},
	{"3-5", "3-5 years"},
	{"6-10", "6-10 years"},
	{"11-15", "11-15 years"},
	{"16-20", "16-20 years"},
	{"more-than-20", "20+ years"},
}

var workHours = []Option{
	{"part-time", "<30 hrs"},
	{"30-40", "30-40 hrs"},
	{"41-50", "41-50 hrs"},
	{"51-60", "51-60 hrs"},
	{"61-70", "61-70 hrs"},
	{"more-than-70", "70+ hrs"},
}

var familyStatuses = []Option{
	{"single", "Single"},
	{"married-no-children", "Married - No kids"},
	{"married-with-children", "Married - With kids"},
	{"single-parent", "Single parent"},
	{"other", "Other"},
}
