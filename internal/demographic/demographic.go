// Package demographic defines the optional respondent profile collected
// before the assessment. Nothing here feeds the scoring engine; the record
// only travels to the export adapter.
package demographic

// Field identifies one profile question. The numeric order is the order in
// which the questions are asked.
type Field int

const (
	FieldAgeRange Field = iota
	FieldJobRole
	FieldYearsExperience
	FieldWorkHours
	FieldGender
	FieldFamilyStatus
)

// Steps returns every field in asking order.
func Steps() []Field {
	return []Field{
		FieldAgeRange,
		FieldJobRole,
		FieldYearsExperience,
		FieldWorkHours,
		FieldGender,
		FieldFamilyStatus,
	}
}

// StepCount is the number of profile sub-steps.
const StepCount = 6

// LastStep is the index of the final sub-step (family status).
const LastStep = StepCount - 1

// FieldAt returns the field asked at sub-step i.
func FieldAt(i int) (Field, bool) {
	if i < 0 || i >= StepCount {
		return 0, false
	}
	return Field(i), true
}

// Key returns the field's record key.
func (f Field) Key() string {
	switch f {
	case FieldAgeRange:
		return "ageRange"
	case FieldJobRole:
		return "jobRole"
	case FieldYearsExperience:
		return "yearsExperience"
	case FieldWorkHours:
		return "workHours"
	case FieldGender:
		return "gender"
	case FieldFamilyStatus:
		return "familyStatus"
	default:
		return ""
	}
}

// Column returns the export column name for the field.
func (f Field) Column() string {
	switch f {
	case FieldAgeRange:
		return "ageRanges"
	case FieldJobRole:
		return "jobRoles"
	case FieldYearsExperience:
		return "yearsExperienceOptions"
	case FieldWorkHours:
		return "workHoursOptions"
	case FieldGender:
		return "genderOptions"
	case FieldFamilyStatus:
		return "familyStatusOptions"
	default:
		return ""
	}
}

// Title returns the question shown for the field.
func (f Field) Title() string {
	switch f {
	case FieldAgeRange:
		return "What's your age range?"
	case FieldJobRole:
		return "What industry do you work in?"
	case FieldYearsExperience:
		return "Years of professional experience?"
	case FieldWorkHours:
		return "Average hours worked per week?"
	case FieldGender:
		return "What's your gender?"
	case FieldFamilyStatus:
		return "What's your family status?"
	default:
		return ""
	}
}

// Subtitle returns the short rationale shown under the title.
func (f Field) Subtitle() string {
	switch f {
	case FieldAgeRange:
		return "This helps us understand generational workplace trends"
	case FieldJobRole:
		return "Different industries have unique burnout patterns"
	case FieldYearsExperience:
		return "Experience level affects burnout risk factors"
	case FieldWorkHours:
		return "Work-life balance is crucial for burnout prevention"
	case FieldGender:
		return "Helps us understand workplace dynamics"
	case FieldFamilyStatus:
		return "Family responsibilities can impact work stress"
	default:
		return ""
	}
}

// Valid reports whether value is one of the field's option codes.
func (f Field) Valid(value string) bool {
	for _, o := range f.Options() {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Label returns the display label for one of the field's option codes.
func (f Field) Label(value string) string {
	for _, o := range f.Options() {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Record is the fixed-shape respondent profile. An empty string means the
// respondent did not answer.
type Record struct {
	AgeRange        string `json:"ageRange,omitempty" yaml:"ageRange,omitempty"`
	Gender          string `json:"gender,omitempty" yaml:"gender,omitempty"`
	JobRole         string `json:"jobRole,omitempty" yaml:"jobRole,omitempty"`
	YearsExperience string `json:"yearsExperience,omitempty" yaml:"yearsExperience,omitempty"`
	WorkHours       string `json:"workHours,omitempty" yaml:"workHours,omitempty"`
	FamilyStatus    string `json:"familyStatus,omitempty" yaml:"familyStatus,omitempty"`
}

// Get returns the value recorded for f.
func (r Record) Get(f Field) string {
	switch f {
	case FieldAgeRange:
		return r.AgeRange
	case FieldJobRole:
		return r.JobRole
	case FieldYearsExperience:
		return r.YearsExperience
	case FieldWorkHours:
		return r.WorkHours
	case FieldGender:
		return r.Gender
	case FieldFamilyStatus:
		return r.FamilyStatus
	default:
		return ""
	}
}

// Set records value for f.
func (r *Record) Set(f Field, value string) {
	switch f {
	case FieldAgeRange:
		r.AgeRange = value
	case FieldJobRole:
		r.JobRole = value
	case FieldYearsExperience:
		r.YearsExperience = value
	case FieldWorkHours:
		r.WorkHours = value
	case FieldGender:
		r.Gender = value
	case FieldFamilyStatus:
		r.FamilyStatus = value
	}
}

// Provided returns how many fields hold a value.
func (r Record) Provided() int {
	n := 0
	for _, f := range Steps() {
		if r.Get(f) != "" {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no field was answered.
func (r Record) IsEmpty() bool {
	return r.Provided() == 0
}
