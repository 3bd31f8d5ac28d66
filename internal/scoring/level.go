package scoring

// LevelID orders the burnout tiers from least to most severe.
type LevelID int

const (
	LevelNone LevelID = iota
	LevelModerate
	LevelBurnout
	LevelExtreme
)

// Classification thresholds. Comparisons are strict except the No Burnout
// efficacy floor, which is inclusive.
const (
	NoBurnoutExhaustionMax    = 2.5
	NoBurnoutDisengagementMax = 2.5
	NoBurnoutEfficacyMin      = 3.5

	ExtremeExhaustionMin    = 4.0
	ExtremeDisengagementMin = 4.0
	ExtremeEfficacyMax      = 2.0

	BurnoutExhaustionMin    = 3.5
	BurnoutDisengagementMin = 3.5
	BurnoutEfficacyMax      = 2.5
)

// Level is a burnout tier with its display text. StyleTag is presentation
// metadata for renderers and carries no meaning for classification.
type Level struct {
	ID             LevelID `json:"-"`
	Name           string  `json:"level"`
	Description    string  `json:"description"`
	Recommendation string  `json:"recommendation"`
	StyleTag       string  `json:"-"`
}

var (
	NoBurnout = Level{
		ID:             LevelNone,
		Name:           "No Burnout",
		Description:    "You are showing no signs of burnout. Your emotional energy is strong, you feel engaged with your work, and you maintain a high sense of professional accomplishment.",
		Recommendation: "Continue maintaining your current work-life balance and self-care practices.",
		StyleTag:       "success",
	}
	ModerateBurnout = Level{
		ID:             LevelModerate,
		Name:           "Moderate Burnout",
		Description:    "You are experiencing some burnout symptoms. While not at a critical level, this indicates areas that need attention to prevent progression.",
		Recommendation: "Consider adjusting your work schedule, improving work-life balance, and implementing stress management techniques.",
		StyleTag:       "warning",
	}
	Burnout = Level{
		ID:             LevelBurnout,
		Name:           "Burnout",
		Description:    "You are experiencing significant burnout symptoms that require attention and intervention to prevent further deterioration.",
		Recommendation: "Consider speaking with a healthcare professional, HR representative, or counselor. Take steps to reduce workload and implement stress management strategies.",
		StyleTag:       "error",
	}
	ExtremeBurnout = Level{
		ID:             LevelExtreme,
		Name:           "Extreme Burnout",
		Description:    "You are experiencing extreme burnout symptoms across all dimensions. This is a critical level that requires immediate intervention and professional support.",
		Recommendation: "Seek immediate professional help from a healthcare provider, counselor, or mental health specialist. Consider taking time off work and implementing immediate stress reduction measures.",
		StyleTag:       "critical",
	}
)

// AllLevels returns every tier from least to most severe.
func AllLevels() []Level {
	return []Level{NoBurnout, ModerateBurnout, Burnout, ExtremeBurnout}
}

// LevelByName returns the tier with the given display name.
func LevelByName(name string) (Level, bool) {
	for _, l := range AllLevels() {
		if l.Name == name {
			return l, true
		}
	}
	return Level{}, false
}

// Classify maps the three category means to a tier. Rules are evaluated in a
// fixed order and the first match wins; the tiers overlap, so the order is
// part of the contract. Anything no rule captures is Moderate Burnout, even
// when one or two dimensions are extreme on their own.
func Classify(exhaustion, disengagement, efficacy float64) Level {
	switch {
	case exhaustion < NoBurnoutExhaustionMax &&
		disengagement < NoBurnoutDisengagementMax &&
		efficacy >= NoBurnoutEfficacyMin:
		return NoBurnout

	case exhaustion > ExtremeExhaustionMin &&
		disengagement > ExtremeDisengagementMin &&
		efficacy < ExtremeEfficacyMax:
		return ExtremeBurnout

	case exhaustion > BurnoutExhaustionMin &&
		disengagement > BurnoutDisengagementMin &&
		efficacy < BurnoutEfficacyMax:
		return Burnout

	default:
		return ModerateBurnout
	}
}
