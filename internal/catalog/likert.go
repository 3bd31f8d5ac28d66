package catalog

const (
	LikertMin = 1
	LikertMax = 5
)

// LikertOption is a single point on the agreement scale.
type LikertOption struct {
	Value int
	Label string
}

// LikertScale returns the five agreement options in ascending order.
func LikertScale() []LikertOption {
	return []LikertOption{
		{Value: 1, Label: "Strongly Disagree"},
		{Value: 2, Label: "Disagree"},
		{Value: 3, Label: "Neutral"},
		{Value: 4, Label: "Agree"},
		{Value: 5, Label: "Strongly Agree"},
	}
}

// ValidLikert reports whether v is a recordable answer.
func ValidLikert(v int) bool {
	return v >= LikertMin && v <= LikertMax
}

// LikertLabel returns the label for v, or "No Answer" when v is off the scale.
func LikertLabel(v int) string {
	if !ValidLikert(v) {
		return "No Answer"
	}
	return LikertScale()[v-LikertMin].Label
}
