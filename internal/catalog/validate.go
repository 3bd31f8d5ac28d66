package catalog

import (
	"fmt"
	"strings"
)

// validateQuestions performs all structural checks on the given question set.
// Returns a combined error describing all problems found, or nil if valid.
func validateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("catalog validation failed: no questions")
	}

	var errs []string
	codeSet := make(map[string]int, len(questions))

	for i, q := range questions {
		// IDs double as answer keys, so they must run 1..N in display order.
		if q.ID != i+1 {
			errs = append(errs, fmt.Sprintf("question at position %d has ID %d, want %d", i, q.ID, i+1))
		}
		if !q.Category.Valid() {
			errs = append(errs, fmt.Sprintf("question %d has unknown category %q", q.ID, q.Category))
		}
		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Sprintf("question %d has an empty prompt", q.ID))
		}
		if q.Code == "" {
			errs = append(errs, fmt.Sprintf("question %d has no export code", q.ID))
			continue
		}
		if prev, dup := codeSet[q.Code]; dup {
			errs = append(errs, fmt.Sprintf("questions %d and %d share export code %q", prev, q.ID, q.Code))
		}
		codeSet[q.Code] = q.ID
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
