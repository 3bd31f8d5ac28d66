// Package export turns a finished assessment into the flat row consumed by
// the spreadsheet endpoint and ships it there.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/demographic"
	"github.com/abhisek/pbi/internal/scoring"
)

// Sheet layout expected by the receiving script.
const (
	SheetRange     = "Sheet1!A:Z"
	MajorDimension = "ROWS"
)

// profileColumns is the export order of the profile fields. It differs
// from the asking order.
var profileColumns = []demographic.Field{
	demographic.FieldAgeRange,
	demographic.FieldGender,
	demographic.FieldJobRole,
	demographic.FieldYearsExperience,
	demographic.FieldWorkHours,
	demographic.FieldFamilyStatus,
}

// Headers returns the fixed column set: the profile columns followed by
// every question code in catalog order.
func Headers(cat *catalog.Catalog) []string {
	h := make([]string, 0, len(profileColumns)+cat.Len())
	for _, f := range profileColumns {
		h = append(h, f.Column())
	}
	return append(h, cat.Codes()...)
}

// Response is one question's exported value. Value 0 means unanswered.
type Response struct {
	Code  string
	Value int
}

// Record is the flat export row. Every column is always present; absent
// values marshal as null.
type Record struct {
	Demographics demographic.Record
	Responses    []Response
}

// BuildRecord maps answers onto question codes in catalog order.
func BuildRecord(cat *catalog.Catalog, answers scoring.Answers, demo demographic.Record) Record {
	qs := cat.Questions()
	r := Record{
		Demographics: demo,
		Responses:    make([]Response, len(qs)),
	}
	for i, q := range qs {
		r.Responses[i] = Response{Code: q.Code, Value: answers[q.ID]}
	}
	return r
}

// Headers returns the record's column names in order.
func (r Record) Headers() []string {
	h := make([]string, 0, len(profileColumns)+len(r.Responses))
	for _, f := range profileColumns {
		h = append(h, f.Column())
	}
	for _, resp := range r.Responses {
		h = append(h, resp.Code)
	}
	return h
}

// Values returns the row in header order, with nil for absent values.
func (r Record) Values() []any {
	v := make([]any, 0, len(profileColumns)+len(r.Responses))
	for _, f := range profileColumns {
		if s := r.Demographics.Get(f); s != "" {
			v = append(v, s)
		} else {
			v = append(v, nil)
		}
	}
	for _, resp := range r.Responses {
		if resp.Value != 0 {
			v = append(v, resp.Value)
		} else {
			v = append(v, nil)
		}
	}
	return v
}

// MarshalJSON emits a flat object with keys in header order.
func (r Record) MarshalJSON() ([]byte, error) {
	headers := r.Headers()
	values := r.Values()

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, h := range headers {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(h)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(values[i])
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", h, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Payload is the full request envelope. Only the flat record is posted to
// the endpoint; the envelope is kept for logging and the CLI.
type Payload struct {
	Range          string    `json:"range"`
	MajorDimension string    `json:"majorDimension"`
	Values         [][]any   `json:"values"`
	Timestamp      time.Time `json:"timestamp"`
	RawData        RawData   `json:"rawData"`
}

// RawData carries the record with summary counts.
type RawData struct {
	FormattedData             Record   `json:"formattedData"`
	Headers                   []string `json:"headers"`
	TotalQuestions            int      `json:"totalQuestions"`
	AnsweredQuestions         int      `json:"answeredQuestions"`
	DemographicFieldsProvided int      `json:"demographicFieldsProvided"`
}

// BuildPayload assembles the envelope for one submission.
func BuildPayload(cat *catalog.Catalog, answers scoring.Answers, demo demographic.Record, now time.Time) Payload {
	rec := BuildRecord(cat, answers, demo)
	v := Validate(cat, answers)
	return Payload{
		Range:          SheetRange,
		MajorDimension: MajorDimension,
		Values:         [][]any{rec.Values()},
		Timestamp:      now.UTC(),
		RawData: RawData{
			FormattedData:             rec,
			Headers:                   Headers(cat),
			TotalQuestions:            v.TotalQuestions,
			AnsweredQuestions:         v.AnsweredQuestions,
			DemographicFieldsProvided: demo.Provided(),
		},
	}
}

// Validation summarizes how complete an answer map is.
type Validation struct {
	IsComplete           bool               `json:"isComplete"`
	TotalQuestions       int                `json:"totalQuestions"`
	AnsweredQuestions    int                `json:"answeredQuestions"`
	Missing              []catalog.Question `json:"missing,omitempty"`
	CompletionPercentage int                `json:"completionPercentage"`
}

// Validate checks answers against the catalog. Answers to IDs outside the
// catalog are not counted.
func Validate(cat *catalog.Catalog, answers scoring.Answers) Validation {
	v := Validation{TotalQuestions: cat.Len()}
	for _, q := range cat.Questions() {
		if catalog.ValidLikert(answers[q.ID]) {
			v.AnsweredQuestions++
		} else {
			v.Missing = append(v.Missing, q)
		}
	}
	v.IsComplete = len(v.Missing) == 0
	if v.TotalQuestions > 0 {
		v.CompletionPercentage = int(math.Round(float64(v.AnsweredQuestions) / float64(v.TotalQuestions) * 100))
	}
	return v
}
