package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pbi/internal/catalog"
	"github.com/abhisek/pbi/internal/demographic"
	"github.com/abhisek/pbi/internal/scoring"
)

func fullAnswers(v int) scoring.Answers {
	a := scoring.Answers{}
	for _, q := range catalog.Default().Questions() {
		a[q.ID] = v
	}
	return a
}

func TestHeaders_FixedOrder(t *testing.T) {
	h := Headers(catalog.Default())
	require.Len(t, h, 24)
	assert.Equal(t, []string{
		"ageRanges", "genderOptions", "jobRoles",
		"yearsExperienceOptions", "workHoursOptions", "familyStatusOptions",
		"EE1",
	}, h[:7])
	assert.Equal(t, "DE1", h[13])
	assert.Equal(t, "PE5", h[23])
}

func TestBuildRecord_AbsentValuesAreNull(t *testing.T) {
	cat := catalog.Default()
	rec := BuildRecord(cat, scoring.Answers{1: 4, 18: 2}, demographic.Record{JobRole: "technology"})

	raw, err := json.Marshal(rec)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	// Every column is present even when empty.
	assert.Len(t, got, len(Headers(cat)))
	assert.Nil(t, got["ageRanges"])
	assert.Equal(t, "technology", got["jobRoles"])
	assert.Equal(t, float64(4), got["EE1"])
	assert.Nil(t, got["EE2"])
	assert.Equal(t, float64(2), got["PE5"])
}

func TestRecord_MarshalKeepsHeaderOrder(t *testing.T) {
	cat := catalog.Default()
	raw, err := json.Marshal(BuildRecord(cat, fullAnswers(3), demographic.Record{}))
	require.NoError(t, err)

	s := string(raw)
	last := -1
	for _, h := range Headers(cat) {
		i := strings.Index(s, `"`+h+`":`)
		require.GreaterOrEqual(t, i, 0, "missing %s", h)
		assert.Greater(t, i, last, "%s out of order", h)
		last = i
	}
}

func TestRecord_Values(t *testing.T) {
	rec := BuildRecord(catalog.Default(), scoring.Answers{2: 5}, demographic.Record{Gender: "female"})
	v := rec.Values()
	require.Len(t, v, 24)
	assert.Nil(t, v[0])
	assert.Equal(t, "female", v[1])
	assert.Nil(t, v[6])
	assert.Equal(t, 5, v[7])
}

func TestBuildPayload(t *testing.T) {
	cat := catalog.Default()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	demo := demographic.Record{AgeRange: "25-34", WorkHours: "41-50"}

	p := BuildPayload(cat, scoring.Answers{1: 1, 2: 2, 3: 3}, demo, now)

	assert.Equal(t, "Sheet1!A:Z", p.Range)
	assert.Equal(t, "ROWS", p.MajorDimension)
	require.Len(t, p.Values, 1)
	assert.Len(t, p.Values[0], 24)
	assert.Equal(t, time.UTC, p.Timestamp.Location())
	assert.Equal(t, 18, p.RawData.TotalQuestions)
	assert.Equal(t, 3, p.RawData.AnsweredQuestions)
	assert.Equal(t, 2, p.RawData.DemographicFieldsProvided)
	assert.Equal(t, Headers(cat), p.RawData.Headers)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"formattedData":{"ageRanges":"25-34"`)
}

func TestValidate(t *testing.T) {
	cat := catalog.Default()

	v := Validate(cat, fullAnswers(4))
	assert.True(t, v.IsComplete)
	assert.Equal(t, 100, v.CompletionPercentage)
	assert.Empty(t, v.Missing)

	partial := fullAnswers(4)
	delete(partial, 5)
	delete(partial, 17)
	partial[99] = 3 // not a catalog ID

	v = Validate(cat, partial)
	assert.False(t, v.IsComplete)
	assert.Equal(t, 16, v.AnsweredQuestions)
	assert.Equal(t, 89, v.CompletionPercentage)
	require.Len(t, v.Missing, 2)
	assert.Equal(t, "EE5", v.Missing[0].Code)
	assert.Equal(t, "PE4", v.Missing[1].Code)
}

func TestValidateRecord(t *testing.T) {
	cat := catalog.Default()

	t.Run("complete", func(t *testing.T) {
		rec := BuildRecord(cat, fullAnswers(5), demographic.Record{FamilyStatus: "single"})
		assert.NoError(t, ValidateRecord(cat, rec))
	})

	t.Run("partial with nulls", func(t *testing.T) {
		rec := BuildRecord(cat, scoring.Answers{1: 2}, demographic.Record{})
		assert.NoError(t, ValidateRecord(cat, rec))
	})

	t.Run("unknown option", func(t *testing.T) {
		rec := BuildRecord(cat, fullAnswers(3), demographic.Record{Gender: "unknown"})
		assert.Error(t, ValidateRecord(cat, rec))
	})

	t.Run("off scale", func(t *testing.T) {
		rec := BuildRecord(cat, fullAnswers(3), demographic.Record{})
		rec.Responses[0].Value = 7
		assert.Error(t, ValidateRecord(cat, rec))
	})
}
