package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_Daily(t *testing.T) {
	template := Template{
		Start: time.Date(2025, time.January, 1, 9, 30, 0, 0, time.UTC),
		End:   time.Date(2025, time.January, 1, 11, 0, 0, 0, time.UTC),
	}

	occurrences, err := Expand(template, FrequencyDaily, 5)

	require.NoError(t, err)
	require.Len(t, occurrences, 5)
	for i, occurrence := range occurrences {
		assert.Equal(t, time.Date(2025, time.January, 1+i, 9, 30, 0, 0, time.UTC), occurrence.Start)
		assert.Equal(t, time.Date(2025, time.January, 1+i, 11, 0, 0, 0, time.UTC), occurrence.End)
	}
}

func TestExpand_WeeklyFromMonday(t *testing.T) {
	// 2025-01-06 is a Monday
	template := Template{
		Start: time.Date(2025, time.January, 6, 14, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.January, 6, 15, 0, 0, 0, time.UTC),
	}

	occurrences, err := Expand(template, FrequencyWeekly, 3)

	require.NoError(t, err)
	require.Len(t, occurrences, 3)
	for i, occurrence := range occurrences {
		assert.Equal(t, time.Monday, occurrence.Start.Weekday())
		if i > 0 {
			assert.Equal(t, 7*24*time.Hour, occurrence.Start.Sub(occurrences[i-1].Start))
		}
	}
}

func TestExpand_Monthly(t *testing.T) {
	template := Template{
		Start: time.Date(2025, time.February, 10, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.February, 10, 9, 0, 0, 0, time.UTC),
	}

	occurrences, err := Expand(template, FrequencyMonthly, 4)

	require.NoError(t, err)
	require.Len(t, occurrences, 4)
	assert.Equal(t, time.Date(2025, time.February, 10, 8, 0, 0, 0, time.UTC), occurrences[0].Start)
	assert.Equal(t, time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC), occurrences[1].Start)
	assert.Equal(t, time.Date(2025, time.April, 10, 8, 0, 0, 0, time.UTC), occurrences[2].Start)
	assert.Equal(t, time.Date(2025, time.May, 10, 8, 0, 0, 0, time.UTC), occurrences[3].Start)
}

func TestExpand_MonthlySkipsShortMonths(t *testing.T) {
	// RFC 5545 skip semantics: a series anchored on the 31st only lands in
	// months that have a 31st, it is not clamped to month end.
	template := Template{
		Start: time.Date(2025, time.January, 31, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.January, 31, 12, 0, 0, 0, time.UTC),
	}

	occurrences, err := Expand(template, FrequencyMonthly, 3)

	require.NoError(t, err)
	require.Len(t, occurrences, 3)
	assert.Equal(t, time.Date(2025, time.January, 31, 10, 0, 0, 0, time.UTC), occurrences[0].Start)
	assert.Equal(t, time.Date(2025, time.March, 31, 10, 0, 0, 0, time.UTC), occurrences[1].Start)
	assert.Equal(t, time.Date(2025, time.May, 31, 10, 0, 0, 0, time.UTC), occurrences[2].Start)
}

func TestExpand_MultiDayTemplatePreservesDuration(t *testing.T) {
	template := Template{
		Start: time.Date(2025, time.March, 1, 23, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.March, 2, 1, 0, 0, 0, time.UTC),
	}

	occurrences, err := Expand(template, FrequencyDaily, 2)

	require.NoError(t, err)
	require.Len(t, occurrences, 2)
	for _, occurrence := range occurrences {
		assert.Equal(t, 2*time.Hour, occurrence.End.Sub(occurrence.Start))
	}
}

func TestExpand_RepetitionBounds(t *testing.T) {
	template := Template{
		Start: time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC),
	}

	t.Run("zero", func(t *testing.T) {
		_, err := Expand(template, FrequencyDaily, 0)
		assert.Error(t, err)
	})

	t.Run("above maximum", func(t *testing.T) {
		_, err := Expand(template, FrequencyDaily, MaxRepetitions+1)
		assert.Error(t, err)
	})

	t.Run("maximum", func(t *testing.T) {
		occurrences, err := Expand(template, FrequencyDaily, MaxRepetitions)
		require.NoError(t, err)
		assert.Len(t, occurrences, MaxRepetitions)
	})
}

func TestExpand_EndBeforeStart(t *testing.T) {
	template := Template{
		Start: time.Date(2025, time.January, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC),
	}

	_, err := Expand(template, FrequencyDaily, 2)

	assert.Error(t, err)
}

func TestExpand_UnrecognizedFrequency(t *testing.T) {
	template := Template{
		Start: time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC),
	}

	_, err := Expand(template, Frequency("hourly"), 2)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "hourly")
}

func TestNewPreview(t *testing.T) {
	t.Run("below the limit everything renders", func(t *testing.T) {
		occurrences := make([]Occurrence, 4)

		preview := NewPreview(occurrences)

		assert.Len(t, preview.Occurrences, 4)
		assert.Equal(t, 0, preview.Remainder)
	})

	t.Run("above the limit the rest is a count", func(t *testing.T) {
		occurrences := make([]Occurrence, 25)

		preview := NewPreview(occurrences)

		assert.Len(t, preview.Occurrences, PreviewLimit)
		assert.Equal(t, 15, preview.Remainder)
	})
}
