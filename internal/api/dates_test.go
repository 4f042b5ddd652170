package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventDate(t *testing.T) {
	want := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)

	for _, input := range []string{
		"2024-01-20T10:00:00Z",
		"2024-01-20T12:00:00+02:00",
		"2024-01-20T10:00:00",
		"2024-01-20T10:00",
		" 2024-01-20 10:00:00 ",
	} {
		got, err := parseEventDate(input)
		require.NoError(t, err, input)
		assert.True(t, want.Equal(got), "%s parsed as %s", input, got)
	}

	got, err := parseEventDate("2024-01-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), got)

	for _, input := range []string{"", "next sunday", "20/01/2024"} {
		_, err := parseEventDate(input)
		assert.Error(t, err, input)
	}
}

func TestParseSermonDate(t *testing.T) {
	want := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)

	got, err := parseSermonDate("2024-01-14")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = parseSermonDate("2024-01-14T09:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	for _, input := range []string{"2024-01-14T23:30:00-05:00", "2024-01-14T00:30:00+09:00"} {
		got, err = parseSermonDate(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err = parseSermonDate("Jan 14")
	assert.Error(t, err)
}
