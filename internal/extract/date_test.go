package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDateZeroPadding(t *testing.T) {
	assert.Equal(t, "2025-01-05", normalizeDate(2025, time.January, 5))
	assert.Equal(t, "2025-12-31", normalizeDate(2025, time.December, 31))
	assert.Equal(t, "0999-09-09", normalizeDate(999, time.September, 9))
}

func TestNormalizeDateIgnoresTimeZone(t *testing.T) {
	// The canonical string must not shift by a day depending on the host
	// zone, which is what happens when a local midnight is converted to a
	// UTC instant and reformatted.
	original := time.Local
	defer func() { time.Local = original }()

	zones := []*time.Location{
		time.UTC,
		time.FixedZone("far-east", 14*3600),
		time.FixedZone("far-west", -11*3600),
	}

	for _, zone := range zones {
		time.Local = zone
		assert.Equal(t, "2025-12-15", normalizeDate(2025, time.December, 15))
		assert.Equal(t, "2025-01-01", normalizeDate(2025, time.January, 1))
	}
}

func TestMonthFromName(t *testing.T) {
	tests := []struct {
		token string
		want  time.Month
		ok    bool
	}{
		{token: "december", want: time.December, ok: true},
		{token: "Dec", want: time.December, ok: true},
		{token: "SEPTEMBER", want: time.September, ok: true},
		{token: "sep", want: time.September, ok: true},
		{token: "octember", ok: false},
		{token: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := monthFromName(tt.token)
		assert.Equal(t, tt.ok, ok, "monthFromName(%q)", tt.token)
		if tt.ok {
			assert.Equal(t, tt.want, got, "monthFromName(%q)", tt.token)
		}
	}
}

func TestMonthFromAbbrev(t *testing.T) {
	got, ok := monthFromAbbrev("Sept")
	assert.True(t, ok)
	assert.Equal(t, time.September, got)

	got, ok = monthFromAbbrev("September")
	assert.True(t, ok, "first four characters are considered")
	assert.Equal(t, time.September, got)

	_, ok = monthFromAbbrev("October")
	assert.False(t, ok, "four-character prefix of full names does not resolve")
}
