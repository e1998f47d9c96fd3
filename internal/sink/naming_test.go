package sink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Ann", "Ann"},
		{"  Ann Lee  ", "Ann Lee"},
		{"", UnknownIdentifier},
		{"   ", UnknownIdentifier},
		{"\t\n", UnknownIdentifier},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeIdentifier(tt.raw), "raw %q", tt.raw)
	}
}

func TestFilename(t *testing.T) {
	ts := time.Date(2026, 3, 1, 9, 5, 7, 0, time.UTC)

	assert.Equal(t, "selfie_Ann.png", Filename("Ann", ts, false))
	assert.Equal(t, "selfie_Ann_Lee.png", Filename("Ann Lee", ts, false))
	assert.Equal(t, "selfie_Unknown.png", Filename(UnknownIdentifier, ts, false))
	assert.Equal(t, "selfie_Ann_Lee_2026-03-01-09-05-07.png", Filename("Ann Lee", ts, true))

	// Path separators never escape the output directory.
	assert.Equal(t, "selfie_a_b.png", Filename("a/b", ts, false))
	assert.Equal(t, "selfie_a_b.png", Filename(`a\b`, ts, false))
	assert.Equal(t, "selfie_.._.._etc.png", Filename("../../etc", ts, false))

	// Identifier-only names collide across captures.
	assert.Equal(t, Filename("Ann", ts, false), Filename("Ann", ts.Add(time.Hour), false))
	assert.NotEqual(t, Filename("Ann", ts, true), Filename("Ann", ts.Add(time.Second), true))
}
