package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	valid := []string{
		"2024-03-01T09:15:00Z",
		"2024-03-01T09:15:00+02:00",
		"2024-03-01T09:15:00.123456",
		"2024-03-01T09:15:00",
		"2024-03-01 09:15:00",
		"2024-03-01T09:15",
		"2024-03-01",
	}
	for _, v := range valid {
		_, err := ParseTimestamp(v)
		assert.NoError(t, err, v)
	}

	for _, v := range []string{"", "yesterday", "2024-13-01", "01/03/2024"} {
		_, err := ParseTimestamp(v)
		assert.Error(t, err, v)
	}
}

func TestDayAndClock(t *testing.T) {
	tests := []struct {
		in        string
		wantDay   string
		wantClock string
	}{
		{"2024-03-01T09:15:07", "2024-03-01", "09:15:07"},
		{"2024-03-01T23:59:59+05:00", "2024-03-01", "23:59:59"},
		{"2024-03-01T09:15:07.5Z", "2024-03-01", "09:15:07"},
		{"2024-03-01", "2024-03-01", "00:00:00"},
		{"2024-03-01 garbage", "2024-03-01", ""},
		{"short", "short", ""},
	}

	for _, tt := range tests {
		day, clock := DayAndClock(tt.in)
		assert.Equal(t, tt.wantDay, day, tt.in)
		assert.Equal(t, tt.wantClock, clock, tt.in)
	}
}
