package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosestIndex(t *testing.T) {
	t.Parallel()

	hours := []string{"2024-05-01T10:00", "2024-05-01T11:00", "2024-05-01T12:00"}

	tests := []struct {
		name   string
		times  []string
		target string
		want   int
	}{
		{"nearer to the later entry", hours, "2024-05-01T11:40", 2},
		{"halfway keeps the first minimum", hours, "2024-05-01T11:30", 1},
		{"exact match", hours, "2024-05-01T10:00", 0},
		{"before the series", hours, "2024-04-30T23:00", 0},
		{"after the series", hours, "2024-05-02T00:00", 2},
		{"clock-only values", []string{"10:00", "11:00", "12:00"}, "11:40", 2},
		{"empty series", nil, "2024-05-01T11:00", 0},
		{"empty target", hours, "", 0},
		{"unparseable target", hours, "noon", 0},
		{"unparseable entries skipped", []string{"bad", "2024-05-01T11:00"}, "2024-05-01T10:00", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClosestIndex(tt.times, tt.target))
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	ts, err := ParseTimestamp("2024-05-01T14:00")
	assert.NoError(t, err)
	assert.Equal(t, 14, ts.Hour())

	ts, err = ParseTimestamp("2024-05-01T14:30:00+05:30")
	assert.NoError(t, err)
	assert.Equal(t, 14, ts.Hour())

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}
