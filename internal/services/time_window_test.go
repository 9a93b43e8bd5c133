package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"08:30", 510, true},
		{"08:30:45", 510, true},
		{" 17:05 ", 1025, true},
		{"00:00", 0, true},
		{"", 0, false},
		{"noon", 0, false},
		{"8", 0, false},
		{"12:75", 0, false},
		{"12:30:99", 0, false},
		{"1:2:3:4", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseClock(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPenalty(t *testing.T) {
	const end = 600

	tests := []struct {
		name         string
		arrival      float64
		hasWindow    bool
		wantOnTime   bool
		wantLateness float64
	}{
		{"exactly at deadline", end, true, true, 0},
		{"early", end - 30, true, true, 0},
		{"grace band", end + 30, true, true, 30},
		{"edge of grace band", end + 60, true, true, 60},
		{"late", end + 61, true, false, 61},
		{"no deadline", 2000, false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			onTime, lateness := Penalty(tt.arrival, end, tt.hasWindow, 60)
			assert.Equal(t, tt.wantOnTime, onTime)
			assert.InDelta(t, tt.wantLateness, lateness, 1e-9)
		})
	}
}
