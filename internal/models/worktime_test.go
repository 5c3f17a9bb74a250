package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkTimeFrom(t *testing.T) {
	overhead := 15 * time.Minute

	tests := []struct {
		name    string
		gross   time.Duration
		wantNet time.Duration
	}{
		{"zero gross", 0, 0},
		{"gross below overhead", 10 * time.Minute, 0},
		{"gross equals overhead", 15 * time.Minute, 0},
		{"gross above overhead", 20 * time.Minute, 5 * time.Minute},
		{"long session", 4 * time.Hour, 3*time.Hour + 45*time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WorkTimeFrom(tt.gross, overhead)
			assert.Equal(t, tt.gross, w.Gross)
			assert.Equal(t, tt.wantNet, w.Net)
			assert.GreaterOrEqual(t, w.Net, time.Duration(0))
		})
	}
}

func TestWorkTime_Add(t *testing.T) {
	total := WorkTimeFrom(2*time.Hour, 15*time.Minute)
	total.Add(WorkTimeFrom(55*time.Minute, 15*time.Minute))

	assert.Equal(t, 2*time.Hour+55*time.Minute, total.Gross)
	assert.Equal(t, 2*time.Hour+25*time.Minute, total.Net)
}

func TestNewInterval(t *testing.T) {
	start := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	iv := NewInterval(start, end, 15*time.Minute)
	assert.True(t, iv.Start.Equal(start))
	assert.Equal(t, 4*time.Hour, iv.Work.Gross)
	assert.Equal(t, 3*time.Hour+45*time.Minute, iv.Work.Net)
}
