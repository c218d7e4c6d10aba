package service

import (
	"testing"
	"time"

	"literacylab/internal/models"
)

func TestAdvanceStreak(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		stats       models.UserStats
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "first ever session",
			stats:       models.UserStats{},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name: "second session same day",
			stats: models.UserStats{
				CurrentStreakDays: 3,
				LongestStreakDays: 5,
				LastPracticeDate:  "2026-03-14",
			},
			wantCurrent: 3,
			wantLongest: 5,
		},
		{
			name: "consecutive day extends streak",
			stats: models.UserStats{
				CurrentStreakDays: 3,
				LongestStreakDays: 5,
				LastPracticeDate:  "2026-03-13",
			},
			wantCurrent: 4,
			wantLongest: 5,
		},
		{
			name: "extension sets new longest",
			stats: models.UserStats{
				CurrentStreakDays: 5,
				LongestStreakDays: 5,
				LastPracticeDate:  "2026-03-13",
			},
			wantCurrent: 6,
			wantLongest: 6,
		},
		{
			name: "gap restarts streak",
			stats: models.UserStats{
				CurrentStreakDays: 9,
				LongestStreakDays: 9,
				LastPracticeDate:  "2026-03-10",
			},
			wantCurrent: 1,
			wantLongest: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advanceStreak(&tt.stats, now)

			if tt.stats.CurrentStreakDays != tt.wantCurrent {
				t.Errorf("CurrentStreakDays = %d, want %d", tt.stats.CurrentStreakDays, tt.wantCurrent)
			}
			if tt.stats.LongestStreakDays != tt.wantLongest {
				t.Errorf("LongestStreakDays = %d, want %d", tt.stats.LongestStreakDays, tt.wantLongest)
			}
			if tt.stats.LastPracticeDate != "2026-03-14" {
				t.Errorf("LastPracticeDate = %q, want %q", tt.stats.LastPracticeDate, "2026-03-14")
			}
		})
	}
}

func TestAdvanceStreakAcrossMonthBoundary(t *testing.T) {
	stats := &models.UserStats{
		CurrentStreakDays: 2,
		LongestStreakDays: 2,
		LastPracticeDate:  "2026-02-28",
	}
	advanceStreak(stats, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	if stats.CurrentStreakDays != 3 {
		t.Errorf("CurrentStreakDays = %d, want 3", stats.CurrentStreakDays)
	}
}
