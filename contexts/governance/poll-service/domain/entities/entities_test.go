package entities

import (
	"testing"
	"time"
)

func TestSessionStateAtWindowBoundaries(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Minute)
	session := Session{StartTime: start, EndTime: end}

	cases := []struct {
		name string
		now  time.Time
		want SessionState
	}{
		{"before start", start.Add(-time.Second), SessionStateScheduled},
		{"exactly at start", start, SessionStateOpen},
		{"inside window", start.Add(30 * time.Second), SessionStateOpen},
		{"exactly at end", end, SessionStateOpen},
		{"after end", end.Add(time.Second), SessionStateClosed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := session.StateAt(tc.now); got != tc.want {
				t.Fatalf("StateAt(%v) = %s, want %s", tc.now, got, tc.want)
			}
		})
	}
}

func TestSessionIsOpenAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	session := Session{StartTime: start, EndTime: start.Add(time.Minute)}

	if !session.IsOpenAt(start) {
		t.Fatalf("expected open at start instant")
	}
	if !session.IsOpenAt(start.Add(time.Minute)) {
		t.Fatalf("expected open at end instant")
	}
	if session.IsOpenAt(start.Add(time.Minute + time.Nanosecond)) {
		t.Fatalf("expected closed just past the end instant")
	}
}

func TestParseVoteOption(t *testing.T) {
	cases := []struct {
		raw    string
		want   VoteOption
		wantOK bool
	}{
		{"YES", VoteOptionYes, true},
		{"yes", VoteOptionYes, true},
		{" No ", VoteOptionNo, true},
		{"nO", VoteOptionNo, true},
		{"", "", false},
		{"maybe", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseVoteOption(tc.raw)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("ParseVoteOption(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.wantOK)
		}
	}
}
