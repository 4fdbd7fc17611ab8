package engine

import (
	"math"
	"strings"
	"testing"
	"time"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVirtualClock_Advance(t *testing.T) {
	c := NewVirtualClock(100)
	if got := c.Advance(2 * time.Second); !approx(got, 102) {
		t.Fatalf("Expected 102, got %v", got)
	}
	if got := c.Advance(-time.Second); !approx(got, 102) {
		t.Errorf("Expected negative delta ignored, got %v", got)
	}
}

func TestVirtualClock_SpeedAppliesToSubsequentDeltas(t *testing.T) {
	c := NewVirtualClock(0)
	c.Advance(10 * time.Second)
	c.SetSpeed(100)
	c.Advance(time.Second)
	if got := c.Now(); !approx(got, 110) {
		t.Fatalf("Expected 110, got %v", got)
	}

	// Offsets compose additively with fast-forward
	c.Shift(-300)
	if got := c.Now(); !approx(got, -190) {
		t.Errorf("Expected -190, got %v", got)
	}
}

func TestVirtualClock_ResumeNow(t *testing.T) {
	c := NewVirtualClock(50)
	c.Advance(5 * time.Second)
	c.SetSpeed(10000)
	c.Advance(time.Second)
	c.Shift(120)

	c.ResumeNow()
	if c.Offset() != 0 || c.Speed() != 1 {
		t.Fatalf("Expected offset 0 speed 1, got %v %v", c.Offset(), c.Speed())
	}
	if got := c.Now(); !approx(got, 56) {
		t.Errorf("Expected realignment with wall time (56), got %v", got)
	}
}

func TestVirtualClock_ResumeRewindResume(t *testing.T) {
	c := NewVirtualClock(0)
	c.Advance(3 * time.Second)

	c.ResumeNow()
	c.Shift(-BigTimeStep)
	c.ResumeNow()
	if c.Offset() != 0 {
		t.Errorf("Expected offset 0, got %v", c.Offset())
	}
}

func TestTimeOfDay(t *testing.T) {
	at := time.Date(2024, 3, 1, 13, 30, 15, 0, time.UTC)
	if got := TimeOfDay(at); got != 13*3600+30*60+15 {
		t.Errorf("Unexpected time of day %v", got)
	}
}

func TestFormatTimeOfDay(t *testing.T) {
	tests := []struct {
		vt   float64
		want string
	}{
		{0, "0:00"},
		{13*3600 + 5*60 + 59, "13:05"},
		{-60, "23:59"},
		{86400 + 3600, "1:00"},
	}
	for _, tt := range tests {
		if got := FormatTimeOfDay(tt.vt); got != tt.want {
			t.Errorf("FormatTimeOfDay(%v): expected %q, got %q", tt.vt, tt.want, got)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"0:00", 0, true},
		{"13:05", 13*3600 + 5*60, true},
		{" 23:59 ", 23*3600 + 59*60, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"12:5", 0, false},
		{"noon", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseTimeOfDay(%q): unexpected error state %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseTimeOfDay(%q): expected %v, got %v", tt.in, tt.want, got)
		}
		if tt.ok && FormatTimeOfDay(got) != strings.TrimSpace(tt.in) {
			t.Errorf("FormatTimeOfDay(%v): expected %q", got, tt.in)
		}
	}
}
