package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/color-cycle/cycle"
)

// VirtualClock maps accumulated wall time to virtual seconds
// virtual = origin + Σ(wall delta × speed at the time) + offset
// Not safe for concurrent use; the event loop owns it
type VirtualClock struct {
	origin float64 // Wall time of day at start, seconds
	wall   float64 // Accumulated unscaled wall seconds
	scaled float64 // Accumulated speed-scaled wall seconds
	speed  float64
	offset float64
}

// NewVirtualClock creates a clock reading origin seconds at start
func NewVirtualClock(origin float64) *VirtualClock {
	return &VirtualClock{origin: origin, speed: 1}
}

// TimeOfDay returns seconds since local midnight of t
func TimeOfDay(t time.Time) float64 {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return t.Sub(midnight).Seconds()
}

// Advance accumulates a wall-clock delta and returns the new virtual time
// Negative deltas are ignored so virtual time never runs backward on its own
func (c *VirtualClock) Advance(delta time.Duration) float64 {
	d := delta.Seconds()
	if d > 0 {
		c.wall += d
		c.scaled += d * c.speed
	}
	return c.Now()
}

// Now returns the current virtual time in seconds
func (c *VirtualClock) Now() float64 {
	return c.origin + c.scaled + c.offset
}

// Shift moves virtual time by seconds without touching speed
func (c *VirtualClock) Shift(seconds float64) {
	c.offset += seconds
}

// SetSpeed sets the multiplier applied to subsequent wall deltas
func (c *VirtualClock) SetSpeed(speed float64) {
	c.speed = speed
}

// ResumeNow clears offset and speed, realigning with true elapsed wall time
func (c *VirtualClock) ResumeNow() {
	c.offset = 0
	c.speed = 1
	c.scaled = c.wall
}

func (c *VirtualClock) Offset() float64 { return c.offset }

func (c *VirtualClock) Speed() float64 { return c.speed }

// FormatTimeOfDay renders virtual seconds as H:MM
func FormatTimeOfDay(vt float64) string {
	m := int(cycle.MinuteOfDay(vt))
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}

// ParseTimeOfDay parses H:MM into seconds since midnight
func ParseTimeOfDay(s string) (float64, error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("time %q: want H:MM", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("time %q: bad hour", s)
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 0 || m > 59 || len(ms) != 2 {
		return 0, fmt.Errorf("time %q: bad minute", s)
	}
	return float64(h*3600 + m*60), nil
}
