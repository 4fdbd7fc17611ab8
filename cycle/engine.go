package cycle

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/color-cycle/core"
)

// SecondsPerMinute converts virtual seconds to time-of-day minutes
const SecondsPerMinute = 60

// EffectivePalette returns the palette to display for img at virtual time vt (seconds)
func EffectivePalette(img *core.Image, vt float64, blend bool) core.Palette {
	var out core.Palette
	Compute(&out, img, vt, blend)
	return out
}

// Compute writes the effective palette into dst without allocating
func Compute(dst *core.Palette, img *core.Image, vt float64, blend bool) {
	var working core.Palette
	if img.HasDayPalettes() {
		working = DayBlend(img.DayPalettes, MinuteOfDay(vt))
	} else {
		working = img.Palette
	}

	*dst = working
	for _, r := range img.Cycles {
		rotate(dst, &working, r, vt, blend)
	}
}

// MinuteOfDay maps virtual seconds to a minute in [0, 1440)
func MinuteOfDay(vt float64) float64 {
	return floorMod(vt/SecondsPerMinute, core.MinutesPerDay)
}

// DayBlend interpolates the keyframes bracketing minute, wrapping from the last keyframe
// to the first across midnight. keys must satisfy core.Image invariants
func DayBlend(keys []core.DayPalette, minute float64) core.Palette {
	n := len(keys)
	if n == 0 {
		return core.Palette{}
	}
	if n == 1 {
		return keys[0].Palette
	}

	// Last keyframe at or before minute; before the first keyframe wraps to the last
	prev := n - 1
	for i := range keys {
		if keys[i].Minute > minute {
			break
		}
		prev = i
	}
	next := (prev + 1) % n

	span := floorMod(keys[next].Minute-keys[prev].Minute, core.MinutesPerDay)
	pos := floorMod(minute-keys[prev].Minute, core.MinutesPerDay)
	t := 0.0
	if span > 0 {
		t = pos / span
	}

	var out core.Palette
	for i := range out {
		out[i] = mix(keys[prev].Palette[i], keys[next].Palette[i], t)
	}
	return out
}

// Phase returns the rotation phase of r at vt, in [0, r.Len())
func Phase(r core.CycleRange, vt float64) float64 {
	return floorMod(vt*r.Rate, float64(r.Len()))
}

// rotate writes the rotated entries of r into dst, reading from src
// Forward motion moves colors toward higher indices: entry k takes source k-step.
// With blend the fractional phase cross-fades toward the source the next whole step
// will use, so the output is continuous across step boundaries in both directions
func rotate(dst, src *core.Palette, r core.CycleRange, vt float64, blend bool) {
	n := r.Len()
	if n < 2 || r.Rate == 0 {
		return
	}

	phase := Phase(r, vt)
	step := int(phase)
	frac := phase - float64(step)

	dir := -1
	if r.Reverse {
		dir = 1
	}

	low := int(r.Low)
	for k := 0; k < n; k++ {
		s := wrap(k+dir*step, n)
		c := src[low+s]
		if blend && frac > 0 {
			c = mix(c, src[low+wrap(s+dir, n)], frac)
		}
		dst[low+k] = c
	}
}

// mix interpolates a*(1-t) + b*t per channel in sRGB, rounded to nearest
func mix(a, b core.RGB, t float64) core.RGB {
	if t <= 0 || a == b {
		return a
	}
	if t >= 1 {
		return b
	}
	r, g, bl := toColorful(a).BlendRgb(toColorful(b), t).RGB255()
	return core.RGB{R: r, G: g, B: bl}
}

func toColorful(c core.RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	// -tiny % m rounds up to m
	if r >= m {
		r = 0
	}
	return r
}
