// Package cycle computes the effective palette of a color-cycling image for a moment
// of virtual time.
//
// Two steps run per frame:
//   - time-of-day blend between the two keyframe palettes bracketing the current minute
//   - rotation of every cycle range by its phase, optionally cross-faded between steps
//
// Phases are a pure function of virtual time and range parameters, so any moment can be
// computed directly without replaying earlier frames.
package cycle
