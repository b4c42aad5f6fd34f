package parallax

import "strconv"

// Interpolate maps rate onto [from, to]. Rates at or below 0 return from,
// rates at or above 1 return to, anything between is linear: from + rate*diff.
// diff is to-from, passed in so callers can precompute it.
func Interpolate(rate, from, to, diff float64) float64 {
	switch {
	case rate <= 0:
		return from
	case rate >= 1:
		return to
	default:
		return from + rate*diff
	}
}

// property is a validated Prop with its precomputed span.
type property struct {
	name   string
	from   float64
	to     float64
	diff   float64
	suffix string
}

// valueAt renders the property value for rate, suffix included.
func (p *property) valueAt(rate float64) string {
	return formatFloat(Interpolate(rate, p.from, p.to, p.diff)) + p.suffix
}

// formatFloat renders v in the shortest form that round-trips, without an
// exponent for ordinary magnitudes ("0.5", "120", "-3.25").
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
