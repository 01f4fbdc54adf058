// Package scale maps data domains onto pixel ranges.
//
// Nice bounds and tick positions follow the d3-scale conventions so the
// rendered axes land on the same round numbers a browser chart would
// show.
package scale

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultTickCount is the tick count used by Nice and Ticks when callers
// have no preference.
const DefaultTickCount = 10

// Linear is a continuous linear mapping from Domain to Range.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinear builds a scale over [d0, d1] -> [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Apply maps v into the range. A zero-width domain maps everything onto
// the middle of the range. NaN propagates.
func (s Linear) Apply(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	if d0 == d1 {
		if math.IsNaN(v) {
			return v
		}
		return (r0 + r1) / 2
	}
	return r0 + (v-d0)/(d1-d0)*(r1-r0)
}

// Invert maps a range value back into the domain.
func (s Linear) Invert(px float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	if r0 == r1 {
		return (d0 + d1) / 2
	}
	return d0 + (px-r0)/(r1-r0)*(d1-d0)
}

// Contains reports whether px lies within the range, whichever way round
// the range is oriented.
func (s Linear) Contains(px float64) bool {
	lo, hi := s.Range[0], s.Range[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return px >= lo && px <= hi
}

// Nice returns a copy whose domain is extended to round values for the
// given tick count. A domain the tick rules cannot settle on, such as a
// zero-width or NaN one, is returned unchanged.
func (s Linear) Nice(count int) Linear {
	start, stop := s.Domain[0], s.Domain[1]
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	var prestep float64
	for i := 0; i < 10; i++ {
		step := tickIncrement(start, stop, float64(count))
		if step == prestep {
			if reversed {
				start, stop = stop, start
			}
			s.Domain = [2]float64{start, stop}
			return s
		} else if step > 0 {
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		} else if step < 0 {
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		} else {
			break
		}
		prestep = step
	}
	return s
}

// Ticks returns roughly count evenly spaced round values inside the
// domain.
func (s Linear) Ticks(count float64) []float64 {
	return Ticks(s.Domain[0], s.Domain[1], count)
}

// TickStep is the spacing Ticks uses for this scale.
func (s Linear) TickStep(count float64) float64 {
	return tickStep(s.Domain[0], s.Domain[1], count)
}

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

func tickSpec(start, stop, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	errv := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case errv >= e10:
		factor = 10
	case errv >= e5:
		factor = 5
	case errv >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}
	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// Ticks returns the round values between start and stop.
func Ticks(start, stop, count float64) []float64 {
	if !(count > 0) || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	i1, i2, inc := tickSpec(start, stop, count)
	if !(i2 >= i1) {
		return nil
	}

	n := int(i2 - i1 + 1)
	ticks := make([]float64, n)
	for i := 0; i < n; i++ {
		if inc < 0 {
			ticks[i] = (i1 + float64(i)) / -inc
		} else {
			ticks[i] = (i1 + float64(i)) * inc
		}
	}
	if reverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

func tickIncrement(start, stop, count float64) float64 {
	_, _, inc := tickSpec(start, stop, count)
	return inc
}

func tickStep(start, stop, count float64) float64 {
	reverse := stop < start
	var inc float64
	if reverse {
		inc = tickIncrement(stop, start, count)
	} else {
		inc = tickIncrement(start, stop, count)
	}
	if inc < 0 {
		inc = 1 / -inc
	}
	if reverse {
		return -inc
	}
	return inc
}

var printer = message.NewPrinter(language.English)

// TickFormat returns a formatter for this scale's ticks: fixed point with
// just enough decimals for the tick step and English digit grouping.
func (s Linear) TickFormat(count float64) func(float64) string {
	step := math.Abs(s.TickStep(count))
	precision := 0
	if step > 0 && !math.IsInf(step, 0) && !math.IsNaN(step) {
		precision = int(math.Max(0, -math.Floor(math.Log10(step)+1e-9)))
	}
	format := fmt.Sprintf("%%.%df", precision)
	return func(v float64) string {
		if precision == 0 {
			return printer.Sprintf("%d", int64(math.Round(v)))
		}
		return printer.Sprintf(format, v)
	}
}

// IntegerFormat renders ticks as plain integers without grouping, as
// used for year axes.
func IntegerFormat(v float64) string {
	return strconv.FormatInt(int64(math.Round(v)), 10)
}
