// Package size converts view size hints into absolute cell counts.
//
// A hint is either unset, an absolute length ("30", "30px") or a percentage of
// the container length along the layout axis ("50%"). Conversion is pure, so
// the layout engine can re-run it on every container resize without drift.
package size

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit specifies how a Spec is interpreted.
type Unit uint8

const (
	Pixel   Unit = iota // absolute cells
	Percent             // percentage of the container length
)

// ErrMalformed is returned by Parse when the magnitude is not a number.
var ErrMalformed = errors.New("malformed size")

// Spec is a size hint. The zero value is unset.
type Spec struct {
	Value float64
	Unit  Unit
	Set   bool
}

// Unset returns a Spec with no declared size.
func Unset() Spec {
	return Spec{}
}

// Pixels returns an absolute Spec of n cells.
func Pixels(n float64) Spec {
	return Spec{Value: n, Unit: Pixel, Set: true}
}

// Percentage returns a Spec of p percent (0-100 scale) of the container.
func Percentage(p float64) Spec {
	return Spec{Value: p, Unit: Percent, Set: true}
}

// Parse reads a textual size hint.
//
// A malformed magnitude still yields a set Spec whose Value is NaN, so callers
// that choose to ignore the error get the poisoned value rather than a silent
// zero.
func Parse(text string) (Spec, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Unset(), nil
	}

	unit := Pixel
	magnitude := text
	switch {
	case strings.HasSuffix(text, "%"):
		unit = Percent
		magnitude = strings.TrimSuffix(text, "%")
	case strings.HasSuffix(text, "px"):
		magnitude = strings.TrimSuffix(text, "px")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(magnitude), 64)
	if err != nil {
		return Spec{Value: math.NaN(), Unit: unit, Set: true}, fmt.Errorf("%w: %q", ErrMalformed, text)
	}
	return Spec{Value: value, Unit: unit, Set: true}, nil
}

// Magnitude returns the numeric part of the hint, 0 when unset.
func (s Spec) Magnitude() float64 {
	if !s.Set {
		return 0
	}
	return s.Value
}

// UnitOf reports Percent for percentage hints and Pixel otherwise.
func (s Spec) UnitOf() Unit {
	if s.Set && s.Unit == Percent {
		return Percent
	}
	return Pixel
}

// IsSet reports whether the hint was declared.
func (s Spec) IsSet() bool {
	return s.Set
}

// ToPixels resolves the hint against a container length.
func (s Spec) ToPixels(length float64) float64 {
	if s.UnitOf() == Percent {
		return length * s.Magnitude() / 100
	}
	return s.Magnitude()
}

// String renders the hint in the same form Parse accepts.
func (s Spec) String() string {
	if !s.Set {
		return ""
	}
	value := strconv.FormatFloat(s.Value, 'f', -1, 64)
	if s.Unit == Percent {
		return value + "%"
	}
	return value + "px"
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Spec) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Spec) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Sum adds the magnitudes of the given hints; unset hints count as zero.
func Sum(specs ...Spec) float64 {
	total := 0.0
	for _, s := range specs {
		total += s.Magnitude()
	}
	return total
}

// SumFloats adds resolved sizes.
func SumFloats(values ...float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
