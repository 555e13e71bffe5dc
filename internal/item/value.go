package item

// Class is the hidden category of an item, revealed as a color when lit.
type Class uint8

const (
	ClassNegative Class = iota
	ClassPositive
)

func (c Class) String() string {
	if c == ClassPositive {
		return "positive"
	}
	return "negative"
}

// Color returns the display color of the class when revealed.
func (c Class) Color() Color {
	if c == ClassPositive {
		return ColorGreen
	}
	return ColorRed
}

// Color is what the item currently shows.
type Color uint8

const (
	ColorWhite Color = iota
	ColorGreen
	ColorRed
)

func (c Color) String() string {
	switch c {
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	}
	return "white"
}

// The payoff is deliberately skewed: a negative pickup costs twice what a
// positive one earns.
const (
	PositiveThreshold = 0.5
	PositiveValue     = 1
	NegativeValue     = -2
)

// ValueRoller maps a uniform roll in [0,1) to an item's value and class.
type ValueRoller interface {
	Roll(r float64) (value int, class Class)
}

// RollFunc adapts a function to ValueRoller.
type RollFunc func(r float64) (int, Class)

func (f RollFunc) Roll(r float64) (int, Class) { return f(r) }

// DefaultRoll is the built-in rule.
func DefaultRoll(r float64) (int, Class) {
	if r >= PositiveThreshold {
		return PositiveValue, ClassPositive
	}
	return NegativeValue, ClassNegative
}
