package game

import (
	"errors"
	"fmt"
	"strings"
)

// Color of the symbols on a card.
type Color uint8

const (
	Red Color = iota
	Green
	Purple
)

// Shape of the symbols on a card.
type Shape uint8

const (
	Oval Shape = iota
	Squiggle
	Diamond
)

// Count is the number of symbols on a card. The zero value means one symbol.
type Count uint8

const (
	One Count = iota
	Two
	Three
)

// Shading of the symbols on a card.
type Shading uint8

const (
	Solid Shading = iota
	Striped
	Open
)

// NumValues is the number of values each attribute can take.
const NumValues = 3

var (
	colorNames   = [NumValues]string{"red", "green", "purple"}
	shapeNames   = [NumValues]string{"oval", "squiggle", "diamond"}
	countNames   = [NumValues]string{"1", "2", "3"}
	shadingNames = [NumValues]string{"solid", "striped", "open"}
)

func (c Color) String() string   { return attrName(colorNames, uint8(c)) }
func (s Shape) String() string   { return attrName(shapeNames, uint8(s)) }
func (c Count) String() string   { return attrName(countNames, uint8(c)) }
func (s Shading) String() string { return attrName(shadingNames, uint8(s)) }

// N returns the number of symbols drawn on the card (1 to 3).
func (c Count) N() int { return int(c) + 1 }

func attrName(names [NumValues]string, v uint8) string {
	if int(v) >= len(names) {
		return fmt.Sprintf("invalid(%d)", v)
	}
	return names[v]
}

func parseAttr(names [NumValues]string, s string) (uint8, bool) {
	for i, name := range names {
		if name == s {
			return uint8(i), true
		}
	}
	return 0, false
}

// ErrInvalidCard is returned when a card key can't be parsed.
var ErrInvalidCard = errors.New("invalid card")

// Card is an immutable value: two cards are the same card iff all four
// attributes are equal. Cards are comparable and can be used as map keys.
//
// In JSON (and any other text encoding) a card is its Key.
type Card struct {
	Color   Color
	Shape   Shape
	Count   Count
	Shading Shading
}

// Key returns the textual identity of the card, e.g. "red-oval-1-solid".
func (c Card) Key() string {
	return c.Color.String() + "-" + c.Shape.String() + "-" + c.Count.String() + "-" + c.Shading.String()
}

func (c Card) String() string { return c.Key() }

// Index returns the position of the card in the ordered deck, 0 to 80.
func (c Card) Index() int {
	return ((int(c.Color)*NumValues+int(c.Shape))*NumValues+int(c.Count))*NumValues + int(c.Shading)
}

// Valid reports whether every attribute holds one of its three values.
func (c Card) Valid() bool {
	return c.Color < NumValues && c.Shape < NumValues && c.Count < NumValues && c.Shading < NumValues
}

// attrs returns the four attributes in a fixed order.
func (c Card) attrs() [4]uint8 {
	return [4]uint8{uint8(c.Color), uint8(c.Shape), uint8(c.Count), uint8(c.Shading)}
}

func cardFromAttrs(a [4]uint8) Card {
	return Card{Color: Color(a[0]), Shape: Shape(a[1]), Count: Count(a[2]), Shading: Shading(a[3])}
}

// ParseCard parses a key as returned by Card.Key.
func ParseCard(key string) (Card, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 4 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, key)
	}
	var a [4]uint8
	for i, names := range [4][NumValues]string{colorNames, shapeNames, countNames, shadingNames} {
		v, ok := parseAttr(names, parts[i])
		if !ok {
			return Card{}, fmt.Errorf("%w: %q has unknown attribute %q", ErrInvalidCard, key, parts[i])
		}
		a[i] = v
	}
	return cardFromAttrs(a), nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCard, c.attrs())
	}
	return []byte(c.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
