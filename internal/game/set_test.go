package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isSetByDefinition checks each attribute by counting distinct values.
func isSetByDefinition(a, b, c Card) bool {
	x, y, z := a.attrs(), b.attrs(), c.attrs()
	for i := range x {
		distinct := map[uint8]bool{x[i]: true, y[i]: true, z[i]: true}
		if len(distinct) == 2 {
			return false
		}
	}
	return true
}

func TestIsSetKnownCases(t *testing.T) {
	assert.True(t, IsSet(
		Card{Red, Oval, One, Solid},
		Card{Green, Oval, Two, Solid},
		Card{Purple, Oval, Three, Solid},
	))
	assert.False(t, IsSet(
		Card{Red, Oval, One, Solid},
		Card{Red, Oval, Two, Solid},
		Card{Green, Oval, Three, Solid},
	))
	assert.True(t, IsSet(
		Card{Red, Oval, One, Solid},
		Card{Green, Squiggle, Two, Striped},
		Card{Purple, Diamond, Three, Open},
	))
}

func TestIsSetArity(t *testing.T) {
	a := Card{Red, Oval, One, Solid}
	b := Card{Green, Oval, Two, Solid}
	c := Card{Purple, Oval, Three, Solid}
	assert.False(t, IsSet())
	assert.False(t, IsSet(a))
	assert.False(t, IsSet(a, b))
	assert.False(t, IsSet(a, b, c, a))
}

func TestIsSetMatchesDefinition(t *testing.T) {
	deck := MustGenerateDeck()
	rng := NewRand(7)
	for range 5000 {
		a, b, c := deck[rng.IntN(len(deck))], deck[rng.IntN(len(deck))], deck[rng.IntN(len(deck))]
		want := isSetByDefinition(a, b, c)
		require.Equal(t, want, IsSet(a, b, c), "cards %s, %s, %s", a, b, c)

		// Symmetric under every permutation.
		for _, perm := range [][3]Card{{a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a}} {
			require.Equal(t, want, IsSet(perm[:]...), "permutation %v", perm)
		}
	}
}

func TestThirdCard(t *testing.T) {
	deck := MustGenerateDeck()
	for i, a := range deck {
		for _, b := range deck[i+1:] {
			c := ThirdCard(a, b)
			require.True(t, c.Valid())
			require.NotEqual(t, a, c)
			require.NotEqual(t, b, c)
			require.True(t, IsSet(a, b, c), "cards %s, %s, %s", a, b, c)
		}
	}
	// Every pair belongs to exactly one Set.
	assert.Equal(t, 81*80/6, CountSets(deck))
}

func TestFindSet(t *testing.T) {
	set, found := FindSet(binaryCards()[:12])
	assert.False(t, found, "cards using only two values per attribute have no Set, got %v", set)

	cards := append(binaryCards()[:12], Card{Purple, Diamond, Three, Open})
	set, found = FindSet(cards)
	require.True(t, found)
	assert.True(t, IsSet(set[:]...))
	assert.Equal(t, Card{Purple, Diamond, Three, Open}, set[2])

	_, found = FindSet(nil)
	assert.False(t, found)
}

// binaryCards returns the 16 cards whose attributes only take the first two
// values. No three of them form a Set.
func binaryCards() []Card {
	var cards []Card
	for _, card := range MustGenerateDeck() {
		a := card.attrs()
		if a[0] < 2 && a[1] < 2 && a[2] < 2 && a[3] < 2 {
			cards = append(cards, card)
		}
	}
	return cards
}
