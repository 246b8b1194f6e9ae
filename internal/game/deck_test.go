package game

import (
	"fmt"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeck(t *testing.T) {
	deck, err := GenerateDeck()
	require.NoError(t, err)
	require.Len(t, deck, 81)

	seen := make(map[Card]bool)
	for i, card := range deck {
		require.True(t, card.Valid(), "card %d %v is not valid", i, card)
		require.False(t, seen[card], "card %s appears twice", card)
		seen[card] = true
		assert.Equal(t, i, card.Index(), "card %s out of nested-loop order", card)
	}

	assert.Equal(t, Card{Red, Oval, One, Solid}, deck[0])
	assert.Equal(t, Card{Red, Oval, One, Striped}, deck[1])
	assert.Equal(t, Card{Purple, Diamond, Three, Open}, deck[80])
}

func TestCardKeys(t *testing.T) {
	for _, card := range MustGenerateDeck() {
		parsed, err := ParseCard(card.Key())
		require.NoError(t, err)
		assert.Equal(t, card, parsed)
	}
	assert.Equal(t, "green-squiggle-3-open", Card{Green, Squiggle, Three, Open}.Key())

	for _, key := range []string{"", "red-oval-1", "red-oval-4-solid", "blue-oval-1-solid", "red-oval-1-solid-x"} {
		t.Run(fmt.Sprintf("%q", key), func(t *testing.T) {
			_, err := ParseCard(key)
			require.ErrorIs(t, err, ErrInvalidCard)
		})
	}
}

func TestShuffle(t *testing.T) {
	deck := MustGenerateDeck()
	original := slices.Clone([]Card(deck))

	shuffled := Shuffle(deck, NewRand(42))
	assert.Equal(t, original, []Card(deck), "input must be left untouched")
	assert.NotEqual(t, original, shuffled)
	assert.ElementsMatch(t, original, shuffled)

	again := Shuffle(deck, NewRand(42))
	assert.Equal(t, shuffled, again, "same seed must give the same permutation")

	other := Shuffle(deck, NewRand(43))
	assert.NotEqual(t, shuffled, other)

	assert.ElementsMatch(t, original, Shuffle(deck, nil))
	assert.Empty(t, Shuffle(nil, nil))
}

func TestSeedFromID(t *testing.T) {
	assert.Equal(t, uint64(36*36+2*36+3), SeedFromID("123"))
	assert.Equal(t, SeedFromID("abc"), SeedFromID("ABC"))
	assert.Equal(t, SeedFromID("not a number!"), SeedFromID("not a number!"))
	assert.NotEqual(t, SeedFromID("not a number!"), SeedFromID("not a number?"))

	for range 10 {
		id := NewGameID()
		require.NotEmpty(t, id)
		// Generated ids are base-36 numbers and are used directly as seeds.
		seed, err := strconv.ParseUint(id, 36, 64)
		require.NoError(t, err)
		assert.Equal(t, seed, SeedFromID(id))
	}
}
