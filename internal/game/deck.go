package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	rand "math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// DeckSize is the number of distinct cards: every combination of the four attributes.
const DeckSize = NumValues * NumValues * NumValues * NumValues

// ErrInvalidDeck is returned when deck generation doesn't yield DeckSize unique cards.
var ErrInvalidDeck = errors.New("invalid deck")

// Deck is an ordered sequence of cards.
type Deck []Card

// GenerateDeck enumerates all cards, in nested-loop order: color, shape, count and shading.
func GenerateDeck() (Deck, error) {
	deck := make(Deck, 0, DeckSize)
	for color := range Color(NumValues) {
		for shape := range Shape(NumValues) {
			for count := range Count(NumValues) {
				for shading := range Shading(NumValues) {
					deck = append(deck, Card{Color: color, Shape: shape, Count: count, Shading: shading})
				}
			}
		}
	}

	if len(deck) != DeckSize {
		return nil, fmt.Errorf("%w: got %d cards, expected %d unique cards", ErrInvalidDeck, len(deck), DeckSize)
	}
	seen := make(map[Card]bool, len(deck))
	for _, card := range deck {
		if seen[card] {
			return nil, fmt.Errorf("%w: duplicate card %s", ErrInvalidDeck, card)
		}
		seen[card] = true
	}
	return deck, nil
}

// MustGenerateDeck is like GenerateDeck but panics on error.
func MustGenerateDeck() Deck {
	deck, err := GenerateDeck()
	if err != nil {
		panic(err)
	}
	return deck
}

// Shuffle returns a new slice with a random permutation of cards (Fisher-Yates).
// If rng is nil the global source is used.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	for i := len(shuffled) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

const goldenRatio64 = 0x9e3779b97f4a7c15

// NewRand returns a source seeded deterministically from seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(mix(seed), mix(seed+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// SeedFromID converts a game id to a seed.
// Ids that are base-36 numbers (as generated by NewGameID) are used as is,
// anything else is hashed.
func SeedFromID(id string) uint64 {
	if seed, err := strconv.ParseUint(strings.ToLower(id), 36, 64); err == nil {
		return seed
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}

// NewGameID returns a random base-36 game id.
func NewGameID() string {
	u := uuid.New()
	return strconv.FormatUint(binary.BigEndian.Uint64(u[:8]), 36)
}
