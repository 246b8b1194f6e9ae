package game

// IsSet reports whether the cards form a Set: exactly three cards where each
// attribute is either the same on all of them or different on all of them.
// Any other number of cards is not a Set.
func IsSet(cards ...Card) bool {
	if len(cards) != SetSize {
		return false
	}
	a, b, c := cards[0].attrs(), cards[1].attrs(), cards[2].attrs()
	for i := range a {
		allEqual := a[i] == b[i] && b[i] == c[i]
		allDifferent := a[i] != b[i] && b[i] != c[i] && a[i] != c[i]
		if !allEqual && !allDifferent {
			return false
		}
	}
	return true
}

// ThirdCard returns the only card that makes a Set with a and b.
// If a == b the result is a itself, which is not a Set.
func ThirdCard(a, b Card) Card {
	x, y := a.attrs(), b.attrs()
	var z [4]uint8
	for i := range x {
		if x[i] == y[i] {
			z[i] = x[i]
		} else {
			// The three values are 0, 1 and 2.
			z[i] = 3 - x[i] - y[i]
		}
	}
	return cardFromAttrs(z)
}

// FindSet returns the first Set among cards, ordered by the positions of its
// cards in the slice.
func FindSet(cards []Card) (set [SetSize]Card, found bool) {
	position := make(map[Card]int, len(cards))
	for i, card := range cards {
		if _, dup := position[card]; !dup {
			position[card] = i
		}
	}
	for i := range cards {
		for j := i + 1; j < len(cards); j++ {
			if cards[i] == cards[j] {
				continue
			}
			k, ok := position[ThirdCard(cards[i], cards[j])]
			if ok && k > j {
				return [SetSize]Card{cards[i], cards[j], cards[k]}, true
			}
		}
	}
	return set, false
}

// CountSets returns how many distinct Sets can be formed from cards.
func CountSets(cards []Card) int {
	present := make(map[Card]bool, len(cards))
	for _, card := range cards {
		present[card] = true
	}
	count := 0
	for i := range cards {
		for j := i + 1; j < len(cards); j++ {
			if cards[i] == cards[j] {
				continue
			}
			third := ThirdCard(cards[i], cards[j])
			if present[third] {
				count++
			}
		}
	}
	// Each Set was counted once per pair.
	return count / SetSize
}
