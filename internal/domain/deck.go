package domain

import (
	"math/rand"
	"sort"
)

const (
	// DeckSize is two full 54-card packs.
	DeckSize = 108
	// HandSize is the deal size for each of the four seats.
	HandSize = 27
	// NumSeats is fixed for the four-player game.
	NumSeats = 4
)

// NewDeck returns the full 108-card double deck in pack order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for copyID := uint8(0); copyID < 2; copyID++ {
		for _, s := range suits {
			for _, r := range ranks {
				deck = append(deck, Card{Suit: s, Rank: r, Copy: copyID})
			}
		}
		deck = append(deck, Card{Suit: SuitJoker, Rank: RankJokerSmall, Copy: copyID})
		deck = append(deck, Card{Suit: SuitJoker, Rank: RankJokerBig, Copy: copyID})
	}
	return deck
}

// Shuffle permutes the deck in place using the provided source.
func Shuffle(rng *rand.Rand, deck []Card) {
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}

// Deal splits a shuffled deck into four 27-card hands. The shuffle alone
// provides fairness; the cut points are fixed.
func Deal(deck []Card) [NumSeats][]Card {
	var hands [NumSeats][]Card
	for i := 0; i < NumSeats; i++ {
		hands[i] = append([]Card{}, deck[i*HandSize:(i+1)*HandSize]...)
	}
	return hands
}

// SortCards orders a hand in place for display, strongest first.
func SortCards(cards []Card, level Rank) {
	sort.SliceStable(cards, func(i, j int) bool {
		return SortValue(cards[i], level) > SortValue(cards[j], level)
	})
}
