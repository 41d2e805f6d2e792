package domain

import "fmt"

// Suit identifies a card's suit. Jokers carry SuitJoker.
type Suit string

const (
	SuitSpade   Suit = "spade"
	SuitHeart   Suit = "heart"
	SuitDiamond Suit = "diamond"
	SuitClub    Suit = "club"
	SuitJoker   Suit = "joker"
)

// Rank is a card's face value. Number cards map to themselves, J/Q/K/A to
// 11..14, jokers to 16/17 (15 is deliberately unused so joker runs can never
// chain onto an ace).
type Rank int

const (
	Rank2  Rank = 2
	Rank3  Rank = 3
	Rank4  Rank = 4
	Rank5  Rank = 5
	Rank6  Rank = 6
	Rank7  Rank = 7
	Rank8  Rank = 8
	Rank9  Rank = 9
	Rank10 Rank = 10
	RankJ  Rank = 11
	RankQ  Rank = 12
	RankK  Rank = 13
	RankA  Rank = 14

	RankJokerSmall Rank = 16
	RankJokerBig   Rank = 17
)

// suits and ranks enumerate one 54-card pack in deck-construction order.
var suits = []Suit{SuitSpade, SuitHeart, SuitDiamond, SuitClub}

var ranks = []Rank{
	Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8, Rank9, Rank10,
	RankJ, RankQ, RankK, RankA,
}

func (r Rank) String() string {
	switch r {
	case RankJ:
		return "J"
	case RankQ:
		return "Q"
	case RankK:
		return "K"
	case RankA:
		return "A"
	case RankJokerSmall:
		return "joker_s"
	case RankJokerBig:
		return "joker_b"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Card is an immutable playing card. Copy distinguishes the two physical
// packs (0 and 1); cards conjured by skill effects use higher copy ids so
// every card identity in play stays unique.
type Card struct {
	Suit Suit  `json:"suit"`
	Rank Rank  `json:"rank"`
	Copy uint8 `json:"copy"`
}

// Value returns the card's numeric strength before any wildcard handling.
func (c Card) Value() int { return int(c.Rank) }

// IsJoker reports whether the card is either joker.
func (c Card) IsJoker() bool { return c.Suit == SuitJoker }

// IsWild reports whether the card acts as the free substitute for the round:
// the heart of the current level rank.
func (c Card) IsWild(level Rank) bool {
	return c.Suit == SuitHeart && c.Rank == level
}

func (c Card) String() string {
	if c.IsJoker() {
		return string(c.Rank.String())
	}
	return c.Rank.String() + string(c.Suit[0])
}

// suitWeight fixes the display tiebreak between same-rank cards:
// spade > heart > diamond > club.
func suitWeight(s Suit) int {
	switch s {
	case SuitSpade:
		return 4
	case SuitHeart:
		return 3
	case SuitDiamond:
		return 2
	case SuitClub:
		return 1
	default:
		return 0
	}
}

// SortValue is the display ordering key: big joker, small joker, then the
// wildcard, then everything else by rank with the fixed suit tiebreak.
// It is not the play-comparison order; plays compare through CanBeat.
func SortValue(c Card, level Rank) int {
	switch {
	case c.Rank == RankJokerBig:
		return 9999
	case c.Rank == RankJokerSmall:
		return 9998
	case c.IsWild(level):
		return 9990
	default:
		return c.Value()*10 + suitWeight(c.Suit)
	}
}
