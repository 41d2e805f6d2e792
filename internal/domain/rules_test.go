package domain

import "testing"

func card(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

func card2(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank, Copy: 1}
}

func TestIdentifyBasicShapes(t *testing.T) {
	level := Rank2
	tests := []struct {
		name     string
		cards    []Card
		expected Play
	}{
		{
			name:     "single",
			cards:    []Card{card(SuitSpade, Rank9)},
			expected: Play{Type: Single, MainValue: 9, Length: 1},
		},
		{
			name:     "single big joker",
			cards:    []Card{card(SuitJoker, RankJokerBig)},
			expected: Play{Type: Single, MainValue: 17, Length: 1},
		},
		{
			name:     "pair",
			cards:    []Card{card(SuitSpade, RankK), card2(SuitClub, RankK)},
			expected: Play{Type: Pair, MainValue: 13, Length: 2},
		},
		{
			name:     "triple",
			cards:    []Card{card(SuitSpade, Rank7), card(SuitClub, Rank7), card(SuitDiamond, Rank7)},
			expected: Play{Type: Triple, MainValue: 7, Length: 3},
		},
		{
			name: "triple with pair",
			cards: []Card{
				card(SuitSpade, Rank7), card(SuitClub, Rank7), card(SuitDiamond, Rank7),
				card(SuitSpade, Rank4), card(SuitHeart, Rank4),
			},
			expected: Play{Type: TriplePair, MainValue: 7, Length: 5},
		},
		{
			name: "straight ace high",
			cards: []Card{
				card(SuitSpade, Rank10), card(SuitClub, RankJ), card(SuitDiamond, RankQ),
				card(SuitSpade, RankK), card(SuitClub, RankA),
			},
			expected: Play{Type: Straight, MainValue: 14, Length: 5},
		},
		{
			name: "connected pairs",
			cards: []Card{
				card(SuitSpade, Rank5), card(SuitClub, Rank5),
				card(SuitSpade, Rank6), card(SuitClub, Rank6),
				card(SuitSpade, Rank7), card(SuitClub, Rank7),
			},
			expected: Play{Type: DoubleStraight, MainValue: 7, Length: 6},
		},
		{
			name: "plate",
			cards: []Card{
				card(SuitSpade, Rank8), card(SuitClub, Rank8), card(SuitDiamond, Rank8),
				card(SuitSpade, Rank9), card(SuitClub, Rank9), card(SuitDiamond, Rank9),
			},
			expected: Play{Type: TripleStraight, MainValue: 9, Length: 6},
		},
		{
			name: "bomb of four",
			cards: []Card{
				card(SuitSpade, RankQ), card(SuitClub, RankQ),
				card(SuitDiamond, RankQ), card(SuitHeart, RankQ),
			},
			expected: Play{Type: Bomb4, MainValue: 12, Length: 4},
		},
		{
			name: "bomb of six",
			cards: []Card{
				card(SuitSpade, Rank3), card(SuitClub, Rank3), card(SuitDiamond, Rank3),
				card2(SuitSpade, Rank3), card2(SuitClub, Rank3), card2(SuitDiamond, Rank3),
			},
			expected: Play{Type: Bomb6, MainValue: 3, Length: 6},
		},
		{
			name: "straight flush",
			cards: []Card{
				card(SuitHeart, Rank5), card(SuitHeart, Rank6), card(SuitHeart, Rank7),
				card(SuitHeart, Rank8), card(SuitHeart, Rank9),
			},
			expected: Play{Type: StraightFlush, MainValue: 9, Length: 5},
		},
		{
			name:     "rocket two jokers",
			cards:    []Card{card(SuitJoker, RankJokerSmall), card(SuitJoker, RankJokerBig)},
			expected: Play{Type: Rocket, MainValue: RocketValue, Length: 2},
		},
		{
			name: "rocket four jokers",
			cards: []Card{
				card(SuitJoker, RankJokerSmall), card2(SuitJoker, RankJokerSmall),
				card(SuitJoker, RankJokerBig), card2(SuitJoker, RankJokerBig),
			},
			expected: Play{Type: Rocket, MainValue: RocketValue, Length: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Identify(tt.cards, level)
			if got == nil {
				t.Fatalf("expected %+v, got nil", tt.expected)
			}
			if *got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, *got)
			}
		})
	}
}

func TestIdentifyWildcards(t *testing.T) {
	level := Rank5

	tests := []struct {
		name     string
		cards    []Card
		expected Play
	}{
		{
			name:     "wildcard single scores as level rank",
			cards:    []Card{card(SuitHeart, Rank5)},
			expected: Play{Type: Single, MainValue: 5, Length: 1},
		},
		{
			name:     "wildcard completes pair",
			cards:    []Card{card(SuitSpade, RankK), card(SuitHeart, Rank5)},
			expected: Play{Type: Pair, MainValue: 13, Length: 2},
		},
		{
			name: "wildcard completes triple",
			cards: []Card{
				card(SuitSpade, Rank9), card(SuitClub, Rank9), card(SuitHeart, Rank5),
			},
			expected: Play{Type: Triple, MainValue: 9, Length: 3},
		},
		{
			name: "wildcard completes bomb",
			cards: []Card{
				card(SuitSpade, Rank2), card(SuitClub, Rank2), card(SuitDiamond, Rank2),
				card(SuitHeart, Rank5),
			},
			expected: Play{Type: Bomb4, MainValue: 2, Length: 4},
		},
		{
			name: "two wildcards complete a bomb from a pair",
			cards: []Card{
				card(SuitSpade, Rank2), card(SuitClub, Rank2),
				card(SuitHeart, Rank5), card2(SuitHeart, Rank5),
			},
			expected: Play{Type: Bomb4, MainValue: 2, Length: 4},
		},
		{
			name: "wildcard fills straight flush",
			cards: []Card{
				card(SuitClub, Rank6), card(SuitClub, Rank7),
				card(SuitClub, Rank9), card(SuitClub, Rank10),
				card(SuitHeart, Rank5),
			},
			expected: Play{Type: StraightFlush, MainValue: 10, Length: 5},
		},
		{
			name: "wildcard completes triple of a full house",
			cards: []Card{
				card(SuitSpade, Rank8), card(SuitClub, Rank8), card(SuitHeart, Rank5),
				card(SuitSpade, RankJ), card(SuitClub, RankJ),
			},
			expected: Play{Type: TriplePair, MainValue: 8, Length: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Identify(tt.cards, level)
			if got == nil {
				t.Fatalf("expected %+v, got nil", tt.expected)
			}
			if *got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, *got)
			}
		})
	}
}

func TestIdentifyRejects(t *testing.T) {
	level := Rank2
	tests := []struct {
		name  string
		cards []Card
	}{
		{
			name:  "mismatched pair",
			cards: []Card{card(SuitSpade, Rank4), card(SuitClub, Rank5)},
		},
		{
			name: "straight across the ace",
			cards: []Card{
				card(SuitSpade, RankQ), card(SuitClub, RankK), card(SuitDiamond, RankA),
				card(SuitJoker, RankJokerSmall), card(SuitJoker, RankJokerBig),
			},
		},
		{
			name: "straight with a gap",
			cards: []Card{
				card(SuitSpade, Rank3), card(SuitClub, Rank4), card(SuitDiamond, Rank5),
				card(SuitSpade, Rank6), card(SuitClub, Rank8),
			},
		},
		{
			name: "wildcard cannot patch a plain straight",
			cards: []Card{
				card(SuitSpade, Rank6), card(SuitClub, Rank7), card(SuitDiamond, Rank8),
				card(SuitSpade, Rank10), card(SuitHeart, Rank2),
			},
		},
		{
			name: "bomb with two distinct ranks",
			cards: []Card{
				card(SuitSpade, Rank9), card(SuitClub, Rank9),
				card(SuitDiamond, Rank10), card(SuitHeart, Rank10),
			},
		},
		{
			name: "four of a kind plus junk",
			cards: []Card{
				card(SuitSpade, RankQ), card(SuitClub, RankQ), card(SuitDiamond, RankQ),
				card(SuitHeart, RankQ), card(SuitSpade, Rank3), card(SuitClub, Rank4),
			},
		},
		{
			name:  "empty set",
			cards: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identify(tt.cards, level); got != nil {
				t.Errorf("expected nil, got %+v", *got)
			}
		})
	}
}

func TestIdentifyLevelBombScenario(t *testing.T) {
	// Playing at level 2, all four printed 2s form a bomb even though the
	// heart is the round's wildcard.
	cards := []Card{
		card(SuitSpade, Rank2), card(SuitHeart, Rank2),
		card(SuitDiamond, Rank2), card(SuitClub, Rank2),
	}
	got := Identify(cards, Rank2)
	if got == nil {
		t.Fatal("expected a bomb, got nil")
	}
	expected := Play{Type: Bomb4, MainValue: 2, Length: 4}
	if *got != expected {
		t.Errorf("expected %+v, got %+v", expected, *got)
	}
}

func TestCanBeat(t *testing.T) {
	tests := []struct {
		name     string
		prev     *Play
		next     *Play
		expected bool
	}{
		{
			name:     "higher single beats lower",
			prev:     &Play{Type: Single, MainValue: 9, Length: 1},
			next:     &Play{Type: Single, MainValue: 10, Length: 1},
			expected: true,
		},
		{
			name:     "equal value does not beat",
			prev:     &Play{Type: Pair, MainValue: 9, Length: 2},
			next:     &Play{Type: Pair, MainValue: 9, Length: 2},
			expected: false,
		},
		{
			name:     "pair cannot beat single",
			prev:     &Play{Type: Single, MainValue: 5, Length: 1},
			next:     &Play{Type: Pair, MainValue: 14, Length: 2},
			expected: false,
		},
		{
			name:     "longer straight cannot beat shorter",
			prev:     &Play{Type: Straight, MainValue: 10, Length: 5},
			next:     &Play{Type: Straight, MainValue: 14, Length: 6},
			expected: false,
		},
		{
			name:     "bomb beats any non-bomb",
			prev:     &Play{Type: Straight, MainValue: 14, Length: 5},
			next:     &Play{Type: Bomb4, MainValue: 2, Length: 4},
			expected: true,
		},
		{
			name:     "bigger bomb size wins regardless of rank",
			prev:     &Play{Type: Bomb4, MainValue: 14, Length: 4},
			next:     &Play{Type: Bomb5, MainValue: 2, Length: 5},
			expected: true,
		},
		{
			name:     "same size bomb compares by rank",
			prev:     &Play{Type: Bomb5, MainValue: 9, Length: 5},
			next:     &Play{Type: Bomb5, MainValue: 10, Length: 5},
			expected: true,
		},
		{
			name:     "straight flush beats six card bomb",
			prev:     &Play{Type: Bomb6, MainValue: 14, Length: 6},
			next:     &Play{Type: StraightFlush, MainValue: 9, Length: 5},
			expected: true,
		},
		{
			name:     "seven card bomb beats straight flush",
			prev:     &Play{Type: StraightFlush, MainValue: 14, Length: 5},
			next:     &Play{Type: Bomb7, MainValue: 2, Length: 7},
			expected: true,
		},
		{
			name:     "rocket beats everything",
			prev:     &Play{Type: Bomb8, MainValue: 14, Length: 8},
			next:     &Play{Type: Rocket, MainValue: RocketValue, Length: 2},
			expected: true,
		},
		{
			name:     "nothing beats a rocket",
			prev:     &Play{Type: Rocket, MainValue: RocketValue, Length: 2},
			next:     &Play{Type: Bomb8, MainValue: 14, Length: 8},
			expected: false,
		},
		{
			name:     "non-bomb cannot beat bomb",
			prev:     &Play{Type: Bomb4, MainValue: 2, Length: 4},
			next:     &Play{Type: Straight, MainValue: 14, Length: 5},
			expected: false,
		},
		{
			name:     "nil previous never beatable",
			prev:     nil,
			next:     &Play{Type: Single, MainValue: 17, Length: 1},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanBeat(tt.prev, tt.next); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
