package domain

import "sort"

// PlayType classifies a combination of cards.
type PlayType int

const (
	Invalid PlayType = iota
	Single
	Pair
	Triple
	TriplePair
	Straight
	DoubleStraight
	TripleStraight
	Bomb4
	Bomb5
	Bomb6
	Bomb7
	Bomb8
	StraightFlush
	Rocket
)

var playTypeNames = map[PlayType]string{
	Invalid:        "invalid",
	Single:         "single",
	Pair:           "pair",
	Triple:         "triple",
	TriplePair:     "triple_pair",
	Straight:       "straight",
	DoubleStraight: "double_straight",
	TripleStraight: "triple_straight",
	Bomb4:          "bomb_4",
	Bomb5:          "bomb_5",
	Bomb6:          "bomb_6",
	Bomb7:          "bomb_7",
	Bomb8:          "bomb_8",
	StraightFlush:  "straight_flush",
	Rocket:         "rocket",
}

func (t PlayType) String() string { return playTypeNames[t] }

// RocketValue is the MainValue assigned to the joker bomb so it sorts above
// every rank.
const RocketValue = 9999

// BombTier returns the cross-type bomb ladder position, or 0 for non-bombs.
// Straight flushes slot between the 6- and 7-card bombs.
func (t PlayType) BombTier() int {
	switch t {
	case Bomb4:
		return 1
	case Bomb5:
		return 2
	case Bomb6:
		return 3
	case StraightFlush:
		return 4
	case Bomb7:
		return 5
	case Bomb8:
		return 6
	case Rocket:
		return 7
	default:
		return 0
	}
}

// IsBomb reports whether the type beats any non-bomb regardless of shape.
func (t PlayType) IsBomb() bool { return t.BombTier() > 0 }

func bombTypeForSize(n int) PlayType {
	switch n {
	case 4:
		return Bomb4
	case 5:
		return Bomb5
	case 6:
		return Bomb6
	case 7:
		return Bomb7
	case 8:
		return Bomb8
	default:
		return Invalid
	}
}

// Play is a classified combination. MainValue carries the rank used for
// comparison; Length the card count.
type Play struct {
	Type      PlayType `json:"type"`
	MainValue int      `json:"main_value"`
	Length    int      `json:"length"`
}

func allJokers(cards []Card) bool {
	for _, c := range cards {
		if !c.IsJoker() {
			return false
		}
	}
	return true
}

func sortedValues(counts map[int]int) []int {
	values := make([]int, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

// Identify classifies a set of cards under the given level rank, or returns
// nil when no combination matches. Detection runs in a fixed priority order:
// rocket, bombs, straight flush, then the plain shapes. A hand that could
// read several ways with different wildcard assignments therefore resolves
// deterministically to the strongest reading.
//
// Wildcards complete bombs, straight flushes, pairs, triples and the triple
// of a triple+pair. Straights, connected pairs and plates reject wildcards
// outright; that asymmetry is a deliberate rule of this engine, not an
// oversight.
func Identify(cards []Card, level Rank) *Play {
	n := len(cards)
	if n == 0 {
		return nil
	}

	wildCount := 0
	normals := make([]Card, 0, n)
	for _, c := range cards {
		if c.IsWild(level) {
			wildCount++
		} else {
			normals = append(normals, c)
		}
	}

	// Joker bomb: two or all four jokers. Four jokers are a rocket, never a
	// 4-card bomb.
	if (n == 2 || n == 4) && allJokers(cards) {
		return &Play{Type: Rocket, MainValue: RocketValue, Length: n}
	}

	counts := make(map[int]int, len(normals))
	for _, c := range normals {
		counts[c.Value()]++
	}
	values := sortedValues(counts)

	// Bombs of 4..8: at most one distinct non-wild value, wildcards fill the
	// remainder. Two distinct non-wild values can never bomb, whatever the
	// wildcard count.
	if n >= 4 && n <= 8 && len(values) <= 1 {
		main := 0
		if len(values) == 1 {
			main = values[0]
		}
		return &Play{Type: bombTypeForSize(n), MainValue: main, Length: n}
	}

	// Straight flush: the non-wild cards share one suit and form a run of
	// distinct values capped at the ace, with wildcards plugging the gaps.
	// A wildcard may extend or fill the run but never double an existing
	// value (the distinctness check below).
	if n >= 5 {
		suited := make([]Card, 0, len(normals))
		for _, c := range normals {
			if !c.IsJoker() {
				suited = append(suited, c)
			}
		}
		if len(suited) > 0 && sameSuit(suited) {
			vals := make([]int, len(suited))
			for i, c := range suited {
				vals[i] = c.Value()
			}
			sort.Ints(vals)
			if distinct(vals) {
				minV, maxV := vals[0], vals[len(vals)-1]
				if maxV <= int(RankA) && maxV-minV+1 <= n && wildCount >= n-len(suited) {
					return &Play{Type: StraightFlush, MainValue: maxV, Length: n}
				}
			}
		}
	}

	if n == 1 {
		return &Play{Type: Single, MainValue: cards[0].Value(), Length: 1}
	}

	if n == 2 {
		if wildCount > 0 || (len(values) == 1 && counts[values[0]] == 2) {
			main := 0
			if len(normals) > 0 {
				main = normals[0].Value()
			}
			return &Play{Type: Pair, MainValue: main, Length: 2}
		}
	}

	if n == 3 {
		main := 0
		if len(normals) > 0 {
			main = normals[0].Value()
		}
		if counts[main]+wildCount >= 3 {
			return &Play{Type: Triple, MainValue: main, Length: 3}
		}
	}

	// Triple + pair: pick the lowest value that can form the triple with the
	// wildcards available, then require the leftovers to pair up (possibly
	// finished by a remaining wildcard).
	if n == 5 {
		for _, v := range values {
			c := counts[v]
			if c < 3 && (c < 2 || wildCount < 1) && (c < 1 || wildCount < 2) {
				continue
			}
			usedWild := 0
			if c < 3 {
				usedWild = 3 - c
			}
			remainWild := wildCount - usedWild
			remain := make([]Card, 0, 2)
			for _, card := range normals {
				if card.Value() != v {
					remain = append(remain, card)
				}
			}
			if len(remain)+remainWild != 2 {
				continue
			}
			if len(remain) == 2 && remain[0].Value() == remain[1].Value() {
				return &Play{Type: TriplePair, MainValue: v, Length: 5}
			}
			if remainWild > 0 {
				return &Play{Type: TriplePair, MainValue: v, Length: 5}
			}
		}
	}

	// Straight: five or more consecutive distinct values, ace high, no
	// wildcards accepted.
	if n >= 5 && wildCount == 0 {
		vals := make([]int, n)
		for i, c := range cards {
			vals[i] = c.Value()
		}
		sort.Ints(vals)
		if distinct(vals) && vals[n-1]-vals[0] == n-1 && vals[n-1] <= int(RankA) {
			return &Play{Type: Straight, MainValue: vals[n-1], Length: n}
		}
	}

	// Connected pairs: three or more consecutive pair values, no wildcards.
	if n >= 6 && n%2 == 0 && wildCount == 0 {
		if main, ok := runOfGroups(counts, values, 2, n/2); ok {
			return &Play{Type: DoubleStraight, MainValue: main, Length: n}
		}
	}

	// Plate: two or more consecutive triple values, no wildcards.
	if n >= 6 && n%3 == 0 && wildCount == 0 {
		if main, ok := runOfGroups(counts, values, 3, n/3); ok {
			return &Play{Type: TripleStraight, MainValue: main, Length: n}
		}
	}

	return nil
}

func sameSuit(cards []Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

func distinct(sortedVals []int) bool {
	for i := 1; i < len(sortedVals); i++ {
		if sortedVals[i] == sortedVals[i-1] {
			return false
		}
	}
	return true
}

// runOfGroups finds `groups` consecutive values that each hold at least
// `size` cards and returns the run's highest value.
func runOfGroups(counts map[int]int, values []int, size, groups int) (int, bool) {
	eligible := make([]int, 0, len(values))
	for _, v := range values {
		if counts[v] >= size {
			eligible = append(eligible, v)
		}
	}
	for i := 0; i+groups <= len(eligible); i++ {
		window := eligible[i : i+groups]
		if window[groups-1]-window[0] == groups-1 {
			return window[groups-1], true
		}
	}
	return 0, false
}

// CanBeat reports whether next may legally be played over prev. Bombs follow
// the fixed tier ladder and beat every non-bomb; non-bombs only compare when
// type and length match exactly, and then strictly by main value. Unrelated
// non-bomb shapes are simply incomparable.
func CanBeat(prev, next *Play) bool {
	if prev == nil || next == nil {
		return false
	}
	if next.Type == Rocket {
		return true
	}
	if prev.Type == Rocket {
		return false
	}

	prevTier, nextTier := prev.Type.BombTier(), next.Type.BombTier()
	if nextTier > 0 && prevTier == 0 {
		return true
	}
	if nextTier > 0 && prevTier > 0 {
		if nextTier != prevTier {
			return nextTier > prevTier
		}
		return next.MainValue > prev.MainValue
	}
	if prevTier > 0 {
		return false
	}

	if prev.Type == next.Type && prev.Length == next.Length {
		return next.MainValue > prev.MainValue
	}
	return false
}
