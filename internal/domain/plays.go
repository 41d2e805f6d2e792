package domain

import "sort"

// CandidatePlay pairs a concrete card selection with its classification.
type CandidatePlay struct {
	Cards []Card `json:"cards"`
	Play  Play   `json:"play"`
}

// FindAllPlays enumerates the combinations a hand can form without
// reassigning wildcards: every card keeps its face value, so a level heart
// only ever appears as its printed rank here. The result is not exhaustive
// over wildcard readings, but it covers everything the hint and the bots
// need, cheaply.
func FindAllPlays(hand []Card, level Rank) []CandidatePlay {
	if len(hand) == 0 {
		return nil
	}

	byValue := make(map[int][]Card)
	for _, c := range hand {
		byValue[c.Value()] = append(byValue[c.Value()], c)
	}
	values := make([]int, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	sort.Ints(values)

	var out []CandidatePlay
	add := func(cards []Card) {
		if p := Identify(cards, level); p != nil {
			out = append(out, CandidatePlay{Cards: cards, Play: *p})
		}
	}

	// Singles, one per distinct value, in hand order within a value.
	for _, v := range values {
		add([]Card{byValue[v][0]})
	}

	// Pairs and triples from natural multiples.
	for _, v := range values {
		group := byValue[v]
		if len(group) >= 2 && v <= int(RankA) {
			add(append([]Card(nil), group[:2]...))
		}
		if len(group) >= 3 {
			add(append([]Card(nil), group[:3]...))
		}
	}

	// Triple + pair: every triple value crossed with every other pair value.
	for _, tv := range values {
		if len(byValue[tv]) < 3 {
			continue
		}
		for _, pv := range values {
			if pv == tv || len(byValue[pv]) < 2 || pv > int(RankA) {
				continue
			}
			cards := append([]Card(nil), byValue[tv][:3]...)
			cards = append(cards, byValue[pv][:2]...)
			add(cards)
		}
	}

	// Straights: consecutive distinct-value windows, one card per value.
	// Cards are picked suit-diverse so a mixed-suit hand always yields the
	// plain straight reading; a fully suited window is offered separately.
	maxLen := len(values)
	if maxLen > 12 {
		maxLen = 12
	}
	for length := 5; length <= maxLen; length++ {
		for i := 0; i+length <= len(values); i++ {
			window := values[i : i+length]
			if window[length-1]-window[0] != length-1 || window[length-1] > int(RankA) {
				continue
			}
			cards := make([]Card, 0, length)
			for _, v := range window {
				cards = append(cards, straightCard(byValue[v], cards, level))
			}
			add(cards)
			if flush := suitedWindow(byValue, window); flush != nil && !sameSuit(cards) {
				add(flush)
			}
		}
	}

	// Connected pairs: consecutive values that each hold at least a pair.
	pairValues := make([]int, 0, len(values))
	for _, v := range values {
		if len(byValue[v]) >= 2 && v <= int(RankA) {
			pairValues = append(pairValues, v)
		}
	}
	for groups := 3; groups <= len(pairValues); groups++ {
		for i := 0; i+groups <= len(pairValues); i++ {
			window := pairValues[i : i+groups]
			if window[groups-1]-window[0] != groups-1 {
				continue
			}
			cards := make([]Card, 0, groups*2)
			for _, v := range window {
				cards = append(cards, byValue[v][:2]...)
			}
			add(cards)
		}
	}

	// Plates: consecutive triple values.
	tripleValues := make([]int, 0, len(values))
	for _, v := range values {
		if len(byValue[v]) >= 3 && v <= int(RankA) {
			tripleValues = append(tripleValues, v)
		}
	}
	for groups := 2; groups <= len(tripleValues); groups++ {
		for i := 0; i+groups <= len(tripleValues); i++ {
			window := tripleValues[i : i+groups]
			if window[groups-1]-window[0] != groups-1 {
				continue
			}
			cards := make([]Card, 0, groups*3)
			for _, v := range window {
				cards = append(cards, byValue[v][:3]...)
			}
			add(cards)
		}
	}

	// Bombs from natural multiples, every size the count supports.
	for _, v := range values {
		group := byValue[v]
		if len(group) < 4 {
			continue
		}
		top := len(group)
		if top > 8 {
			top = 8
		}
		for size := 4; size <= top; size++ {
			add(append([]Card(nil), group[:size]...))
		}
	}

	// Rocket from the first two jokers held.
	jokers := make([]Card, 0, 4)
	for _, c := range hand {
		if c.IsJoker() {
			jokers = append(jokers, c)
		}
	}
	if len(jokers) >= 2 {
		add(jokers[:2])
	}

	return out
}

// straightCard picks one card of a straight window's value group, avoiding
// wildcards and, past the first value, the suit already opened so the window
// reads as a plain straight whenever the hand allows.
func straightCard(group []Card, picked []Card, level Rank) Card {
	pick := group[0]
	for _, c := range group[1:] {
		if c.IsWild(level) {
			continue
		}
		if pick.IsWild(level) {
			pick = c
			continue
		}
		if len(picked) > 0 && pick.Suit == picked[0].Suit && c.Suit != picked[0].Suit {
			pick = c
		}
	}
	return pick
}

// suitedWindow selects one card per window value from a single suit, or nil
// when no suit covers the whole window.
func suitedWindow(byValue map[int][]Card, window []int) []Card {
	for _, suit := range []Suit{SuitSpade, SuitHeart, SuitDiamond, SuitClub} {
		cards := make([]Card, 0, len(window))
		for _, v := range window {
			for _, c := range byValue[v] {
				if c.Suit == suit {
					cards = append(cards, c)
					break
				}
			}
		}
		if len(cards) == len(window) {
			return cards
		}
	}
	return nil
}

// FindLegalPlays narrows FindAllPlays to combinations that beat last. A nil
// last means a free lead and every combination qualifies.
func FindLegalPlays(hand []Card, last *Play, level Rank) []CandidatePlay {
	all := FindAllPlays(hand, level)
	if last == nil {
		return all
	}
	legal := make([]CandidatePlay, 0, len(all))
	for _, cp := range all {
		p := cp.Play
		if CanBeat(last, &p) {
			legal = append(legal, cp)
		}
	}
	return legal
}
