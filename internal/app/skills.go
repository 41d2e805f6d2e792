package app

import (
	"errors"
	"math/rand"

	"guandan/internal/domain"
)

// SkillID names a round perk a seat may hold.
type SkillID string

const (
	SkillBombBoost   SkillID = "bomb_boost"
	SkillShuffleHand SkillID = "shuffle_hand"
	SkillXRay        SkillID = "xray"
	SkillDoubleScore SkillID = "double_score"
	SkillHintPlus    SkillID = "hint_plus"
)

// Skill describes one perk. Passive skills apply automatically; active ones
// are triggered by the holder during play.
type Skill struct {
	ID      SkillID `json:"id"`
	Name    string  `json:"name"`
	Passive bool    `json:"passive"`
}

var skillCatalog = []Skill{
	{ID: SkillBombBoost, Name: "Bomb Boost"},
	{ID: SkillShuffleHand, Name: "Fresh Draw"},
	{ID: SkillXRay, Name: "X-Ray"},
	{ID: SkillDoubleScore, Name: "Double Score", Passive: true},
	{ID: SkillHintPlus, Name: "Keen Hint", Passive: true},
}

var ErrNoBoostableTriple = errors.New("no exact three of a kind to boost")

// SkillOptions draws n distinct skills from the catalog.
func SkillOptions(rng *rand.Rand, n int) []Skill {
	if n > len(skillCatalog) {
		n = len(skillCatalog)
	}
	perm := rng.Perm(len(skillCatalog))
	out := make([]Skill, 0, n)
	for _, i := range perm[:n] {
		out = append(out, skillCatalog[i])
	}
	return out
}

var boostSuits = []domain.Suit{
	domain.SuitSpade, domain.SuitHeart, domain.SuitDiamond, domain.SuitClub,
}

var boostRanks = []domain.Rank{
	domain.Rank2, domain.Rank3, domain.Rank4, domain.Rank5, domain.Rank6,
	domain.Rank7, domain.Rank8, domain.Rank9, domain.Rank10,
	domain.RankJ, domain.RankQ, domain.RankK, domain.RankA,
}

// BoostTriple grows a held exact three of a kind into four, conjuring a
// fourth card of a random suit. The new card gets a copy id above the dealt
// packs so it stays distinct from the real copies.
func BoostTriple(rng *rand.Rand, round *domain.Round, seat int) (domain.Card, error) {
	hand := round.Seats[seat].Hand
	counts := make(map[domain.Rank]int)
	for _, c := range hand {
		if !c.IsJoker() {
			counts[c.Rank]++
		}
	}
	candidates := make([]domain.Rank, 0, len(counts))
	for r, n := range counts {
		if n == 3 {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return domain.Card{}, ErrNoBoostableTriple
	}

	rank := candidates[rng.Intn(len(candidates))]
	card := domain.Card{
		Suit: boostSuits[rng.Intn(len(boostSuits))],
		Rank: rank,
		Copy: round.NextCopy(),
	}
	round.Seats[seat].Hand = append(round.Seats[seat].Hand, card)
	domain.SortCards(round.Seats[seat].Hand, round.Level)
	return card, nil
}

// ReplaceRandomCards swaps n random cards of the seat's hand for freshly
// conjured ones. Hand size is unchanged.
func ReplaceRandomCards(rng *rand.Rand, round *domain.Round, seat int, n int) []domain.Card {
	hand := round.Seats[seat].Hand
	if n > len(hand) {
		n = len(hand)
	}
	replaced := make([]domain.Card, 0, n)
	for _, idx := range rng.Perm(len(hand))[:n] {
		fresh := domain.Card{
			Suit: boostSuits[rng.Intn(len(boostSuits))],
			Rank: boostRanks[rng.Intn(len(boostRanks))],
			Copy: round.NextCopy(),
		}
		hand[idx] = fresh
		replaced = append(replaced, fresh)
	}
	domain.SortCards(hand, round.Level)
	return replaced
}

// PeekHand reveals the first peekSize cards of each opposing seat's sorted
// hand. The teammate's hand stays hidden.
func PeekHand(round *domain.Round, seat int, peekSize int) map[int][]domain.Card {
	out := make(map[int][]domain.Card)
	for i, s := range round.Seats {
		if domain.TeamForSeat(i) == domain.TeamForSeat(seat) || s.Finished {
			continue
		}
		n := peekSize
		if n > len(s.Hand) {
			n = len(s.Hand)
		}
		out[i] = append([]domain.Card(nil), s.Hand[:n]...)
	}
	return out
}
