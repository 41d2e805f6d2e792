package app

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guandan/internal/domain"
)

func skillRound(hand []domain.Card) *domain.Round {
	r := domain.NewRound("r1", domain.Rank2, 100)
	r.Phase = domain.PhasePlaying
	r.Seats[0].Hand = hand
	return r
}

func TestSkillOptionsDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	opts := SkillOptions(rng, 3)
	require.Len(t, opts, 3)

	seen := make(map[SkillID]bool)
	for _, s := range opts {
		assert.False(t, seen[s.ID], "skill %s offered twice", s.ID)
		seen[s.ID] = true
	}

	all := SkillOptions(rng, 99)
	assert.Len(t, all, len(skillCatalog))
}

func TestBoostTripleAddsFourthCard(t *testing.T) {
	r := skillRound([]domain.Card{
		{Suit: domain.SuitSpade, Rank: domain.Rank8},
		{Suit: domain.SuitClub, Rank: domain.Rank8},
		{Suit: domain.SuitDiamond, Rank: domain.Rank8},
		{Suit: domain.SuitSpade, Rank: domain.RankK},
	})
	rng := rand.New(rand.NewSource(1))

	added, err := BoostTriple(rng, r, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.Rank8, added.Rank)
	assert.GreaterOrEqual(t, added.Copy, uint8(2), "conjured card sits above the dealt packs")
	assert.Len(t, r.Seats[0].Hand, 5)

	count := 0
	for _, c := range r.Seats[0].Hand {
		if c.Rank == domain.Rank8 {
			count++
		}
	}
	assert.Equal(t, 4, count)
}

func TestBoostTripleNeedsExactTriple(t *testing.T) {
	r := skillRound([]domain.Card{
		{Suit: domain.SuitSpade, Rank: domain.Rank8},
		{Suit: domain.SuitClub, Rank: domain.Rank8},
		{Suit: domain.SuitSpade, Rank: domain.RankK},
	})
	_, err := BoostTriple(rand.New(rand.NewSource(1)), r, 0)
	assert.ErrorIs(t, err, ErrNoBoostableTriple)
}

func TestReplaceRandomCardsKeepsHandSize(t *testing.T) {
	hand := []domain.Card{
		{Suit: domain.SuitSpade, Rank: domain.Rank3},
		{Suit: domain.SuitClub, Rank: domain.Rank7},
		{Suit: domain.SuitDiamond, Rank: domain.RankJ},
	}
	r := skillRound(append([]domain.Card(nil), hand...))

	replaced := ReplaceRandomCards(rand.New(rand.NewSource(5)), r, 0, 2)
	require.Len(t, replaced, 2)
	assert.Len(t, r.Seats[0].Hand, len(hand))
	for _, c := range replaced {
		assert.GreaterOrEqual(t, c.Copy, uint8(2))
	}
}

func TestPeekHandRevealsOpponentsOnly(t *testing.T) {
	r := domain.NewRound("r1", domain.Rank2, 100)
	for i := 0; i < domain.NumSeats; i++ {
		r.Seats[i].Hand = []domain.Card{
			{Suit: domain.SuitSpade, Rank: domain.Rank5},
			{Suit: domain.SuitClub, Rank: domain.Rank6},
			{Suit: domain.SuitDiamond, Rank: domain.Rank7},
		}
	}
	r.Seats[3].Finished = true
	r.Seats[3].Hand = nil

	peek := PeekHand(r, 0, 2)
	assert.NotContains(t, peek, 0, "own hand is not peeked")
	assert.NotContains(t, peek, 2, "teammate's hand stays hidden")
	assert.NotContains(t, peek, 3, "finished seats are not peeked")
	require.Len(t, peek, 1)
	assert.Len(t, peek[1], 2)
}
