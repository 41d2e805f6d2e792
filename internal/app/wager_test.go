package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guandan/internal/domain"
)

func endedRound(bet int64, order []int) *domain.Round {
	r := domain.NewRound("r1", domain.Rank2, bet)
	r.Phase = domain.PhaseEnded
	r.FinishOrder = order
	for i, seat := range order {
		r.Seats[seat].Finished = true
		r.Seats[seat].FinishRank = i + 1
	}
	return r
}

func TestSettleRewardsByRank(t *testing.T) {
	r := endedRound(100, []int{2, 0, 3, 1})
	rewards := Settle(r, nil)
	require.Len(t, rewards, domain.NumSeats)

	assert.Equal(t, SeatReward{Seat: 2, FinishRank: 1, Delta: 200}, rewards[0])
	assert.Equal(t, SeatReward{Seat: 0, FinishRank: 2, Delta: 100}, rewards[1])
	assert.Equal(t, SeatReward{Seat: 3, FinishRank: 3, Delta: -50}, rewards[2])
	assert.Equal(t, SeatReward{Seat: 1, FinishRank: 4, Delta: -100}, rewards[3])

	var sum int64
	for _, rw := range rewards {
		sum += rw.Delta
	}
	assert.Equal(t, int64(150), sum, "the table pays out half the stake net")
}

func TestSettleDoublesWinningsOnly(t *testing.T) {
	r := endedRound(100, []int{0, 1, 2, 3})
	rewards := Settle(r, map[int]bool{0: true, 3: true})

	assert.Equal(t, int64(400), rewards[0].Delta, "winner's perk doubles the gain")
	assert.Equal(t, int64(-100), rewards[3].Delta, "losses are never doubled")
}

func TestSettleOddBetRoundsTowardZero(t *testing.T) {
	r := endedRound(25, []int{0, 1, 2, 3})
	rewards := Settle(r, nil)
	assert.Equal(t, int64(-12), rewards[2].Delta)
}
