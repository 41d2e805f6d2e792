package app

import "guandan/internal/domain"

// SeatReward is one seat's settlement for a finished round.
type SeatReward struct {
	Seat       int   `json:"seat"`
	FinishRank int   `json:"finish_rank"`
	Delta      int64 `json:"delta"`
}

// RankRewards returns the stake multiplier applied to each finish rank:
// the winner sweeps double the bet, the runner-up takes the bet, the third
// place surrenders half and the last the whole stake.
func RankRewards(bet int64) [domain.NumSeats]int64 {
	return [domain.NumSeats]int64{
		2 * bet,
		bet,
		-bet / 2,
		-bet,
	}
}

// Settle computes every seat's coin delta from the round's finish order.
// Finish ranks are 1-based. Seats holding the score-doubling perk have
// positive deltas doubled; losses are never amplified.
func Settle(round *domain.Round, doubled map[int]bool) []SeatReward {
	rewards := RankRewards(round.Bet)
	out := make([]SeatReward, 0, domain.NumSeats)
	for i, seat := range round.FinishOrder {
		if i >= domain.NumSeats {
			break
		}
		delta := rewards[i]
		if delta > 0 && doubled[seat] {
			delta *= 2
		}
		out = append(out, SeatReward{Seat: seat, FinishRank: i + 1, Delta: delta})
	}
	return out
}
