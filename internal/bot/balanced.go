package bot

import (
	"math/rand"
	"sort"

	"guandan/internal/domain"
)

// BalancedBot plays small when it can, holds bombs until the endgame, and
// gives a leading teammate room half the time. Its randomness comes from the
// injected source, so a seeded bot replays identically.
type BalancedBot struct {
	rng *rand.Rand
}

// NewBalancedBot builds a bot around the given random source.
func NewBalancedBot(rng *rand.Rand) *BalancedBot {
	return &BalancedBot{rng: rng}
}

const bombHoldHandSize = 6

func (b *BalancedBot) CalculateMove(round *domain.Round, seat int) (Move, error) {
	if round == nil || seat < 0 || seat >= domain.NumSeats {
		return Move{Pass: true}, nil
	}
	hand := round.Seats[seat].Hand
	if len(hand) == 0 {
		return Move{Pass: true}, nil
	}

	var last *domain.Play
	if round.LastPlay != nil {
		p := round.LastPlay.Play
		last = &p
	}
	legal := domain.FindLegalPlays(hand, last, round.Level)
	if len(legal) == 0 {
		return Move{Pass: true}, nil
	}

	if last == nil {
		return Move{Cards: b.pickLead(legal)}, nil
	}

	// Do not stomp on a teammate's lead every time.
	if domain.TeamForSeat(round.LastPlay.Seat) == domain.TeamForSeat(seat) && b.rng.Float64() < 0.5 {
		return Move{Pass: true}, nil
	}

	nonBombs := make([]domain.CandidatePlay, 0, len(legal))
	for _, cp := range legal {
		if !cp.Play.Type.IsBomb() {
			nonBombs = append(nonBombs, cp)
		}
	}
	if len(nonBombs) > 0 {
		sortByMainValue(nonBombs)
		return Move{Cards: nonBombs[0].Cards}, nil
	}

	// Only bombs remain. Spend them late, or occasionally on a whim.
	if len(hand) <= bombHoldHandSize || b.rng.Float64() < 0.3 {
		sortByMainValue(legal)
		return Move{Cards: legal[0].Cards}, nil
	}
	return Move{Pass: true}, nil
}

// pickLead opens with the cheapest combination, preferring to shed singles
// and pairs before breaking up bigger shapes. Bombs lead only when nothing
// else is left.
func (b *BalancedBot) pickLead(legal []domain.CandidatePlay) []domain.Card {
	candidates := make([]domain.CandidatePlay, 0, len(legal))
	for _, cp := range legal {
		if !cp.Play.Type.IsBomb() {
			candidates = append(candidates, cp)
		}
	}
	if len(candidates) == 0 {
		candidates = legal
	}
	sortByMainValue(candidates)

	for _, cp := range candidates {
		if cp.Play.Type == domain.Single {
			return cp.Cards
		}
	}
	for _, cp := range candidates {
		if cp.Play.Type == domain.Pair {
			return cp.Cards
		}
	}
	return candidates[0].Cards
}

func (b *BalancedBot) OnEvent(event interface{}) {}

func sortByMainValue(plays []domain.CandidatePlay) {
	sort.SliceStable(plays, func(i, j int) bool {
		return plays[i].Play.MainValue < plays[j].Play.MainValue
	})
}
