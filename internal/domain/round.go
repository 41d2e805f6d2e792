package domain

import "fmt"

// Phase tracks where a round is in its lifecycle.
type Phase string

const (
	PhaseDealing Phase = "dealing"
	PhasePlaying Phase = "playing"
	PhaseEnded   Phase = "ended"
)

// Team is a crosswise pairing of seats: 0 with 2, 1 with 3.
type Team int

const (
	TeamEven Team = 0
	TeamOdd  Team = 1
)

// TeamForSeat maps a seat index to its team.
func TeamForSeat(seat int) Team {
	return Team(seat % 2)
}

// Seat is one player's position and hand within a round.
type Seat struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	IsHuman    bool   `json:"is_human"`
	Hand       []Card `json:"hand"`
	Finished   bool   `json:"finished"`
	FinishRank int    `json:"finish_rank"`
}

// TablePlay is the combination currently holding the table.
type TablePlay struct {
	Seat  int    `json:"seat"`
	Cards []Card `json:"cards"`
	Play  Play   `json:"play"`
}

// Round is the full state of one deal. Bet is the stake per seat; Level the
// rank whose hearts act as wildcards this round.
type Round struct {
	ID                string          `json:"id"`
	Level             Rank            `json:"level"`
	Bet               int64           `json:"bet"`
	Phase             Phase           `json:"phase"`
	Seats             [NumSeats]*Seat `json:"seats"`
	Turn              int             `json:"turn"`
	LastPlay          *TablePlay      `json:"last_play"`
	ConsecutivePasses int             `json:"consecutive_passes"`
	FinishOrder       []int           `json:"finish_order"`

	nextCopy uint8
}

// NewRound builds a round shell with empty seats. Hands are dealt by the
// caller.
func NewRound(id string, level Rank, bet int64) *Round {
	r := &Round{
		ID:       id,
		Level:    level,
		Bet:      bet,
		Phase:    PhaseDealing,
		nextCopy: 2,
	}
	for i := 0; i < NumSeats; i++ {
		r.Seats[i] = &Seat{Index: i, FinishRank: -1}
	}
	return r
}

// NextCopy hands out copy ids above the two physical packs, so cards
// conjured mid-round never collide with dealt ones.
func (r *Round) NextCopy() uint8 {
	id := r.nextCopy
	r.nextCopy++
	return id
}

// FirstLeader is the seat that opens the round: the lowest seat index
// holding the heart of the level rank. Seat 0 leads if nobody does, which
// only happens when both copies sit in the discard of a malformed deal.
func (r *Round) FirstLeader() int {
	for i := 0; i < NumSeats; i++ {
		for _, c := range r.Seats[i].Hand {
			if c.Suit == SuitHeart && c.Rank == r.Level {
				return i
			}
		}
	}
	return 0
}

// NextActiveSeat returns the next seat after from, clockwise, that has not
// finished. Returns -1 when every seat is done.
func (r *Round) NextActiveSeat(from int) int {
	for step := 1; step <= NumSeats; step++ {
		seat := (from + step) % NumSeats
		if !r.Seats[seat].Finished {
			return seat
		}
	}
	return -1
}

// CountActiveSeats is the number of seats still holding cards.
func (r *Round) CountActiveSeats() int {
	n := 0
	for _, s := range r.Seats {
		if !s.Finished {
			n++
		}
	}
	return n
}

// ContainsCards reports whether hand holds every card in cards, respecting
// multiplicity.
func ContainsCards(hand, cards []Card) bool {
	held := make(map[Card]int, len(hand))
	for _, c := range hand {
		held[c]++
	}
	for _, c := range cards {
		if held[c] == 0 {
			return false
		}
		held[c]--
	}
	return true
}

// RemoveCards returns hand minus cards, removing one occurrence per listed
// card. The input slices are not modified.
func RemoveCards(hand, cards []Card) []Card {
	drop := make(map[Card]int, len(cards))
	for _, c := range cards {
		drop[c]++
	}
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if drop[c] > 0 {
			drop[c]--
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *Seat) String() string {
	return fmt.Sprintf("seat %d (%s, %d cards)", s.Index, s.Name, len(s.Hand))
}
