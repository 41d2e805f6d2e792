package app

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"guandan/internal/domain"
)

// Service contains the round use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotPlaying         = errors.New("round not in playing phase")
	ErrBadSeat            = errors.New("seat index out of range")
	ErrNotYourTurn        = errors.New("not this seat's turn")
	ErrSeatFinished       = errors.New("seat already finished")
	ErrHandMismatch       = errors.New("cards not held by seat")
	ErrInvalidCombination = errors.New("cards form no valid combination")
	ErrIllegalBeat        = errors.New("combination does not beat the table")
	ErrCannotPass         = errors.New("cannot pass on a free lead")
)

// SeatInfo configures one seat at round start.
type SeatInfo struct {
	Name    string
	IsHuman bool
}

// StartRound deals a fresh round at the given level and stake. The opening
// turn goes to the first seat holding the heart of the level rank.
func (s *Service) StartRound(level domain.Rank, bet int64, seats [domain.NumSeats]SeatInfo) (*domain.Round, []Event, error) {
	round := domain.NewRound(uuid.NewString(), level, bet)

	deck := domain.NewDeck()
	domain.Shuffle(s.rng, deck)
	hands := domain.Deal(deck)

	events := make([]Event, 0, domain.NumSeats+1)
	for i := 0; i < domain.NumSeats; i++ {
		seat := round.Seats[i]
		seat.Name = seats[i].Name
		seat.IsHuman = seats[i].IsHuman
		seat.Hand = hands[i]
		domain.SortCards(seat.Hand, level)

		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: i, Hand: seat.Hand},
			Recipients: []int{i},
		})
	}

	round.Turn = round.FirstLeader()
	round.Phase = domain.PhasePlaying

	events = append(events, Event{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			RoundID:   round.ID,
			Level:     round.Level,
			Bet:       round.Bet,
			FirstTurn: round.Turn,
		},
	})
	return round, events, nil
}

func (s *Service) checkActor(round *domain.Round, seat int) error {
	if round.Phase != domain.PhasePlaying {
		return ErrNotPlaying
	}
	if seat < 0 || seat >= domain.NumSeats {
		return ErrBadSeat
	}
	if round.Seats[seat].Finished {
		return ErrSeatFinished
	}
	if round.Turn != seat {
		return ErrNotYourTurn
	}
	return nil
}

// PlayCards validates and applies a play, emitting the resulting events.
func (s *Service) PlayCards(round *domain.Round, seat int, cards []domain.Card) ([]Event, error) {
	if err := s.checkActor(round, seat); err != nil {
		return nil, err
	}
	actor := round.Seats[seat]
	if len(cards) == 0 || !domain.ContainsCards(actor.Hand, cards) {
		return nil, ErrHandMismatch
	}
	play := domain.Identify(cards, round.Level)
	if play == nil {
		return nil, ErrInvalidCombination
	}
	if round.LastPlay != nil {
		prev := round.LastPlay.Play
		if !domain.CanBeat(&prev, play) {
			return nil, ErrIllegalBeat
		}
	}

	played := append([]domain.Card(nil), cards...)
	actor.Hand = domain.RemoveCards(actor.Hand, cards)
	round.LastPlay = &domain.TablePlay{Seat: seat, Cards: played, Play: *play}
	round.ConsecutivePasses = 0

	var events []Event

	if len(actor.Hand) == 0 {
		actor.Finished = true
		round.FinishOrder = append(round.FinishOrder, seat)
		actor.FinishRank = len(round.FinishOrder)
		events = append(events, Event{
			Kind:    EventSeatFinished,
			Payload: SeatFinishedPayload{Seat: seat, FinishRank: actor.FinishRank},
		})
	}

	if round.CountActiveSeats() <= 1 {
		s.closeRound(round, &events)
	}

	next := -1
	if round.Phase == domain.PhasePlaying {
		next = round.NextActiveSeat(seat)
		round.Turn = next
	}

	playedEvent := Event{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			Seat:     seat,
			Cards:    played,
			Play:     *play,
			NextTurn: next,
			HandLeft: len(actor.Hand),
		},
	}
	return append([]Event{playedEvent}, events...), nil
}

// closeRound ranks the last active seat and ends the round.
func (s *Service) closeRound(round *domain.Round, events *[]Event) {
	for i, seat := range round.Seats {
		if !seat.Finished {
			seat.Finished = true
			round.FinishOrder = append(round.FinishOrder, i)
			seat.FinishRank = len(round.FinishOrder)
		}
	}
	round.Phase = domain.PhaseEnded
	round.LastPlay = nil
	*events = append(*events, Event{
		Kind:    EventRoundEnded,
		Payload: RoundEndedPayload{FinishOrder: round.FinishOrder},
	})
}

// Pass records a pass. Three passes in a row, or the table returning to the
// seat that owns it, clear the table for a free lead.
func (s *Service) Pass(round *domain.Round, seat int) ([]Event, error) {
	if err := s.checkActor(round, seat); err != nil {
		return nil, err
	}
	if round.LastPlay == nil || round.LastPlay.Seat == seat {
		return nil, ErrCannotPass
	}

	round.ConsecutivePasses++
	next := round.NextActiveSeat(seat)
	round.Turn = next

	events := []Event{{
		Kind:    EventTurnPassed,
		Payload: TurnPassedPayload{Seat: seat, NextTurn: next},
	}}

	reset := round.ConsecutivePasses >= domain.NumSeats-1
	if round.LastPlay != nil && next == round.LastPlay.Seat {
		reset = true
	}
	if reset {
		round.LastPlay = nil
		round.ConsecutivePasses = 0
		events = append(events, Event{
			Kind:    EventLeadReset,
			Payload: LeadResetPayload{NextTurn: next},
		})
	}
	return events, nil
}

// Legal lists every combination the seat may play right now.
func (s *Service) Legal(round *domain.Round, seat int) ([]domain.CandidatePlay, error) {
	if seat < 0 || seat >= domain.NumSeats {
		return nil, ErrBadSeat
	}
	var last *domain.Play
	if round.LastPlay != nil {
		p := round.LastPlay.Play
		last = &p
	}
	return domain.FindLegalPlays(round.Seats[seat].Hand, last, round.Level), nil
}

// Hint suggests the cheapest legal play, never reaching for a bomb while a
// plain beat exists, or nil when passing is the only option. With
// preferNonBomb set a bomb is never suggested at all; the hint recommends
// holding it and passing instead.
func (s *Service) Hint(round *domain.Round, seat int, preferNonBomb bool) (*domain.CandidatePlay, error) {
	legal, err := s.Legal(round, seat)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(legal, func(i, j int) bool {
		bi, bj := legal[i].Play.Type.IsBomb(), legal[j].Play.Type.IsBomb()
		if bi != bj {
			return bj
		}
		return legal[i].Play.MainValue < legal[j].Play.MainValue
	})
	for _, cp := range legal {
		if preferNonBomb && cp.Play.Type.IsBomb() {
			break
		}
		pick := cp
		return &pick, nil
	}
	return nil, nil
}

// SnapshotSeat is one seat as seen by a viewer: full hand for the viewer,
// card count only for everyone else.
type SnapshotSeat struct {
	Index      int           `json:"index"`
	Name       string        `json:"name"`
	IsHuman    bool          `json:"is_human"`
	CardsLeft  int           `json:"cards_left"`
	Finished   bool          `json:"finished"`
	FinishRank int           `json:"finish_rank"`
	Hand       []domain.Card `json:"hand,omitempty"`
}

// Snapshot is a viewer-scoped picture of the round.
type Snapshot struct {
	RoundID     string            `json:"round_id"`
	Level       domain.Rank       `json:"level"`
	Bet         int64             `json:"bet"`
	Phase       domain.Phase      `json:"phase"`
	Turn        int               `json:"turn"`
	LastPlay    *domain.TablePlay `json:"last_play,omitempty"`
	Seats       []SnapshotSeat    `json:"seats"`
	FinishOrder []int             `json:"finish_order"`
}

// SnapshotFor builds the round state as the viewer seat is allowed to see
// it. A negative viewer yields a spectator view with every hand hidden.
func (s *Service) SnapshotFor(round *domain.Round, viewer int) Snapshot {
	snap := Snapshot{
		RoundID:     round.ID,
		Level:       round.Level,
		Bet:         round.Bet,
		Phase:       round.Phase,
		Turn:        round.Turn,
		LastPlay:    round.LastPlay,
		FinishOrder: round.FinishOrder,
	}
	for i, seat := range round.Seats {
		ss := SnapshotSeat{
			Index:      seat.Index,
			Name:       seat.Name,
			IsHuman:    seat.IsHuman,
			CardsLeft:  len(seat.Hand),
			Finished:   seat.Finished,
			FinishRank: seat.FinishRank,
		}
		if i == viewer {
			ss.Hand = seat.Hand
		}
		snap.Seats = append(snap.Seats, ss)
	}
	return snap
}
