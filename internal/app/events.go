package app

import "guandan/internal/domain"

// EventKind identifies emitted round events for transport dispatch.
type EventKind string

const (
	EventRoundStarted EventKind = "round_started"
	EventHandDealt    EventKind = "hand_dealt"
	EventCardPlayed   EventKind = "card_played"
	EventTurnPassed   EventKind = "turn_passed"
	EventLeadReset    EventKind = "lead_reset"
	EventSeatFinished EventKind = "seat_finished"
	EventSkillUsed    EventKind = "skill_used"
	EventRoundEnded   EventKind = "round_ended"
)

// Event is a round event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []int // seat indexes; empty means broadcast
}

type RoundStartedPayload struct {
	RoundID   string
	Level     domain.Rank
	Bet       int64
	FirstTurn int
}

type HandDealtPayload struct {
	Seat int
	Hand []domain.Card
}

type CardPlayedPayload struct {
	Seat     int
	Cards    []domain.Card
	Play     domain.Play
	NextTurn int
	HandLeft int
}

type TurnPassedPayload struct {
	Seat     int
	NextTurn int
}

type LeadResetPayload struct {
	NextTurn int
}

type SeatFinishedPayload struct {
	Seat       int
	FinishRank int
}

type SkillUsedPayload struct {
	Seat  int
	Skill SkillID
}

type RoundEndedPayload struct {
	FinishOrder []int
}
