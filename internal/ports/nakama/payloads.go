package nakama

import (
	"guandan/internal/app"
	"guandan/internal/domain"
)

// Client request payloads.

type StartRoundRequest struct {
	Tier string `json:"tier,omitempty"`
}

type PlayCardsRequest struct {
	Cards []domain.Card `json:"cards"`
}

type ChooseSkillRequest struct {
	Skill app.SkillID `json:"skill"`
}

// Server event payloads.

type LobbyPlayer struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	IsOwner     bool   `json:"is_owner"`
	IsBot       bool   `json:"is_bot"`
	DisplayName string `json:"display_name"`
	CardsLeft   int    `json:"cards_left"`
}

type LobbyStateMessage struct {
	OwnerSeat int           `json:"owner_seat"`
	Players   []LobbyPlayer `json:"players"`
	Phase     string        `json:"phase"`
}

type RoundStartedMessage struct {
	RoundID   string      `json:"round_id"`
	Level     domain.Rank `json:"level"`
	Bet       int64       `json:"bet"`
	FirstTurn int         `json:"first_turn"`
}

type HandDealtMessage struct {
	Seat int           `json:"seat"`
	Hand []domain.Card `json:"hand"`
}

type CardPlayedMessage struct {
	Seat     int           `json:"seat"`
	Cards    []domain.Card `json:"cards"`
	Play     domain.Play   `json:"play"`
	NextTurn int           `json:"next_turn"`
	HandLeft int           `json:"hand_left"`
}

type TurnPassedMessage struct {
	Seat     int `json:"seat"`
	NextTurn int `json:"next_turn"`
}

type LeadResetMessage struct {
	NextTurn int `json:"next_turn"`
}

type SeatFinishedMessage struct {
	Seat       int `json:"seat"`
	FinishRank int `json:"finish_rank"`
}

type RoundEndedMessage struct {
	FinishOrder []int            `json:"finish_order"`
	Rewards     []app.SeatReward `json:"rewards"`
}

type HintResultMessage struct {
	Cards []domain.Card `json:"cards,omitempty"`
	Play  *domain.Play  `json:"play,omitempty"`
	Pass  bool          `json:"pass"`
}

type SkillOfferMessage struct {
	Seat    int         `json:"seat"`
	Options []app.Skill `json:"options"`
}

type SkillResultMessage struct {
	Seat     int                   `json:"seat"`
	Skill    app.SkillID           `json:"skill"`
	Added    []domain.Card         `json:"added,omitempty"`
	Hand     []domain.Card         `json:"hand,omitempty"`
	Revealed map[int][]domain.Card `json:"revealed,omitempty"`
}

type SeatTokenMessage struct {
	Seat  int    `json:"seat"`
	Token string `json:"token"`
}

type ErrorMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
