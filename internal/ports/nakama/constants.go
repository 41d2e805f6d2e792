package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a
	// lobby-capable table.
	RpcQuickMatch = "quick_match"

	// MatchNameGuandan is the authoritative match handler name registered
	// with Nakama.
	MatchNameGuandan = "guandan_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartRound  int64 = 1
	OpPlayCards   int64 = 2
	OpPassTurn    int64 = 3
	OpRequestHint int64 = 4
	OpChooseSkill int64 = 5
	OpUseSkill    int64 = 6

	// Server -> Client events
	OpLobbyState   int64 = 101
	OpRoundStarted int64 = 102
	OpHandDealt    int64 = 103 // send privately
	OpCardPlayed   int64 = 104
	OpTurnPassed   int64 = 105
	OpLeadReset    int64 = 106
	OpSeatFinished int64 = 107
	OpRoundEnded   int64 = 108
	OpHintResult   int64 = 109 // send privately
	OpSkillOffer   int64 = 110 // send privately
	OpSkillResult  int64 = 111
	OpError        int64 = 112
	OpSeatToken    int64 = 113 // send privately
)
