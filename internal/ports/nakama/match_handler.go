package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"guandan/internal/app"
	"guandan/internal/bot"
	"guandan/internal/config"
	"guandan/internal/domain"
	"guandan/internal/ledger"
	"guandan/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/redis/go-redis/v9"
)

// matchLabel is the queryable match label, indexed by the match listing.
type matchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// MatchState holds the authoritative runtime state for the Nakama match
// handler.
type MatchState struct {
	Seats          [domain.NumSeats]string     // user IDs, empty string means seat is empty
	OwnerSeat      int                         // seat index of the table owner
	LastWinnerSeat int                         // winner of the previous round
	Tick           int64                       // current tick for turn pacing
	Presences      map[string]runtime.Presence // userID -> presence for targeted messaging
	App            *app.Service
	Round          *domain.Round // nil while in lobby
	Rng            *rand.Rand

	BotsEnabled          bool
	BotMinDelay          int
	BotMaxDelay          int
	BotAutoFillDelay     int
	BotWaitUntil         int64
	LastSinglePlayerTick int64
	Bots                 map[string]*bot.Agent

	Economy     ports.EconomyPort
	TableTokens *app.TableTokenService

	SkillOffers map[int][]app.Skill // pending offers by seat
	Skills      map[int]app.SkillID // chosen skill by seat
	SkillUsed   map[int]bool        // active skill spent this round
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	return domain.NumSeats - ms.GetOpenSeatsCount()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserId := range ms.Seats {
		if seatUserId == userID {
			return i
		}
	}
	return -1
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or
// -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// reclaimSeat restores a reconnecting user to the seat their token names.
// The token must belong to the user and to this match, and the seat must be
// free or already theirs.
func (ms *MatchState) reclaimSeat(matchID, userID, token string) bool {
	if ms.TableTokens == nil || token == "" {
		return false
	}
	tableID, seat, err := ms.TableTokens.VerifyToken(token, userID)
	if err != nil || tableID != matchID {
		return false
	}
	if seat < 0 || seat >= domain.NumSeats {
		return false
	}
	if ms.Seats[seat] == userID {
		return true
	}
	if ms.Seats[seat] != "" {
		return false
	}
	ms.Seats[seat] = userID
	return true
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	state := &MatchState{
		Tick:           time.Now().Unix(),
		Presences:      make(map[string]runtime.Presence),
		App:            app.NewService(nil),
		Rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		OwnerSeat:      -1,
		LastWinnerSeat: -1,
		Bots:           make(map[string]*bot.Agent),
		Economy:        NewNakamaEconomyAdapter(nk),
		SkillOffers:    make(map[int][]app.Skill),
		Skills:         make(map[int]app.SkillID),
		SkillUsed:      make(map[int]bool),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["guandan_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["guandan_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["guandan_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["guandan_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}
	if addr, ok := env["guandan_redis_addr"]; ok && addr != "" {
		state.Economy = ledger.NewRedisLedger(redis.NewClient(&redis.Options{Addr: addr}), nil)
		logger.Info("MatchInit: Settling wallets against Redis at %s.", addr)
	}
	if secret, ok := env["guandan_table_secret"]; ok && secret != "" {
		state.TableTokens = app.NewTableTokenService(secret, "guandan")
	}

	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = config.GetBotAutoFillDelay()
	}

	labelBytes, err := json.Marshal(matchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  "guandan",
		Phase: "lobby",
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// A valid seat token lets a reconnecting player back into their seat
	// even mid-round.
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	if matchState.reclaimSeat(matchID, presence.GetUserId(), metadata["seat_token"]) {
		return matchState, true, ""
	}

	// Allow join if there is an empty seat OR a bot to replace while still
	// in the lobby.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Round == nil {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Already seated happens when a seat token reclaimed the seat
		// during the join attempt.
		assigned := matchState.seatOf(p.GetUserId()) >= 0

		if !assigned {
			for i, seatUserId := range matchState.Seats {
				if seatUserId == "" {
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned && matchState.Round == nil {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, p.GetUserId(), i)
					delete(matchState.Bots, seatUserId)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Owner must be a human seat.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastLobbyState(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserId := range matchState.Seats {
			if seatUserId == p.GetUserId() {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
				break
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartRound:
			mh.handleStartRound(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCards:
			mh.handlePlayCards(ctx, matchState, dispatcher, logger, msg)
		case OpPassTurn:
			mh.handlePassTurn(ctx, matchState, dispatcher, logger, msg)
		case OpRequestHint:
			mh.handleHint(matchState, dispatcher, logger, msg)
		case OpChooseSkill:
			mh.handleChooseSkill(matchState, dispatcher, logger, msg)
		case OpUseSkill:
			mh.handleUseSkill(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// Auto-fill the lobby with bots when a lone human has waited long
	// enough.
	if state.Round == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount == 1 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(state.BotAutoFillDelay) {
				added := false
				for i, seat := range state.Seats {
					if seat == "" {
						identity := bot.GetBotIdentity(i)
						botID := identity.UserID
						state.Seats[i] = botID
						state.Bots[botID] = &bot.Agent{
							ID:       botID,
							Name:     identity.DisplayName,
							Strategy: bot.NewBalancedBot(rand.New(rand.NewSource(state.Rng.Int63()))),
						}
						logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, botID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastLobbyState(state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
	}

	// Drive bot turns with a small human-like delay.
	if state.Round != nil && state.Round.Phase == domain.PhasePlaying {
		currentTurn := state.Round.Turn
		currentUserID := state.Seats[currentTurn]

		if !isBotUserId(currentUserID) {
			state.BotWaitUntil = 0
			return
		}

		if state.BotWaitUntil == 0 {
			delay := state.Rng.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
			state.BotWaitUntil = state.Tick + int64(delay)
			return
		}
		if state.Tick < state.BotWaitUntil {
			return
		}
		state.BotWaitUntil = 0

		agent, exists := state.Bots[currentUserID]
		if !exists {
			agent = &bot.Agent{
				ID:       currentUserID,
				Strategy: bot.NewBalancedBot(rand.New(rand.NewSource(state.Rng.Int63()))),
			}
			state.Bots[currentUserID] = agent
		}

		move, err := agent.PlayAtSeat(state.Round, currentTurn)
		if err != nil {
			logger.Error("processBots: Bot %s failed to calculate move: %v", currentUserID, err)
			return
		}

		var events []app.Event
		if move.Pass {
			events, err = state.App.Pass(state.Round, currentTurn)
		} else {
			events, err = state.App.PlayCards(state.Round, currentTurn, move.Cards)
		}
		if err != nil {
			logger.Error("processBots: Bot %s move rejected: %v", currentUserID, err)
			return
		}
		for _, ev := range events {
			mh.dispatchEvent(ctx, state, dispatcher, logger, ev)
		}
	}
}

func (mh *matchHandler) broadcastLobbyState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var players []LobbyPlayer
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if isBotUserId(userId) {
			displayName = bot.GetBotIdentity(i).DisplayName
		}

		cardsLeft := 0
		if state.Round != nil {
			cardsLeft = len(state.Round.Seats[i].Hand)
		}

		players = append(players, LobbyPlayer{
			UserID:      userId,
			Seat:        i,
			IsOwner:     i == state.OwnerSeat,
			IsBot:       isBotUserId(userId),
			DisplayName: displayName,
			CardsLeft:   cardsLeft,
		})
	}

	phase := "lobby"
	if state.Round != nil {
		phase = string(state.Round.Phase)
	}
	mh.send(state, dispatcher, logger, OpLobbyState, LobbyStateMessage{
		OwnerSeat: state.OwnerSeat,
		Players:   players,
		Phase:     phase,
	}, nil)
}

func (mh *matchHandler) handleStartRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartRound: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	var request StartRoundRequest
	if len(msg.GetData()) > 0 {
		if err := json.Unmarshal(msg.GetData(), &request); err != nil {
			logger.Warn("StartRound: Invalid request from %s: %v", senderID, err)
			return
		}
	}

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartRound: User %s tried to start but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}
	if state.Round != nil && state.Round.Phase == domain.PhasePlaying {
		logger.Warn("StartRound: Round already in progress.")
		return
	}
	if state.GetOpenSeatsCount() > 0 {
		logger.Warn("StartRound: Cannot start with open seats.")
		return
	}

	baseBet := config.GetBaseBet(request.Tier)
	level := domain.Rank(config.GetStartLevel())

	var seats [domain.NumSeats]app.SeatInfo
	for i, userId := range state.Seats {
		name := userId
		if isBotUserId(userId) {
			name = bot.GetBotIdentity(i).DisplayName
		} else if p, ok := state.Presences[userId]; ok {
			name = p.GetUsername()
		}
		seats[i] = app.SeatInfo{Name: name, IsHuman: !isBotUserId(userId)}
	}

	round, events, err := state.App.StartRound(level, baseBet, seats)
	if err != nil {
		logger.Error("StartRound: Failed to start round: %v", err)
		return
	}

	state.Round = round
	state.SkillOffers = make(map[int][]app.Skill)
	state.Skills = make(map[int]app.SkillID)
	state.SkillUsed = make(map[int]bool)

	mh.updateLabel(state, dispatcher, logger)

	for _, ev := range events {
		mh.dispatchEvent(ctx, state, dispatcher, logger, ev)
	}

	mh.offerSkills(state, dispatcher, logger)
	mh.sendSeatTokens(ctx, state, dispatcher, logger)

	logger.Info("StartRound: Round %s started at level %v.", round.ID, level)
}

// sendSeatTokens hands each human a signed claim on their seat so they can
// rejoin the match after a disconnect.
func (mh *matchHandler) sendSeatTokens(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.TableTokens == nil {
		return
	}
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	for i, userId := range state.Seats {
		if userId == "" || isBotUserId(userId) {
			continue
		}
		token, err := state.TableTokens.GenerateToken(userId, matchID, i)
		if err != nil {
			logger.Error("sendSeatTokens: Failed to sign token for seat %d: %v", i, err)
			continue
		}
		mh.send(state, dispatcher, logger, OpSeatToken, SeatTokenMessage{Seat: i, Token: token}, []string{userId})
	}
}

// offerSkills deals each human seat a private skill choice. Bots play
// without perks.
func (mh *matchHandler) offerSkills(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	count := config.GetSkillOfferCount()
	for i, userId := range state.Seats {
		if userId == "" || isBotUserId(userId) {
			continue
		}
		options := app.SkillOptions(state.Rng, count)
		state.SkillOffers[i] = options
		mh.send(state, dispatcher, logger, OpSkillOffer, SkillOfferMessage{
			Seat:    i,
			Options: options,
		}, []string{userId})
	}
}

func (mh *matchHandler) handlePlayCards(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if state.Round == nil {
		logger.Warn("handlePlayCards: Round not started.")
		return
	}

	var request PlayCardsRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCards: Failed to unmarshal request: %v", err)
		return
	}

	events, err := state.App.PlayCards(state.Round, senderSeat, request.Cards)
	if err != nil {
		logger.Warn("handlePlayCards: User %s (seat %d) failed to play cards: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.dispatchEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handlePassTurn(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if state.Round == nil {
		logger.Warn("handlePassTurn: Round not started.")
		return
	}

	events, err := state.App.Pass(state.Round, senderSeat)
	if err != nil {
		logger.Warn("handlePassTurn: User %s (seat %d) failed to pass turn: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.dispatchEvent(ctx, state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) handleHint(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	if state.Round == nil || senderSeat < 0 {
		return
	}

	preferNonBomb := state.Skills[senderSeat] == app.SkillHintPlus
	hint, err := state.App.Hint(state.Round, senderSeat, preferNonBomb)
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	resp := HintResultMessage{Pass: hint == nil}
	if hint != nil {
		resp.Cards = hint.Cards
		resp.Play = &hint.Play
	}
	mh.send(state, dispatcher, logger, OpHintResult, resp, []string{senderID})
}

func (mh *matchHandler) handleChooseSkill(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)
	if state.Round == nil || senderSeat < 0 {
		return
	}
	if _, chosen := state.Skills[senderSeat]; chosen {
		mh.sendError(state, dispatcher, logger, senderID, 400, "skill already chosen")
		return
	}

	var request ChooseSkillRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleChooseSkill: Failed to unmarshal request: %v", err)
		return
	}

	offered := false
	for _, s := range state.SkillOffers[senderSeat] {
		if s.ID == request.Skill {
			offered = true
			break
		}
	}
	if !offered {
		mh.sendError(state, dispatcher, logger, senderID, 400, "skill was not offered")
		return
	}

	state.Skills[senderSeat] = request.Skill
	logger.Debug("handleChooseSkill: Seat %d chose %s.", senderSeat, request.Skill)
}

func (mh *matchHandler) handleUseSkill(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)
	if state.Round == nil || senderSeat < 0 {
		return
	}
	if state.Round.Phase != domain.PhasePlaying {
		mh.sendError(state, dispatcher, logger, senderID, 400, "round not in play")
		return
	}

	skill, chosen := state.Skills[senderSeat]
	if !chosen {
		mh.sendError(state, dispatcher, logger, senderID, 400, "no skill chosen")
		return
	}
	if state.SkillUsed[senderSeat] {
		mh.sendError(state, dispatcher, logger, senderID, 400, "skill already used")
		return
	}

	result := SkillResultMessage{Seat: senderSeat, Skill: skill}
	switch skill {
	case app.SkillBombBoost:
		added, err := app.BoostTriple(state.Rng, state.Round, senderSeat)
		if err != nil {
			mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
			return
		}
		result.Added = []domain.Card{added}
		result.Hand = state.Round.Seats[senderSeat].Hand
	case app.SkillShuffleHand:
		result.Added = app.ReplaceRandomCards(state.Rng, state.Round, senderSeat, 2)
		result.Hand = state.Round.Seats[senderSeat].Hand
	case app.SkillXRay:
		result.Revealed = app.PeekHand(state.Round, senderSeat, 2)
	default:
		mh.sendError(state, dispatcher, logger, senderID, 400, "skill is passive")
		return
	}

	state.SkillUsed[senderSeat] = true

	// The full effect goes to the actor only; the table just learns a skill
	// fired.
	mh.send(state, dispatcher, logger, OpSkillResult, result, []string{senderID})
	mh.send(state, dispatcher, logger, OpSkillResult, SkillResultMessage{
		Seat:  senderSeat,
		Skill: skill,
	}, nil)
}

// dispatchEvent converts an app event into its wire message and sends it.
func (mh *matchHandler) dispatchEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload any

	switch ev.Kind {
	case app.EventRoundStarted:
		opCode = OpRoundStarted
		p := ev.Payload.(app.RoundStartedPayload)
		payload = RoundStartedMessage{
			RoundID:   p.RoundID,
			Level:     p.Level,
			Bet:       p.Bet,
			FirstTurn: p.FirstTurn,
		}
	case app.EventHandDealt:
		opCode = OpHandDealt
		p := ev.Payload.(app.HandDealtPayload)
		payload = HandDealtMessage{Seat: p.Seat, Hand: p.Hand}
	case app.EventCardPlayed:
		opCode = OpCardPlayed
		p := ev.Payload.(app.CardPlayedPayload)
		payload = CardPlayedMessage{
			Seat:     p.Seat,
			Cards:    p.Cards,
			Play:     p.Play,
			NextTurn: p.NextTurn,
			HandLeft: p.HandLeft,
		}
	case app.EventTurnPassed:
		opCode = OpTurnPassed
		p := ev.Payload.(app.TurnPassedPayload)
		payload = TurnPassedMessage{Seat: p.Seat, NextTurn: p.NextTurn}
	case app.EventLeadReset:
		opCode = OpLeadReset
		p := ev.Payload.(app.LeadResetPayload)
		payload = LeadResetMessage{NextTurn: p.NextTurn}
	case app.EventSeatFinished:
		opCode = OpSeatFinished
		p := ev.Payload.(app.SeatFinishedPayload)
		payload = SeatFinishedMessage{Seat: p.Seat, FinishRank: p.FinishRank}
	case app.EventRoundEnded:
		opCode = OpRoundEnded
		p := ev.Payload.(app.RoundEndedPayload)
		payload = mh.settleRound(ctx, state, logger, p)
		mh.updateLabel(state, dispatcher, logger)
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	var recipients []string
	for _, seat := range ev.Recipients {
		if seat >= 0 && seat < domain.NumSeats {
			recipients = append(recipients, state.Seats[seat])
		}
	}
	targeted := len(ev.Recipients) > 0

	if targeted {
		mh.send(state, dispatcher, logger, opCode, payload, recipients)
	} else {
		mh.send(state, dispatcher, logger, opCode, payload, nil)
	}
}

// settleRound applies stake settlement to wallets and returns the wire
// message describing it.
func (mh *matchHandler) settleRound(ctx context.Context, state *MatchState, logger runtime.Logger, p app.RoundEndedPayload) RoundEndedMessage {
	doubled := make(map[int]bool)
	for seat, skill := range state.Skills {
		if skill == app.SkillDoubleScore {
			doubled[seat] = true
		}
	}
	rewards := app.Settle(state.Round, doubled)

	if state.Economy != nil {
		updates := make([]ports.WalletUpdate, 0, len(rewards))
		for _, rw := range rewards {
			userID := state.Seats[rw.Seat]
			if userID == "" || isBotUserId(userID) {
				continue
			}
			updates = append(updates, ports.WalletUpdate{
				UserID: userID,
				Amount: rw.Delta,
				Metadata: map[string]interface{}{
					"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
					"round_id": state.Round.ID,
					"reason":   "round_settlement",
				},
			})
		}
		if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
			logger.Error("Failed to update balances: %v", err)
		}
	}

	if len(p.FinishOrder) > 0 {
		state.LastWinnerSeat = p.FinishOrder[0]
	}
	state.Round = nil

	return RoundEndedMessage{FinishOrder: p.FinishOrder, Rewards: rewards}
}

// send marshals a payload and dispatches it to the given user IDs, or to
// everyone when userIDs is nil. Targeted messages whose recipients are all
// offline (bots included) are dropped rather than broadcast.
func (mh *matchHandler) send(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload any, userIDs []string) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal message for opcode %d: %v", opCode, err)
		return
	}

	var recipients []runtime.Presence
	if userIDs != nil {
		for _, uid := range userIDs {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendError sends an ErrorMessage to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	mh.send(state, dispatcher, logger, OpError, ErrorMessage{Code: code, Message: message}, []string{userID})
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Round != nil {
		phase = "playing"
	}

	labelBytes, err := json.Marshal(matchLabel{
		Open:  state.GetOpenSeatsCount(),
		Game:  "guandan",
		Phase: phase,
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
