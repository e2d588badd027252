package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"hanabi/internal/app"
	"hanabi/internal/bot"
	"hanabi/internal/config"
	"hanabi/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats      [domain.MaxPlayers]string   `json:"seats"`      // user IDs, empty string means seat is empty
	OwnerSeat  int                         `json:"owner_seat"` // seat index of the match owner
	Tick       int64                       `json:"tick"`
	Presences  map[string]runtime.Presence `json:"-"` // userID -> presence for targeted messaging
	Spectators map[string]runtime.Presence `json:"-"` // read-only watchers, never seated
	App        *app.Service                `json:"-"`
	Game       *domain.Game                `json:"-"` // nil while in lobby
	Rng        *rand.Rand                  `json:"-"`

	BotsEnabled          bool                  `json:"bots_enabled"`
	BotMinDelay          int                   `json:"bot_min_delay"`
	BotMaxDelay          int                   `json:"bot_max_delay"`
	BotAutoFillDelay     int                   `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64                 `json:"bot_wait_until"`
	LastSinglePlayerTick int64                 `json:"last_single_player_tick"`
	Bots                 map[string]*bot.Agent `json:"-"`
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
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
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

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
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
		Tick:       time.Now().Unix(),
		Presences:  make(map[string]runtime.Presence),
		Spectators: make(map[string]runtime.Presence),
		App:        app.NewService(nil),
		OwnerSeat:  -1,
		Rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		Bots:       make(map[string]*bot.Agent),
	}

	state.BotMinDelay = config.GetBotTurnDelaySeconds()
	state.BotMaxDelay = state.BotMinDelay + 2
	state.BotAutoFillDelay = config.GetBotAutoFillDelaySeconds()

	// Environment variables override the config file.
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["hanabi_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["hanabi_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["hanabi_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["hanabi_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay
	}

	label := MatchLabel{
		Game:  "hanabi",
		Open:  state.GetOpenSeatsCount(),
		State: "lobby",
	}
	labelBytes, err := json.Marshal(label)
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

	// A valid spectate grant admits a watcher regardless of seating.
	if tokenString, ok := metadata["spectate_token"]; ok {
		user, _, err := spectateServiceFromEnv(ctx).VerifyToken(tokenString)
		if err != nil || user != presence.GetUserId() {
			return state, false, "invalid spectate token"
		}
		return state, true, ""
	}

	// Allow join if there is an empty seat OR a bot to replace (if game hasn't started).
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Game == nil {
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
		// A joiner without a free or bot seat becomes a spectator.
		matchState.Presences[p.GetUserId()] = p

		assigned := false
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Game == nil {
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
			matchState.Spectators[p.GetUserId()] = p
			logger.Debug("MatchJoin: User %s joined as spectator.", p.GetUserId())
			continue
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

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
		delete(matchState.Spectators, p.GetUserId())

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
	mh.broadcastMatchState(matchState, dispatcher, logger)

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
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		case OpDiscardCard:
			mh.handleDiscardCard(ctx, matchState, dispatcher, logger, msg)
		case OpGiveHint:
			mh.handleGiveHint(ctx, matchState, dispatcher, logger, msg)
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
	// 1. Auto-fill the lobby with bots when a lone human has waited long enough.
	if state.Game == nil {
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
						state.Bots[botID] = bot.NewAgent(botID, config.GetTuning(), state.Rng, logger)
						logger.Info("processBots: Added bot %s (%s) to seat %d", identity.DisplayName, botID, i)
						added = true
					}
				}
				if added {
					mh.updateLabel(state, dispatcher, logger)
					mh.broadcastMatchState(state, dispatcher, logger)
				}
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
	}

	// 2. Handle bot turns in-game.
	if state.Game != nil && !state.Game.Current.GameOver() {
		currentSeat := state.Game.Current.NextPlayer
		currentUserID := state.Game.Current.Players[currentSeat]

		if isBotUserId(currentUserID) {
			if state.BotWaitUntil == 0 {
				delay := state.Rng.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
				state.BotWaitUntil = state.Tick + int64(delay)
				logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", currentUserID, currentSeat, state.BotWaitUntil, state.Tick)
			}

			if state.Tick >= state.BotWaitUntil {
				state.BotWaitUntil = 0

				agent, exists := state.Bots[currentUserID]
				if !exists {
					agent = bot.NewAgent(currentUserID, config.GetTuning(), state.Rng, logger)
					state.Bots[currentUserID] = agent
				}

				move, err := agent.PlayAtSeat(state.Game.Current, currentSeat)
				if err != nil {
					logger.Error("processBots: Bot %s failed to calculate move: %v", currentUserID, err)
					return
				}

				events, err := state.App.PlayerAction(state.Game, move)
				if err != nil {
					logger.Error("processBots: Bot %s produced illegal move %v: %v", currentUserID, move, err)
					return
				}
				for _, ev := range events {
					mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
				}
			}
		} else {
			state.BotWaitUntil = 0
		}
	}
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	var playerStates []PlayerState
	for i, userId := range state.Seats {
		if userId == "" {
			continue
		}

		displayName := userId
		if p, exists := state.Presences[userId]; exists {
			displayName = p.GetUsername()
		} else if identity, ok := bot.GetBotConfig(userId); ok {
			displayName = identity.DisplayName
		}

		playerStates = append(playerStates, PlayerState{
			UserID:      userId,
			Seat:        i,
			IsOwner:     i == state.OwnerSeat,
			IsBot:       isBotUserId(userId),
			DisplayName: displayName,
		})
	}

	snapshot := MatchStateSnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Players:   playerStates,
	}
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal snapshot: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpPlayerJoined, bytes, nil, nil, true)
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Game != nil {
		logger.Warn("StartGame: Game already in progress.")
		return
	}
	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}

	activeCount := state.GetOccupiedSeatCount()
	if activeCount < app.MinPlayersToStartGame {
		logger.Warn("StartGame: Cannot start with %d players. Need at least %d.", activeCount, app.MinPlayersToStartGame)
		return
	}

	game, events, err := state.App.StartGame(state.Seats[:])
	if err != nil {
		logger.Error("StartGame: Failed to start game: %v", err)
		return
	}

	state.Game = game
	state.BotWaitUntil = 0

	mh.updateLabel(state, dispatcher, logger)
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}

	logger.Info("StartGame: Game started with %d players.", activeCount)
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	seat, ok := mh.senderSeatInGame(state, logger, senderID, "handlePlayCard")
	if !ok {
		return
	}

	var request PlayCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handlePlayCard: Failed to unmarshal request: %v", err)
		return
	}

	mh.applyAction(ctx, state, dispatcher, logger, senderID, domain.NewPlay(seat, request.Pos))
}

func (mh *matchHandler) handleDiscardCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	seat, ok := mh.senderSeatInGame(state, logger, senderID, "handleDiscardCard")
	if !ok {
		return
	}

	var request DiscardCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleDiscardCard: Failed to unmarshal request: %v", err)
		return
	}

	mh.applyAction(ctx, state, dispatcher, logger, senderID, domain.NewDiscard(seat, request.Pos))
}

func (mh *matchHandler) handleGiveHint(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	seat, ok := mh.senderSeatInGame(state, logger, senderID, "handleGiveHint")
	if !ok {
		return
	}

	var request GiveHintRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		logger.Error("handleGiveHint: Failed to unmarshal request: %v", err)
		return
	}

	action, err := mh.hintAction(state, seat, request)
	if err != nil {
		logger.Warn("handleGiveHint: User %s sent a bad hint: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	mh.applyAction(ctx, state, dispatcher, logger, senderID, action)
}

// hintAction builds the full hint, deriving the slot mask from the
// receiver's current hand so clients only name a seat and a value.
func (mh *matchHandler) hintAction(state *MatchState, seat int, request GiveHintRequest) (domain.Action, error) {
	hand := state.Game.Current.Hand(request.Receiver)
	if hand == nil {
		return domain.Action{}, domain.ErrBadHintTarget
	}

	targets := make([]bool, len(hand))
	if request.Colour != "" {
		colour, err := parseColour(request.Colour)
		if err != nil {
			return domain.Action{}, err
		}
		for pos, card := range hand {
			targets[pos] = !card.Empty() && card.Colour == colour
		}
		return domain.NewColourHint(seat, request.Receiver, colour, targets), nil
	}

	for pos, card := range hand {
		targets[pos] = !card.Empty() && card.Rank == request.Rank
	}
	return domain.NewRankHint(seat, request.Receiver, request.Rank, targets), nil
}

// senderSeatInGame resolves the sender's seat and rejects messages sent
// outside a running game or from spectators.
func (mh *matchHandler) senderSeatInGame(state *MatchState, logger runtime.Logger, senderID, caller string) (int, bool) {
	if state.Game == nil {
		logger.Warn("%s: Game not started.", caller)
		return 0, false
	}
	for seat, userID := range state.Game.Current.Players {
		if userID == senderID {
			return seat, true
		}
	}
	logger.Warn("%s: User %s is not seated in the running game.", caller, senderID)
	return 0, false
}

func (mh *matchHandler) applyAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, action domain.Action) {
	events, err := state.App.PlayerAction(state.Game, action)
	if err != nil {
		logger.Warn("applyAction: User %s (seat %d) action rejected: %v", senderID, action.Actor, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}

	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload any

	switch ev.Kind {
	case app.EventGameStarted:
		opCode = OpGameStarted
		p := ev.Payload.(app.GameStartedPayload)
		payload = GameStartedEvent{
			Players:    p.Players,
			HandSize:   p.HandSize,
			HintTokens: p.HintTokens,
			Lives:      p.Lives,
			DeckSize:   p.DeckSize,
			FirstSeat:  p.FirstSeat,
		}
	case app.EventHandDealt:
		opCode = OpHandDealt
		p := ev.Payload.(app.HandDealtPayload)
		payload = HandDealtEvent{
			Seat:  p.Seat,
			Hands: toWireHands(p.Hands),
		}
	case app.EventActionApplied:
		opCode = OpActionApplied
		payload = toActionAppliedEvent(ev.Payload.(app.ActionAppliedPayload))
	case app.EventCardDrawn:
		opCode = OpCardDrawn
		p := ev.Payload.(app.CardDrawnPayload)
		payload = CardDrawnEvent{Seat: p.Seat, Pos: p.Pos, Card: toWireCard(p.Card)}
	case app.EventGameEnded:
		opCode = OpGameEnded
		p := ev.Payload.(app.GameEndedPayload)
		payload = GameEndedEvent{Score: p.Score, Fireworks: p.Fireworks[:], Reason: p.Reason}

		// Game ended, clear game state and update label back to lobby.
		// The bot agents go too: a rematch must start from fresh beliefs.
		state.Game = nil
		state.Bots = make(map[string]*bot.Agent)
		state.BotWaitUntil = 0
		mh.updateLabel(state, dispatcher, logger)
	default:
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast).
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they
		// are bots), we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true)
}

// sendError sends a GameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	payload := GameErrorEvent{Code: code, Message: message}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal GameErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	matchState := "lobby"
	if state.Game != nil {
		matchState = "playing"
	}

	label := MatchLabel{
		Game:  "hanabi",
		Open:  state.GetOpenSeatsCount(),
		State: matchState,
	}
	labelBytes, err := json.Marshal(label)
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
