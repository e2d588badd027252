package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcSpectateToken is the Nakama RPC id clients call to obtain a spectate grant for a match.
	RpcSpectateToken = "spectate_token"

	// MatchNameHanabi is the authoritative match handler name registered with Nakama.
	MatchNameHanabi = "hanabi_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame   int64 = 1
	OpPlayCard    int64 = 2
	OpDiscardCard int64 = 3
	OpGiveHint    int64 = 4

	// Server -> Client events
	OpPlayerJoined  int64 = 101
	OpPlayerLeft    int64 = 102
	OpGameStarted   int64 = 103
	OpHandDealt     int64 = 104 // send privately
	OpActionApplied int64 = 105
	OpCardDrawn     int64 = 106 // hidden from the drawer
	OpGameEnded     int64 = 107
	OpGameError     int64 = 108
)
