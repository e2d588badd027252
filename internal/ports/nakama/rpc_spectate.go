package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/heroiclabs/nakama-common/runtime"

	"hanabi/internal/app"
)

// SpectateTokenRequest names the match the caller wants to watch.
type SpectateTokenRequest struct {
	MatchID string `json:"match_id"`
}

// SpectateTokenResponse carries the signed grant back to the caller.
type SpectateTokenResponse struct {
	Token string `json:"token"`
}

// spectateServiceFromEnv builds the token service from the runtime
// environment. Both variables must be configured for spectating to work.
func spectateServiceFromEnv(ctx context.Context) *app.SpectateService {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	return app.NewSpectateService(env["hanabi_spectate_secret"], env["hanabi_spectate_issuer"])
}

func rpcSpectateToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", errors.New("spectate token requires an authenticated caller")
	}

	var req SpectateTokenRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", errors.New("invalid spectate token request")
	}

	token, err := spectateServiceFromEnv(ctx).GenerateToken(userID, req.MatchID)
	if err != nil {
		logger.Error("rpcSpectateToken: %v", err)
		return "", err
	}

	b, _ := json.Marshal(SpectateTokenResponse{Token: token})
	return string(b), nil
}
