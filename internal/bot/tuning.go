package bot

// Tuning holds the policy thresholds. The values are heuristic defaults;
// the config layer may override any of them per deployment.
type Tuning struct {
	// SafePlayThreshold is the safety probability above which a play is
	// treated as guaranteed.
	SafePlayThreshold float64
	// TrustedPlayThreshold is the lower safety bar for plays backed by a
	// trusted hint.
	TrustedPlayThreshold float64
	// TrustScoreThreshold is the minimum intentionality score for a
	// hinter's hints to back a risky play.
	TrustScoreThreshold float64
	// LowHintTokenMark is the token level at or below which discards are
	// preferred over hints to regain tokens.
	LowHintTokenMark int
	// RandomHintAttempts bounds the random-hint fallback search.
	RandomHintAttempts int
}

// DefaultTuning balances caution and information flow.
var DefaultTuning = Tuning{
	SafePlayThreshold:    0.99,
	TrustedPlayThreshold: 0.6,
	TrustScoreThreshold:  0.8,
	LowHintTokenMark:     2,
	RandomHintAttempts:   32,
}
