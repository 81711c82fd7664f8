package events

// Topics published by the service. Consumers (bots, notifiers, analytics)
// subscribe on NATS; delivery is best effort and never gates a request.
const (
	ScoreSubmitted = "leaderboard.score.submitted"
	EpochReset     = "leaderboard.epoch.reset"
	RewardClaimed  = "reward.claimed"
)

// ScoreSubmittedPayload is published after a successful score submission.
type ScoreSubmittedPayload struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	// Improved reports whether the stored best actually changed.
	Improved bool `json:"improved"`
}

// EpochResetPayload is published after a completed reset transaction.
type EpochResetPayload struct {
	Period   string `json:"period"`
	NewEpoch int64  `json:"new_epoch"`
	Archived int    `json:"archived"`
}

// RewardClaimedPayload is published after a granted claim.
type RewardClaimedPayload struct {
	PlayerID string `json:"player_id"`
	Epoch    int64  `json:"epoch"`
}
