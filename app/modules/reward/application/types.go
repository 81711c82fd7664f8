package rewardservice

// ResetResult reports a completed epoch reset.
type ResetResult struct {
	Period   string `json:"period"`
	Archived int    `json:"archived"`
	NewEpoch int64  `json:"newEpoch"`
}

// ClaimResult reports a granted reward claim.
type ClaimResult struct {
	Granted bool  `json:"granted"`
	Epoch   int64 `json:"epoch"`
}
