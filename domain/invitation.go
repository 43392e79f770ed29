package domain

import "time"

// TeamInvitation is a signed, time-boxed, usage-capped join credential.
// EndAt held here is the authoritative expiry; the embedded token signature
// is deliberately minted with a longer lifetime. The record is only mutated
// inside the locked redemption transaction (usage increment) or by an
// explicit revoke (deactivation), never deleted.
type TeamInvitation struct {
	TeamID      TeamID    `json:"team_id"`
	Token       string    `json:"token"`
	IssuerID    UserID    `json:"issuer_id"`
	UsageMaxCnt int       `json:"usage_max_cnt"`
	UsageCurCnt int       `json:"usage_cur_cnt"`
	ActStatus   ActStatus `json:"act_status"`
	EndAt       time.Time `json:"end_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Exhausted reports whether every allowed redemption has been consumed.
func (i TeamInvitation) Exhausted() bool {
	return i.UsageCurCnt >= i.UsageMaxCnt
}
