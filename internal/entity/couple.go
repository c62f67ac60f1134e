package entity

import "time"

// Couple is the tenant boundary: exactly two members sharing budgets,
// posts, goals and moods. PartnerID stays empty until an invite code is
// redeemed.
type Couple struct {
	ID        string    `json:"id"`
	InviterID string    `json:"inviter_id"`
	PartnerID string    `json:"partner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Couple) HasMember(userID string) bool {
	return userID != "" && (c.InviterID == userID || c.PartnerID == userID)
}

func (c Couple) IsFull() bool {
	return c.PartnerID != ""
}
