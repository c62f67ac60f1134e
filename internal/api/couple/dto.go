package couple

type InviteRequest struct {
	CoupleID     string `json:"coupleId" validate:"required"`
	PartnerEmail string `json:"partnerEmail" validate:"required,email"`
}

type JoinRequest struct {
	Code string `json:"code" validate:"required,len=9"`
}

type CoupleResponse struct {
	ID        string `json:"id"`
	InviterID string `json:"inviter_id"`
	PartnerID string `json:"partner_id,omitempty"`
	CreatedAt string `json:"created_at"`
}
