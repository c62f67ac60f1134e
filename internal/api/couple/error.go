package couple

import "ourlittleworld/pkg/response"

var (
	ErrCoupleNotFound    = response.NewError(404, "couple not found")
	ErrNotCoupleMember   = response.NewError(403, "user is not a member of this couple")
	ErrAlreadyPaired     = response.NewError(409, "user already belongs to a couple")
	ErrCoupleFull        = response.NewError(409, "couple already has two members")
	ErrInviteNotFound    = response.NewError(404, "no pending invite for this account")
	ErrInvalidInviteCode = response.NewError(401, "invalid invite code")
	ErrSelfInvite        = response.NewError(400, "cannot invite yourself")
	ErrCreateCouple      = response.NewError(500, "failed to create couple")
	ErrSendInvite        = response.NewError(500, "failed to deliver invite")
)
