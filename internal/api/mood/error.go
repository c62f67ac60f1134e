package mood

import "ourlittleworld/pkg/response"

var (
	ErrMissingMood   = response.NewError(422, "mood is required")
	ErrMissingDate   = response.NewError(422, "entry date is required")
	ErrInvalidDate   = response.NewError(422, "entry date must use the YYYY-MM-DD format")
	ErrUpsertMood    = response.NewError(500, "failed to save mood check-in")
	ErrInvalidWindow = response.NewError(422, "history window must be between 1 and 90 days")
)
