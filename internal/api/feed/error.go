package feed

import "ourlittleworld/pkg/response"

var (
	ErrPostNotFound    = response.NewError(404, "post not found")
	ErrCommentNotFound = response.NewError(404, "comment not found")
	ErrNotPostAuthor   = response.NewError(403, "only the author can modify this post")
	ErrMissingCaption  = response.NewError(422, "post needs a caption or at least one image")
	ErrMissingBody     = response.NewError(422, "comment body is required")
	ErrTooManyImages   = response.NewError(422, "a post can carry at most six images")
	ErrCreatePost      = response.NewError(500, "failed to create post")
	ErrUploadImage     = response.NewError(500, "failed to upload image")
)
