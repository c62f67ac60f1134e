package feedHandler

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"ourlittleworld/internal/api/feed"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
	"ourlittleworld/pkg/handlerUtil"
	jwtPkg "ourlittleworld/pkg/jwt"
	"ourlittleworld/pkg/log"
)

func (h *FeedHandler) CreatePost(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	// Image uploads get a longer leash than plain JSON handlers.
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create post request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	coupleID := ctx.FormValue("coupleId")
	if coupleID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("coupleId is required"), ctx.Path())
	}

	caption := ctx.FormValue("caption")

	var images []*multipart.FileHeader
	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		images = form.File["images"]
	}

	post, err := h.feedService.CreatePost(c, userData, coupleID, caption, images)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_post")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, makePostResponse(post))
	}
}

func (h *FeedHandler) GetPosts(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 15*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	coupleID := ctx.Query("coupleId")
	if coupleID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("coupleId is required"), ctx.Path())
	}

	posts, err := h.feedService.GetPostsByCouple(c, userData, coupleID,
		ctx.QueryInt("limit", 20), ctx.QueryInt("offset", 0))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_posts")
	}

	response := feed.PostListResponse{
		Posts: make([]feed.PostResponse, 0, len(posts)),
	}
	for _, post := range posts {
		response.Posts = append(response.Posts, makePostResponse(post))
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *FeedHandler) UpdatePost(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req feed.UpdatePostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	post, err := h.feedService.UpdatePost(c, userData, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_post")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makePostResponse(post))
	}
}

func (h *FeedHandler) DeletePost(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 15*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("post ID is required"), ctx.Path())
	}

	coupleID := ctx.Query("coupleId")
	if coupleID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("coupleId is required"), ctx.Path())
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.feedService.DeletePost(c, userData, coupleID, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_post")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Post deleted successfully",
		})
	}
}

func (h *FeedHandler) ToggleLike(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req feed.ToggleLikeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	post, err := h.feedService.ToggleLike(c, userData, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "toggle_like")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makePostResponse(post))
	}
}

func (h *FeedHandler) AddComment(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req feed.AddCommentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	post, err := h.feedService.AddComment(c, userData, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "add_comment")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, makePostResponse(post))
	}
}

func (h *FeedHandler) AddReply(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req feed.AddReplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	post, err := h.feedService.AddReply(c, userData, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "add_reply")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, makePostResponse(post))
	}
}

func makePostResponse(post entity.Post) feed.PostResponse {
	response := feed.PostResponse{
		ID:            post.ID,
		CoupleID:      post.CoupleID,
		Author:        post.Author,
		Caption:       post.Caption,
		Images:        post.Metadata.Images,
		Likes:         post.Metadata.Likes,
		LikesCount:    post.Metadata.LikesCount,
		Comments:      make([]feed.CommentResponse, 0, len(post.Metadata.Comments)),
		CommentsCount: post.Metadata.CommentsCount,
		CreatedAt:     post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     post.UpdatedAt.Format(time.RFC3339),
	}

	if response.Images == nil {
		response.Images = []string{}
	}
	if response.Likes == nil {
		response.Likes = []string{}
	}

	for _, comment := range post.Metadata.Comments {
		made := feed.CommentResponse{
			ID:        comment.ID,
			Author:    comment.Author,
			Body:      comment.Body,
			CreatedAt: comment.CreatedAt.Format(time.RFC3339),
			Replies:   make([]feed.ReplyResponse, 0, len(comment.Replies)),
		}
		for _, reply := range comment.Replies {
			made.Replies = append(made.Replies, feed.ReplyResponse{
				ID:        reply.ID,
				Author:    reply.Author,
				Body:      reply.Body,
				CreatedAt: reply.CreatedAt.Format(time.RFC3339),
			})
		}
		response.Comments = append(response.Comments, made)
	}

	return response
}
