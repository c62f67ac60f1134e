package coupleHandler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"ourlittleworld/internal/api/couple"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
	"ourlittleworld/pkg/handlerUtil"
	jwtPkg "ourlittleworld/pkg/jwt"
	"ourlittleworld/pkg/log"
)

func (h *CoupleHandler) CreateCouple(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create couple request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	coupleRow, err := h.coupleService.CreateCouple(c, userData)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_couple")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, makeCoupleResponse(coupleRow))
	}
}

func (h *CoupleHandler) GetMyCouple(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	coupleRow, err := h.coupleService.GetMyCouple(c, userData)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_my_couple")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makeCoupleResponse(coupleRow))
	}
}

func (h *CoupleHandler) Invite(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 15*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req couple.InviteRequest
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

	if err := h.coupleService.Invite(c, userData, req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "invite_partner")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Invite sent successfully",
		})
	}
}

func (h *CoupleHandler) Join(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req couple.JoinRequest
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

	coupleRow, err := h.coupleService.Join(c, userData, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "join_couple")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makeCoupleResponse(coupleRow))
	}
}

func makeCoupleResponse(coupleRow entity.Couple) couple.CoupleResponse {
	return couple.CoupleResponse{
		ID:        coupleRow.ID,
		InviterID: coupleRow.InviterID,
		PartnerID: coupleRow.PartnerID,
		CreatedAt: coupleRow.CreatedAt.Format(time.RFC3339),
	}
}
