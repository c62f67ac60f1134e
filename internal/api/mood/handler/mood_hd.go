package moodHandler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"ourlittleworld/internal/api/mood"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
	"ourlittleworld/pkg/handlerUtil"
	jwtPkg "ourlittleworld/pkg/jwt"
	"ourlittleworld/pkg/log"
)

func (h *MoodHandler) CheckIn(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing mood check-in request")

	var req mood.CheckInRequest
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

	entry, err := h.moodService.CheckIn(c, userData, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "mood_checkin")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makeMoodResponse(entry))
	}
}

func (h *MoodHandler) GetHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
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

	days := ctx.QueryInt("days", 14)

	entries, err := h.moodService.GetHistory(c, userData, coupleID, days)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "mood_history")
	}

	response := mood.MoodHistoryResponse{
		Days:    days,
		Entries: make([]mood.MoodResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		response.Entries = append(response.Entries, makeMoodResponse(entry))
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func makeMoodResponse(entry entity.MoodEntry) mood.MoodResponse {
	return mood.MoodResponse{
		ID:        entry.ID,
		CoupleID:  entry.CoupleID,
		UserID:    entry.UserID,
		EntryDate: entry.EntryDate.Format("2006-01-02"),
		Mood:      entry.Mood,
		Note:      entry.Note,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
		UpdatedAt: entry.UpdatedAt.Format(time.RFC3339),
	}
}
