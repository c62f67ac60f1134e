package goalHandler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"ourlittleworld/internal/api/goal"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
	"ourlittleworld/pkg/handlerUtil"
	jwtPkg "ourlittleworld/pkg/jwt"
	"ourlittleworld/pkg/log"
)

func (h *GoalHandler) CreateGoal(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create goal request")

	var req goal.CreateGoalRequest
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

	goalRow, err := h.goalService.CreateGoal(c, userData, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_goal")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, makeGoalResponse(goalRow))
	}
}

func (h *GoalHandler) GetGoals(ctx *fiber.Ctx) error {
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

	goals, err := h.goalService.GetGoalsByCouple(c, userData, coupleID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_goals")
	}

	response := goal.GoalListResponse{
		Goals: make([]goal.GoalResponse, 0, len(goals)),
	}
	for _, goalRow := range goals {
		response.Goals = append(response.Goals, makeGoalResponse(goalRow))
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *GoalHandler) UpdateGoal(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req goal.UpdateGoalRequest
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

	goalRow, err := h.goalService.UpdateGoal(c, userData, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_goal")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makeGoalResponse(goalRow))
	}
}

func (h *GoalHandler) Contribute(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req goal.ContributeRequest
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

	goalRow, err := h.goalService.Contribute(c, userData, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "contribute_goal")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makeGoalResponse(goalRow))
	}
}

func (h *GoalHandler) CompleteGoal(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("goal ID is required"), ctx.Path())
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

	goalRow, err := h.goalService.CompleteGoal(c, userData, coupleID, id)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "complete_goal")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makeGoalResponse(goalRow))
	}
}

func (h *GoalHandler) DeleteGoal(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("goal ID is required"), ctx.Path())
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

	if err := h.goalService.DeleteGoal(c, userData, coupleID, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_goal")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Goal deleted successfully",
		})
	}
}

func makeGoalResponse(goalRow entity.SavingsGoal) goal.GoalResponse {
	response := goal.GoalResponse{
		ID:            goalRow.ID,
		CoupleID:      goalRow.CoupleID,
		Title:         goalRow.Title,
		Description:   goalRow.Description,
		TargetAmount:  goalRow.TargetAmount.Float(),
		CurrentAmount: goalRow.CurrentAmount.Float(),
		Icon:          goalRow.Icon,
		Color:         goalRow.Color,
		Priority:      string(goalRow.Priority),
		Progress:      goalRow.DisplayProgress(),
		IsCompleted:   goalRow.IsCompleted,
		CreatedAt:     goalRow.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     goalRow.UpdatedAt.Format(time.RFC3339),
	}

	if goalRow.Deadline != nil {
		response.Deadline = goalRow.Deadline.Format("2006-01-02")
	}
	if goalRow.CompletedAt != nil {
		response.CompletedAt = goalRow.CompletedAt.Format(time.RFC3339)
	}

	return response
}
