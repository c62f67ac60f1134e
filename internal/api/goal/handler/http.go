package goalHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	goalService "ourlittleworld/internal/api/goal/service"
	"ourlittleworld/internal/middleware"
)

type GoalHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	goalService goalService.IGoalService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	goalService goalService.IGoalService,
) *GoalHandler {
	return &GoalHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		goalService: goalService,
	}
}

func (h *GoalHandler) Start(srv fiber.Router) {
	goal := srv.Group("/goals")

	goal.Post("/", h.middleware.NewTokenMiddleware, h.CreateGoal)
	goal.Get("/", h.middleware.NewTokenMiddleware, h.GetGoals)
	goal.Put("/", h.middleware.NewTokenMiddleware, h.UpdateGoal)
	goal.Post("/contribute", h.middleware.NewTokenMiddleware, h.Contribute)
	goal.Patch("/:id/complete", h.middleware.NewTokenMiddleware, h.CompleteGoal)
	goal.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteGoal)
}
