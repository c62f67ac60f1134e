package moodHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	moodService "ourlittleworld/internal/api/mood/service"
	"ourlittleworld/internal/middleware"
)

type MoodHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	moodService moodService.IMoodService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	moodService moodService.IMoodService,
) *MoodHandler {
	return &MoodHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		moodService: moodService,
	}
}

func (h *MoodHandler) Start(srv fiber.Router) {
	mood := srv.Group("/mood")

	mood.Post("/checkin", h.middleware.NewTokenMiddleware, h.CheckIn)
	mood.Get("/history", h.middleware.NewTokenMiddleware, h.GetHistory)
}
