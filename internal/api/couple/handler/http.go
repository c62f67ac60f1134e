package coupleHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	coupleService "ourlittleworld/internal/api/couple/service"
	"ourlittleworld/internal/middleware"
)

type CoupleHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	coupleService coupleService.ICoupleService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	coupleService coupleService.ICoupleService,
) *CoupleHandler {
	return &CoupleHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		coupleService: coupleService,
	}
}

func (h *CoupleHandler) Start(srv fiber.Router) {
	couple := srv.Group("/couple")

	couple.Post("/", h.middleware.NewTokenMiddleware, h.CreateCouple)
	couple.Get("/me", h.middleware.NewTokenMiddleware, h.GetMyCouple)
	couple.Post("/invite", h.middleware.NewTokenMiddleware, h.Invite)
	couple.Post("/join", h.middleware.NewTokenMiddleware, h.Join)
}
