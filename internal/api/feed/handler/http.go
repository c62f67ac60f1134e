package feedHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	feedService "ourlittleworld/internal/api/feed/service"
	"ourlittleworld/internal/middleware"
)

type FeedHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	feedService feedService.IFeedService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	feedService feedService.IFeedService,
) *FeedHandler {
	return &FeedHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		feedService: feedService,
	}
}

func (h *FeedHandler) Start(srv fiber.Router) {
	feed := srv.Group("/feed")

	feed.Post("/posts", h.middleware.NewTokenMiddleware, h.CreatePost)
	feed.Get("/posts", h.middleware.NewTokenMiddleware, h.GetPosts)
	feed.Put("/posts", h.middleware.NewTokenMiddleware, h.UpdatePost)
	feed.Delete("/posts/:id", h.middleware.NewTokenMiddleware, h.DeletePost)
	feed.Post("/posts/like", h.middleware.NewTokenMiddleware, h.ToggleLike)
	feed.Post("/posts/comments", h.middleware.NewTokenMiddleware, h.AddComment)
	feed.Post("/posts/replies", h.middleware.NewTokenMiddleware, h.AddReply)
}
