package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"ourlittleworld/database/postgres"
	budgetHandler "ourlittleworld/internal/api/budget/handler"
	budgetRepository "ourlittleworld/internal/api/budget/repository"
	budgetService "ourlittleworld/internal/api/budget/service"
	coupleHandler "ourlittleworld/internal/api/couple/handler"
	coupleRepository "ourlittleworld/internal/api/couple/repository"
	coupleService "ourlittleworld/internal/api/couple/service"
	feedHandler "ourlittleworld/internal/api/feed/handler"
	feedRepository "ourlittleworld/internal/api/feed/repository"
	feedService "ourlittleworld/internal/api/feed/service"
	goalHandler "ourlittleworld/internal/api/goal/handler"
	goalRepository "ourlittleworld/internal/api/goal/repository"
	goalService "ourlittleworld/internal/api/goal/service"
	moodHandler "ourlittleworld/internal/api/mood/handler"
	moodRepository "ourlittleworld/internal/api/mood/repository"
	moodService "ourlittleworld/internal/api/mood/service"
	"ourlittleworld/internal/middleware"
	"ourlittleworld/pkg/bcrypt"
	"ourlittleworld/pkg/realtime"
	"ourlittleworld/pkg/redis"
	"ourlittleworld/pkg/s3"
	"ourlittleworld/pkg/smtp"
	"ourlittleworld/pkg/utils"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	redisServer redis.IRedis
	smtpMailer  smtp.ItfSmtp
	s3Client    s3.ItfS3
	hub         *realtime.Hub
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithRealtimeHub() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before realtime hub")
		}
		s.hub = realtime.NewHub(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Couple Domain, the tenant boundary everything else checks against
	coupleRepo := coupleRepository.New(s.db, s.log)
	coupleServices := coupleService.NewCoupleService(s.log, coupleRepo, s.redisServer, s.bcryptUtils, s.smtpMailer, s.utils)
	coupleHandlers := coupleHandler.New(s.log, s.validator, s.middleware, coupleServices)

	// Budget Domain
	budgetRepo := budgetRepository.New(s.db, s.log)
	budgetServices := budgetService.NewBudgetService(s.log, budgetRepo, coupleServices, s.hub, s.utils)
	budgetHandlers := budgetHandler.New(s.log, s.validator, s.middleware, budgetServices)

	// Savings Goals
	goalRepo := goalRepository.New(s.db, s.log)
	goalServices := goalService.NewGoalService(s.log, goalRepo, coupleServices, s.hub, s.utils)
	goalHandlers := goalHandler.New(s.log, s.validator, s.middleware, goalServices)

	// Private Feed
	feedRepo := feedRepository.New(s.db, s.log)
	feedServices := feedService.NewFeedService(s.log, feedRepo, coupleServices, s.hub, s.s3Client, s.utils)
	feedHandlers := feedHandler.New(s.log, s.validator, s.middleware, feedServices)

	// Mood Check-ins
	moodRepo := moodRepository.New(s.db, s.log)
	moodServices := moodService.NewMoodService(s.log, moodRepo, coupleServices, s.hub, s.utils)
	moodHandlers := moodHandler.New(s.log, s.validator, s.middleware, moodServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, coupleHandlers, budgetHandlers, goalHandlers, feedHandlers, moodHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	if s.hub != nil {
		router.Use("/realtime/:coupleId", realtime.UpgradeRequired)
		router.Get("/realtime/:coupleId", s.hub.Handler())
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
