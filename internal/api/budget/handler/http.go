package budgetHandler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	budgetService "ourlittleworld/internal/api/budget/service"
	"ourlittleworld/internal/middleware"
)

type BudgetHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	budgetService budgetService.IBudgetService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	budgetService budgetService.IBudgetService,
) *BudgetHandler {
	return &BudgetHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		budgetService: budgetService,
	}
}

func (h *BudgetHandler) Start(srv fiber.Router) {
	budget := srv.Group("/budget")

	budget.Post("/transactions", h.middleware.NewTokenMiddleware, h.CreateTransaction)
	budget.Get("/transactions", h.middleware.NewTokenMiddleware, h.GetTransactionsByMonth)
	budget.Put("/transactions", h.middleware.NewTokenMiddleware, h.UpdateTransaction)
	budget.Delete("/transactions/:id", h.middleware.NewTokenMiddleware, h.DeleteTransaction)
	budget.Get("/summary", h.middleware.NewTokenMiddleware, h.GetSummary)
	budget.Put("/allocation", h.middleware.NewTokenMiddleware, h.UpdateAllocation)
	budget.Post("/allocation/balance", h.middleware.NewTokenMiddleware, h.AutoBalanceAllocation)
}
