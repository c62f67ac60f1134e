package budgetHandler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"ourlittleworld/internal/api/budget"
	"ourlittleworld/internal/entity"
	contextPkg "ourlittleworld/pkg/context"
	"ourlittleworld/pkg/handlerUtil"
	jwtPkg "ourlittleworld/pkg/jwt"
	"ourlittleworld/pkg/log"
	"ourlittleworld/pkg/money"
)

func (h *BudgetHandler) CreateTransaction(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing create transaction request")

	var req budget.CreateTransactionRequest
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

	transaction, err := h.budgetService.CreateTransaction(c, userData, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_transaction")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, makeTransactionResponse(transaction))
	}
}

func (h *BudgetHandler) GetTransactionsByMonth(ctx *fiber.Ctx) error {
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

	month := ctx.Query("month", budget.CurrentMonthKey(time.Now()))

	transactions, err := h.budgetService.GetTransactionsByMonth(c, userData, coupleID, month)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_transactions")
	}

	response := budget.TransactionListResponse{
		Month:        month,
		Transactions: make([]budget.TransactionResponse, 0, len(transactions)),
	}
	for _, transaction := range transactions {
		response.Transactions = append(response.Transactions, makeTransactionResponse(transaction))
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *BudgetHandler) UpdateTransaction(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req budget.UpdateTransactionRequest
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

	transaction, err := h.budgetService.UpdateTransaction(c, userData, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_transaction")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makeTransactionResponse(transaction))
	}
}

func (h *BudgetHandler) DeleteTransaction(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	id := ctx.Params("id")
	if id == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("transaction ID is required"), ctx.Path())
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

	if err := h.budgetService.DeleteTransaction(c, userData, coupleID, id); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "delete_transaction")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Transaction deleted successfully",
		})
	}
}

func (h *BudgetHandler) GetSummary(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing budget summary request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	coupleID := ctx.Query("coupleId")
	if coupleID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("coupleId is required"), ctx.Path())
	}

	summary, err := h.budgetService.GetSummary(c, userData, coupleID, ctx.Query("month"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_summary")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, makeSummaryResponse(summary))
	}
}

func (h *BudgetHandler) UpdateAllocation(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req budget.UpdateAllocationRequest
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

	row, err := h.budgetService.UpdateAllocation(c, userData, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "update_allocation")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, budget.AllocationResponse{
			MonthlyTotal: row.MonthlyTotal.Float(),
			HisBudget:    row.HisBudget.Float(),
			HersBudget:   row.HersBudget.Float(),
			SharedBudget: row.SharedBudget.Float(),
		})
	}
}

// AutoBalanceAllocation computes a balanced triple without persisting;
// it backs the remediation the client offers when the validator rejects.
func (h *BudgetHandler) AutoBalanceAllocation(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)

	errHandler := handlerUtil.New(h.log)

	var req budget.AutoBalanceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	total, err := money.FromFloat(req.MonthlyTotal)
	if err != nil || total <= 0 {
		return errHandler.Handle(ctx, requestID, budget.ErrInvalidMonthlyTotal, ctx.Path(), "auto_balance")
	}
	his, _ := money.FromFloat(req.HisBudget)
	hers, _ := money.FromFloat(req.HersBudget)
	shared, _ := money.FromFloat(req.SharedBudget)

	his, hers, shared = budget.AutoBalance(total, his, hers, shared)

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, budget.AllocationResponse{
		MonthlyTotal: total.Float(),
		HisBudget:    his.Float(),
		HersBudget:   hers.Float(),
		SharedBudget: shared.Float(),
	})
}

func makeTransactionResponse(transaction entity.Transaction) budget.TransactionResponse {
	return budget.TransactionResponse{
		ID:              transaction.ID,
		CoupleID:        transaction.CoupleID,
		Amount:          transaction.Amount.Float(),
		Category:        transaction.Category,
		Note:            transaction.Note,
		Payer:           string(transaction.Payer),
		Type:            string(transaction.Type),
		CreatedBy:       transaction.CreatedBy,
		TransactionDate: transaction.TransactionDate.Format("2006-01-02"),
		CreatedAt:       transaction.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       transaction.UpdatedAt.Format(time.RFC3339),
	}
}

func makeSummaryResponse(summary budget.Summary) budget.SummaryResponse {
	response := budget.SummaryResponse{
		Month:             summary.Month,
		Income:            makeBucketAmounts(summary.Income),
		Expenses:          makeBucketAmounts(summary.Expenses),
		Balance:           makeBucketAmounts(summary.Balance),
		Percentage:        summary.Percentage,
		Status:            string(summary.Status),
		TransactionsCount: summary.TransactionsCount,
		CategoryBreakdown: make(map[string]float64, len(summary.CategoryBreakdown)),
	}

	for category, amount := range summary.CategoryBreakdown {
		response.CategoryBreakdown[category] = amount.Float()
	}

	if summary.Goals != nil {
		response.BudgetGoals = &budget.AllocationResponse{
			MonthlyTotal: summary.Goals.MonthlyTotal.Float(),
			HisBudget:    summary.Goals.His.Float(),
			HersBudget:   summary.Goals.Hers.Float(),
			SharedBudget: summary.Goals.Shared.Float(),
		}
	}

	return response
}

func makeBucketAmounts(totals budget.BucketTotals) budget.BucketAmounts {
	return budget.BucketAmounts{
		His:    totals.His.Float(),
		Hers:   totals.Hers.Float(),
		Shared: totals.Shared.Float(),
		Total:  totals.Total.Float(),
	}
}
