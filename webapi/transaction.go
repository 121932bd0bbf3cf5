package webapi

import (
	"github.com/finsighthq/finsight/pkg/dto"
	transactionsvc "github.com/finsighthq/finsight/pkg/service/transaction"
	"github.com/gofiber/fiber/v2"
)

// TransactionRoutes registers the transaction management endpoints.
//
// Routes:
//   - GET   /transactions                      : List transactions of a period.
//   - PATCH /transactions/:id                  : Assign category/project or toggle exclusion.
//   - GET   /transactions/:id/suggest-category : Keyword-based category suggestion.
func TransactionRoutes(app *fiber.App, svc *transactionsvc.Service) {
	app.Get("/transactions", ListTransactions(svc))
	app.Patch("/transactions/:id", UpdateTransaction(svc))
	app.Get("/transactions/:id/suggest-category", SuggestCategory(svc))
}

// ListTransactions lists the transactions of a period.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param start query string true "Period start (YYYY-MM-DD)"
// @Param end query string true "Period end (YYYY-MM-DD, inclusive)"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails "Invalid query"
// @Router /transactions [get]
func ListTransactions(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start, end, err := parsePeriod(c)
		if err != nil {
			return err
		}
		reads, err := svc.List(c.Context(), start, end)
		if err != nil {
			return ServiceErrorJSON(c, "Failed to list transactions", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Transactions listed",
			Data:    reads,
		})
	}
}

// UpdateTransaction applies category/project assignment or the exclusion flag.
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails "Invalid request"
// @Failure 404 {object} ProblemDetails "Transaction, category or project not found"
// @Router /transactions/{id} [patch]
func UpdateTransaction(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		input, err := BindAndValidate[dto.TransactionUpdate](c)
		if input == nil {
			return err
		}
		if err := svc.Update(c.Context(), id, *input); err != nil {
			return ServiceErrorJSON(c, "Failed to update transaction", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Transaction updated",
		})
	}
}

// SuggestCategory scores active category keywords against the transaction.
// @Summary Suggest a category
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} Response
// @Failure 404 {object} ProblemDetails "Transaction not found"
// @Router /transactions/{id}/suggest-category [get]
func SuggestCategory(svc *transactionsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		suggestion, err := svc.SuggestCategory(c.Context(), id)
		if err != nil {
			return ServiceErrorJSON(c, "Failed to suggest category", err)
		}
		message := "Category suggested"
		if suggestion == nil {
			message = "No matching category"
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: message,
			Data:    suggestion,
		})
	}
}
