package webapi

import (
	"github.com/finsighthq/finsight/pkg/dto"
	allocationsvc "github.com/finsighthq/finsight/pkg/service/allocation"
	"github.com/gofiber/fiber/v2"
)

// AllocationWriteRequest is the replace-all payload for a transaction's
// allocations.
type AllocationWriteRequest struct {
	Allocations []dto.AllocationInput `json:"allocations" validate:"required,min=1,dive"`
}

// AllocationRoutes registers the allocation endpoints.
//
// Routes:
//   - PUT    /transactions/:id/allocations : Replace the allocation set.
//   - GET    /transactions/:id/allocations : List stored allocations.
//   - DELETE /transactions/:id/allocations : Remove all allocations.
func AllocationRoutes(app *fiber.App, svc *allocationsvc.Service) {
	app.Put("/transactions/:id/allocations", WriteAllocations(svc))
	app.Get("/transactions/:id/allocations", GetAllocations(svc))
	app.Delete("/transactions/:id/allocations", DeleteAllocations(svc))
}

// WriteAllocations replaces the allocation set of a transaction.
// @Summary Replace transaction allocations
// @Description Validates the proposed attribution set and atomically replaces the stored allocations of the transaction. Percentages must sum to 100 within 0.01.
// @Tags allocations
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} Response "Allocations replaced"
// @Failure 400 {object} ProblemDetails "Invalid request"
// @Failure 404 {object} ProblemDetails "Transaction or project not found"
// @Failure 422 {object} ProblemDetails "Inconsistent allocation set"
// @Router /transactions/{id}/allocations [put]
func WriteAllocations(svc *allocationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txID, err := parseID(c, "id")
		if err != nil {
			return err
		}
		input, err := BindAndValidate[AllocationWriteRequest](c)
		if input == nil {
			return err
		}
		reads, err := svc.WriteAllocations(c.Context(), txID, input.Allocations)
		if err != nil {
			return ServiceErrorJSON(c, "Failed to write allocations", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Allocations replaced",
			Data:    reads,
		})
	}
}

// GetAllocations lists the stored allocations of a transaction.
// @Summary List transaction allocations
// @Tags allocations
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} Response
// @Failure 404 {object} ProblemDetails "Transaction not found"
// @Router /transactions/{id}/allocations [get]
func GetAllocations(svc *allocationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txID, err := parseID(c, "id")
		if err != nil {
			return err
		}
		reads, err := svc.GetAllocations(c.Context(), txID)
		if err != nil {
			return ServiceErrorJSON(c, "Failed to list allocations", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Allocations listed",
			Data:    reads,
		})
	}
}

// DeleteAllocations removes every allocation of a transaction, restoring
// the synthetic fallback attribution.
// @Summary Delete transaction allocations
// @Tags allocations
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} Response
// @Failure 404 {object} ProblemDetails "Transaction not found"
// @Router /transactions/{id}/allocations [delete]
func DeleteAllocations(svc *allocationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txID, err := parseID(c, "id")
		if err != nil {
			return err
		}
		deleted, err := svc.DeleteAllocations(c.Context(), txID)
		if err != nil {
			return ServiceErrorJSON(c, "Failed to delete allocations", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Allocations deleted",
			Data:    fiber.Map{"deleted": deleted},
		})
	}
}
