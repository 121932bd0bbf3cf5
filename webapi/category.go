package webapi

import (
	"github.com/finsighthq/finsight/pkg/dto"
	categorysvc "github.com/finsighthq/finsight/pkg/service/category"
	"github.com/gofiber/fiber/v2"
)

// CategoryRoutes registers the category management endpoints.
//
// Routes:
//   - GET    /categories     : List active categories.
//   - POST   /categories     : Create a category.
//   - DELETE /categories/:id : Delete a non-system category.
func CategoryRoutes(app *fiber.App, svc *categorysvc.Service) {
	app.Get("/categories", ListCategories(svc))
	app.Post("/categories", CreateCategory(svc))
	app.Delete("/categories/:id", DeleteCategory(svc))
}

// ListCategories lists the active categories.
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} Response
// @Router /categories [get]
func ListCategories(svc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reads, err := svc.List(c.Context())
		if err != nil {
			return ServiceErrorJSON(c, "Failed to list categories", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Categories listed",
			Data:    reads,
		})
	}
}

// CreateCategory registers a new category.
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Success 201 {object} Response "Category created"
// @Failure 400 {object} ProblemDetails "Invalid request"
// @Router /categories [post]
func CreateCategory(svc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[dto.CategoryCreate](c)
		if input == nil {
			return err
		}
		read, err := svc.Create(c.Context(), *input)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Failed to create category", err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Category created",
			Data:    read,
		})
	}
}

// DeleteCategory deletes a category. System categories are refused.
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} Response
// @Failure 404 {object} ProblemDetails "Category not found"
// @Failure 422 {object} ProblemDetails "System category"
// @Router /categories/{id} [delete]
func DeleteCategory(svc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		if err := svc.Delete(c.Context(), id); err != nil {
			return ServiceErrorJSON(c, "Failed to delete category", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Category deleted",
		})
	}
}
