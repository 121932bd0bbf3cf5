package webapi

import (
	"github.com/finsighthq/finsight/pkg/dto"
	projectsvc "github.com/finsighthq/finsight/pkg/service/project"
	"github.com/gofiber/fiber/v2"
)

// ProjectRoutes registers the project management endpoints.
//
// Routes:
//   - GET   /projects     : List projects.
//   - POST  /projects     : Create a project.
//   - PATCH /projects/:id : Update a project.
func ProjectRoutes(app *fiber.App, svc *projectsvc.Service) {
	app.Get("/projects", ListProjects(svc))
	app.Post("/projects", CreateProject(svc))
	app.Patch("/projects/:id", UpdateProject(svc))
}

// ListProjects lists projects, optionally active ones only.
// @Summary List projects
// @Tags projects
// @Produce json
// @Param active query bool false "Restrict to active projects"
// @Success 200 {object} Response
// @Router /projects [get]
func ListProjects(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reads, err := svc.List(c.Context(), c.QueryBool("active"))
		if err != nil {
			return ServiceErrorJSON(c, "Failed to list projects", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Projects listed",
			Data:    reads,
		})
	}
}

// CreateProject registers a new project.
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Success 201 {object} Response "Project created"
// @Failure 400 {object} ProblemDetails "Invalid request"
// @Router /projects [post]
func CreateProject(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[dto.ProjectCreate](c)
		if input == nil {
			return err
		}
		read, err := svc.Create(c.Context(), *input)
		if err != nil {
			return ServiceErrorJSON(c, "Failed to create project", err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Project created",
			Data:    read,
		})
	}
}

// UpdateProject applies partial project changes.
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} Response
// @Failure 404 {object} ProblemDetails "Project not found"
// @Router /projects/{id} [patch]
func UpdateProject(svc *projectsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		input, err := BindAndValidate[dto.ProjectUpdate](c)
		if input == nil {
			return err
		}
		read, err := svc.Update(c.Context(), id, *input)
		if err != nil {
			return ServiceErrorJSON(c, "Failed to update project", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Project updated",
			Data:    read,
		})
	}
}
