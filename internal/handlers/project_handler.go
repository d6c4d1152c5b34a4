package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"crafterscloset/internal/middleware"
	"crafterscloset/internal/models"
	"crafterscloset/internal/services"
)

// ProjectHandler handles HTTP requests for projects.
type ProjectHandler struct {
	service  *services.ProjectService
	validate *validator.Validate
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the project routes. Project pages are public;
// a logged-in visitor also sees what they own.
func (h *ProjectHandler) RegisterRoutes(router fiber.Router, requireAuth, optionalAuth fiber.Handler) {
	projectRoutes := router.Group("/projects")
	projectRoutes.Get("/", h.HandleListProjects)
	projectRoutes.Get("/search", h.HandleSearchProjects)
	projectRoutes.Get("/:id", optionalAuth, h.HandleGetProject)
	projectRoutes.Post("/", requireAuth, h.HandleCreateProject)

	router.Get("/me/projects", requireAuth, h.HandleListMyProjects)
}

// HandleListProjects retrieves all projects.
func (h *ProjectHandler) HandleListProjects(c *fiber.Ctx) error {
	projects, err := h.service.ListProjects()
	if err != nil {
		return serviceError(c, "retrieve projects", err)
	}
	return c.JSON(projects)
}

// HandleListMyProjects retrieves the authenticated user's projects.
func (h *ProjectHandler) HandleListMyProjects(c *fiber.Ctx) error {
	projects, err := h.service.ListUserProjects(middleware.UserID(c))
	if err != nil {
		return serviceError(c, "retrieve projects", err)
	}
	return c.JSON(projects)
}

// HandleSearchProjects runs a free-text project search.
func (h *ProjectHandler) HandleSearchProjects(c *fiber.Ctx) error {
	results, err := h.service.SearchProjects(c.Query("q"))
	if err != nil {
		return serviceError(c, "search projects", err)
	}
	return c.JSON(results)
}

// HandleGetProject returns a project with its shopping list for the caller.
func (h *ProjectHandler) HandleGetProject(c *fiber.Ctx) error {
	projectID, err := idParam(c, "id")
	if err != nil {
		return serviceError(c, "retrieve project", err)
	}
	project, err := h.service.GetProject(projectID)
	if err != nil {
		return serviceError(c, "retrieve project", err)
	}
	buyList, err := h.service.BuyList(projectID, middleware.UserID(c))
	if err != nil {
		return serviceError(c, "retrieve project", err)
	}
	return c.JSON(fiber.Map{
		"project":  project,
		"supplies": buyList,
	})
}

// HandleCreateProject creates a project owned by the authenticated user.
func (h *ProjectHandler) HandleCreateProject(c *fiber.Ctx) error {
	var in models.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	if err := h.validate.Struct(in); err != nil {
		return validationFailed(c, err)
	}

	project, err := h.service.CreateProject(middleware.UserID(c), in)
	if err != nil {
		return serviceError(c, "create project", err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}
